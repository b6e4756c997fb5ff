package app

import (
	"context"
	"math"

	"book_reviews/internal/domain"
)

// Recomputer rewrites a book's derived rating fields from its current review
// set. Idempotent: the result depends only on the stored reviews, so calling
// it repeatedly is safe.
type Recomputer struct {
	books   domain.BookRepository
	reviews domain.ReviewRepository
}

func NewRecomputer(books domain.BookRepository, reviews domain.ReviewRepository) *Recomputer {
	return &Recomputer{books: books, reviews: reviews}
}

// Recompute queries the grouped rating aggregate for bookID and writes the
// mean (rounded to one decimal) and count back to the book. Both fields go to
// 0 when no reviews remain. Any failure is wrapped as *AggregateSyncError so
// callers can tell a stale aggregate apart from a failed primary write.
func (rc *Recomputer) Recompute(ctx context.Context, bookID int64) error {
	st, err := rc.reviews.RatingStats(ctx, bookID)
	if err != nil {
		return &domain.AggregateSyncError{BookID: bookID, Err: err}
	}
	avg := 0.0
	if st.Count > 0 {
		avg = Round1(st.Average)
	}
	if err := rc.books.UpdateRating(ctx, bookID, avg, st.Count); err != nil {
		return &domain.AggregateSyncError{BookID: bookID, Err: err}
	}
	return nil
}

// Round1 rounds half away from zero to one decimal place, the stored
// precision of Book.AverageRating.
func Round1(f float64) float64 { return math.Round(f*10) / 10 }
