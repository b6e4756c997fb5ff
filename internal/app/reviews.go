package app

import (
	"context"
	"fmt"
	"strings"

	"book_reviews/internal/domain"
)

// ReviewService owns the review lifecycle: validation, the
// one-review-per-user-per-book rule, ownership checks, and triggering the
// aggregate recomputation after every confirmed mutation. The trigger is an
// explicit call, not a storage hook, so it stays visible and testable.
type ReviewService struct {
	books   domain.BookRepository
	reviews domain.ReviewRepository
	rec     *Recomputer
	cache   domain.Cache
}

func NewReviewService(books domain.BookRepository, reviews domain.ReviewRepository, rec *Recomputer, cache domain.Cache) *ReviewService {
	return &ReviewService{books: books, reviews: reviews, rec: rec, cache: cache}
}

func validateReviewInput(rating int, comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 || comment == "" {
		return "", domain.ErrInvalidRequest
	}
	return comment, nil
}

// Create persists a new review and recomputes the book's derived fields.
// Fails with ErrNotFound when the book is absent and ErrDuplicateReview when
// (userID, bookID) already has one. A non-nil *AggregateSyncError return
// still carries a valid review: the mutation itself succeeded.
func (s *ReviewService) Create(ctx context.Context, userID, bookID int64, rating int, comment string) (domain.Review, error) {
	comment, err := validateReviewInput(rating, comment)
	if err != nil {
		return domain.Review{}, err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return domain.Review{}, err
	}
	r := domain.Review{UserID: userID, BookID: bookID, Rating: rating, Comment: comment}
	if err := s.reviews.Create(ctx, &r); err != nil {
		return domain.Review{}, err
	}
	return r, s.afterMutation(ctx, bookID)
}

// Update overwrites rating and comment of a review owned by userID.
// Absence and foreign ownership are both reported as ErrNotFound.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID int64, rating int, comment string) (domain.Review, error) {
	comment, err := validateReviewInput(rating, comment)
	if err != nil {
		return domain.Review{}, err
	}
	r, err := s.reviews.GetOwned(ctx, reviewID, userID)
	if err != nil {
		return domain.Review{}, err
	}
	r.Rating = rating
	r.Comment = comment
	if err := s.reviews.Update(ctx, &r); err != nil {
		return domain.Review{}, err
	}
	return r, s.afterMutation(ctx, r.BookID)
}

// Delete removes a review owned by userID and recomputes the book.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64) error {
	r, err := s.reviews.GetOwned(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, r.ID); err != nil {
		return err
	}
	return s.afterMutation(ctx, r.BookID)
}

// afterMutation runs the synchronous recompute and invalidates the book's
// cached detail pages. Invalidation is best-effort; recompute failure is
// returned as *AggregateSyncError for the caller to log.
func (s *ReviewService) afterMutation(ctx context.Context, bookID int64) error {
	err := s.rec.Recompute(ctx, bookID)
	if s.cache != nil {
		bumpBookVersion(ctx, s.cache, bookID)
	}
	return err
}

// Detail pages embed a per-book generation in their cache key. One bump
// orphans every cached page/limit variant at once; the orphans age out by
// TTL. The counter must outlive the detail entries, or its expiry could
// resurrect a pre-bump generation still sitting in the cache.
const bookVerTTLSec = 24 * 60 * 60

func bookVerKey(bookID int64) string { return fmt.Sprintf("book:%d:ver", bookID) }

func bumpBookVersion(ctx context.Context, cache domain.Cache, bookID int64) {
	_, _ = cache.Incr(ctx, bookVerKey(bookID), bookVerTTLSec)
}
