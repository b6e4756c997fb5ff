package domain

import "context"

type BookRepository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context, q BooksQuery) (BooksPage, error)
	Search(ctx context.Context, q SearchQuery) (BooksPage, error)

	// UpdateRating rewrites the two derived fields only.
	UpdateRating(ctx context.Context, id int64, avg float64, total int) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id int64) error

	// GetOwned returns the review only when it exists AND belongs to userID;
	// otherwise ErrNotFound. Existence and ownership are checked together so
	// callers cannot probe for other users' reviews.
	GetOwned(ctx context.Context, id, userID int64) (Review, error)

	ListByBook(ctx context.Context, bookID int64, pg PageQuery) ([]ReviewView, error)
	RatingStats(ctx context.Context, bookID int64) (RatingStats, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error

	// Incr atomically advances a numeric key, creating it at 1, and
	// refreshes its TTL. Backs generation counters for keyspace-wide
	// invalidation without pattern scans.
	Incr(ctx context.Context, key string, ttlSec int) (int64, error)
}

// Queries & read models

type PageQuery struct {
	Page  int // 1-based
	Limit int
}

func (p PageQuery) Offset() int { return (p.Page - 1) * p.Limit }

type BooksQuery struct {
	Author string // optional case-insensitive substring
	Genre  string // optional case-insensitive substring
	PageQuery
}

type SearchQuery struct {
	Q string // matched against title OR author
	PageQuery
}

type BooksPage struct {
	Items      []Book
	TotalItems int
}

// RatingStats is the grouped aggregate over a book's reviews.
type RatingStats struct {
	Average float64 // unrounded mean; 0 when Count == 0
	Count   int
}
