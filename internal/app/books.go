package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"book_reviews/internal/domain"
)

// BookDetail bundles a book with one page of its reviews. Pagination over
// the reviews is computed from Book.TotalReviews, not a fresh count query.
type BookDetail struct {
	Book    domain.Book
	Reviews []domain.ReviewView
}

type BookService struct {
	books    domain.BookRepository
	reviews  domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewBookService(books domain.BookRepository, reviews domain.ReviewRepository, cache domain.Cache, ttl time.Duration) *BookService {
	return &BookService{books: books, reviews: reviews, cache: cache, cacheTTL: ttl}
}

// Create validates and persists a new book. Derived fields start at 0.
func (s *BookService) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Genre = strings.TrimSpace(b.Genre)
	b.Description = strings.TrimSpace(b.Description)
	if b.Title == "" || b.Author == "" || b.Genre == "" || b.Description == "" {
		return domain.Book{}, domain.ErrInvalidRequest
	}
	if b.PublishedYear != nil {
		if y := *b.PublishedYear; y < domain.PublishedYearMin || y > time.Now().Year() {
			return domain.Book{}, domain.ErrInvalidRequest
		}
	}
	b.AverageRating = 0
	b.TotalReviews = 0
	if err := s.books.Create(ctx, &b); err != nil {
		return domain.Book{}, err
	}
	return b, nil
}

// List returns a page of books ordered by creation time descending, filtered
// by optional author/genre substrings. Pages are cached by their full query;
// a review mutation does not evict them (TTL-bounded staleness, accepted).
func (s *BookService) List(ctx context.Context, q domain.BooksQuery) (domain.BooksPage, error) {
	key := fmt.Sprintf("books:%s:%s:%d:%d", strings.ToLower(q.Author), strings.ToLower(q.Genre), q.Page, q.Limit)
	var out domain.BooksPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.books.List(ctx, q)
	if err != nil {
		return domain.BooksPage{}, err
	}
	s.cacheBooksPage(ctx, key, out)
	return out, nil
}

// Search matches books whose title or author contains q, case-insensitively.
// An empty query is rejected with ErrInvalidRequest.
func (s *BookService) Search(ctx context.Context, q domain.SearchQuery) (domain.BooksPage, error) {
	q.Q = strings.TrimSpace(q.Q)
	if q.Q == "" {
		return domain.BooksPage{}, domain.ErrInvalidRequest
	}
	key := fmt.Sprintf("search:%s:%d:%d", strings.ToLower(q.Q), q.Page, q.Limit)
	var out domain.BooksPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.books.Search(ctx, q)
	if err != nil {
		return domain.BooksPage{}, err
	}
	s.cacheBooksPage(ctx, key, out)
	return out, nil
}

// GetWithReviews returns the book and one page of its reviews, newest first,
// each annotated with the reviewer's display name only. Cache keys carry the
// book's current generation, so a review mutation invalidates all cached
// page/limit variants with a single counter bump.
func (s *BookService) GetWithReviews(ctx context.Context, id int64, pg domain.PageQuery) (BookDetail, error) {
	var ver int64
	_, _ = s.cache.Get(ctx, bookVerKey(id), &ver)
	key := fmt.Sprintf("book:%d:v%d:%d:%d", id, ver, pg.Page, pg.Limit)
	var out BookDetail
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}
	rs, err := s.reviews.ListByBook(ctx, id, pg)
	if err != nil {
		return BookDetail{}, err
	}
	out = BookDetail{Book: b, Reviews: rs}

	// copy the slice to avoid aliasing the repo's backing array
	cp := out
	if n := len(out.Reviews); n > 0 {
		cp.Reviews = make([]domain.ReviewView, n)
		copy(cp.Reviews, out.Reviews)
	}
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return cp, nil
}

func (s *BookService) cacheBooksPage(ctx context.Context, key string, page domain.BooksPage) {
	cp := page
	if n := len(page.Items); n > 0 {
		cp.Items = make([]domain.Book, n)
		copy(cp.Items, page.Items)
	}
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
}
