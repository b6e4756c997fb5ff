package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"book_reviews/internal/domain"
)

// ---- in-memory fakes shared by the app tests ----

type memBooks struct {
	byID    map[int64]domain.Book
	next    int64
	now     time.Time
	failing bool // when set, UpdateRating fails (simulates a storage outage)
}

func newMemBooks() *memBooks {
	return &memBooks{byID: map[int64]domain.Book{}, now: time.Unix(1_700_000_000, 0)}
}

func (m *memBooks) Create(ctx context.Context, b *domain.Book) error {
	m.next++
	m.now = m.now.Add(time.Second)
	b.ID = m.next
	b.CreatedAt = m.now
	b.UpdatedAt = m.now
	m.byID[b.ID] = *b
	return nil
}

func (m *memBooks) GetByID(ctx context.Context, id int64) (domain.Book, error) {
	b, ok := m.byID[id]
	if !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	return b, nil
}

func (m *memBooks) sorted() []domain.Book {
	out := make([]domain.Book, 0, len(m.byID))
	for _, b := range m.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate(items []domain.Book, pg domain.PageQuery) domain.BooksPage {
	total := len(items)
	lo := pg.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + pg.Limit
	if hi > total {
		hi = total
	}
	return domain.BooksPage{Items: items[lo:hi], TotalItems: total}
}

func (m *memBooks) List(ctx context.Context, q domain.BooksQuery) (domain.BooksPage, error) {
	var out []domain.Book
	for _, b := range m.sorted() {
		if q.Author != "" && !contains(b.Author, q.Author) {
			continue
		}
		if q.Genre != "" && !contains(b.Genre, q.Genre) {
			continue
		}
		out = append(out, b)
	}
	return paginate(out, q.PageQuery), nil
}

func (m *memBooks) Search(ctx context.Context, q domain.SearchQuery) (domain.BooksPage, error) {
	var out []domain.Book
	for _, b := range m.sorted() {
		if contains(b.Title, q.Q) || contains(b.Author, q.Q) {
			out = append(out, b)
		}
	}
	return paginate(out, q.PageQuery), nil
}

func (m *memBooks) UpdateRating(ctx context.Context, id int64, avg float64, total int) error {
	if m.failing {
		return errors.New("storage unavailable")
	}
	b, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.AverageRating = avg
	b.TotalReviews = total
	m.byID[id] = b
	return nil
}

type memReviews struct {
	byID  map[int64]domain.Review
	users map[int64]string // user id -> display name, for ListByBook
	next  int64
	now   time.Time
}

func newMemReviews() *memReviews {
	return &memReviews{
		byID:  map[int64]domain.Review{},
		users: map[int64]string{},
		now:   time.Unix(1_700_100_000, 0),
	}
}

func (m *memReviews) Create(ctx context.Context, r *domain.Review) error {
	for _, ex := range m.byID {
		if ex.UserID == r.UserID && ex.BookID == r.BookID {
			return domain.ErrDuplicateReview
		}
	}
	m.next++
	m.now = m.now.Add(time.Second)
	r.ID = m.next
	r.CreatedAt = m.now
	r.UpdatedAt = m.now
	m.byID[r.ID] = *r
	return nil
}

func (m *memReviews) Update(ctx context.Context, r *domain.Review) error {
	if _, ok := m.byID[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[r.ID] = *r
	return nil
}

func (m *memReviews) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memReviews) GetOwned(ctx context.Context, id, userID int64) (domain.Review, error) {
	r, ok := m.byID[id]
	if !ok || r.UserID != userID {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memReviews) ListByBook(ctx context.Context, bookID int64, pg domain.PageQuery) ([]domain.ReviewView, error) {
	var rs []domain.Review
	for _, r := range m.byID {
		if r.BookID == bookID {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	lo := pg.Offset()
	if lo > len(rs) {
		lo = len(rs)
	}
	hi := lo + pg.Limit
	if hi > len(rs) {
		hi = len(rs)
	}
	out := make([]domain.ReviewView, 0, hi-lo)
	for _, r := range rs[lo:hi] {
		out = append(out, domain.ReviewView{
			ID:        r.ID,
			BookID:    r.BookID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Author:    m.users[r.UserID],
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

func (m *memReviews) RatingStats(ctx context.Context, bookID int64) (domain.RatingStats, error) {
	sum, n := 0, 0
	for _, r := range m.byID {
		if r.BookID == bookID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return domain.RatingStats{}, nil
	}
	return domain.RatingStats{Average: float64(sum) / float64(n), Count: n}, nil
}

type memUsers struct {
	byID map[int64]domain.User
	next int64
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]domain.User{}} }

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	for _, ex := range m.byID {
		if ex.Email == u.Email || ex.Username == u.Username {
			return domain.ErrEmailTaken
		}
	}
	m.next++
	u.ID = m.next
	u.CreatedAt = time.Unix(1_700_200_000, 0)
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type staticTokens struct{ token string }

func (s staticTokens) Issue(userID int64, username string) (string, error) {
	return s.token, nil
}

// fakeCache round-trips values through JSON the way the real adapter does.
type fakeCache struct {
	store map[string][]byte
	sets  int
	dels  int
	bumps int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.sets++
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels++
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string, ttlSec int) (int64, error) {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	var n int64
	if b, ok := c.store[key]; ok {
		_ = json.Unmarshal(b, &n)
	}
	n++
	b, _ := json.Marshal(n)
	c.store[key] = b
	c.bumps++
	return n, nil
}
