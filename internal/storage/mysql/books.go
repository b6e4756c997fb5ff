package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"book_reviews/internal/domain"
)

type BookRepo struct{ db *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) Create(ctx context.Context, b *domain.Book) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.Title, b.Author, b.Genre, b.Description, valYear(b.PublishedYear), now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	b.AverageRating = 0
	b.TotalReviews = 0
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (domain.Book, error) {
	return scanBook(r.db.QueryRowContext(ctx, getBookSQL, id))
}

// List composes the WHERE clause from the optional filters. LIKE matching is
// case-insensitive under the schema's utf8mb4 *_ci collation.
func (r *BookRepo) List(ctx context.Context, q domain.BooksQuery) (domain.BooksPage, error) {
	var conds []string
	var args []any
	if q.Author != "" {
		conds = append(conds, "author LIKE CONCAT('%', ?, '%')")
		args = append(args, q.Author)
	}
	if q.Genre != "" {
		conds = append(conds, "genre LIKE CONCAT('%', ?, '%')")
		args = append(args, q.Genre)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return r.page(ctx, where, args, q.PageQuery)
}

func (r *BookRepo) Search(ctx context.Context, q domain.SearchQuery) (domain.BooksPage, error) {
	where := " WHERE (title LIKE CONCAT('%', ?, '%') OR author LIKE CONCAT('%', ?, '%'))"
	return r.page(ctx, where, []any{q.Q, q.Q}, q.PageQuery)
}

func (r *BookRepo) page(ctx context.Context, where string, args []any, pg domain.PageQuery) (domain.BooksPage, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return domain.BooksPage{}, err
	}

	query := `
SELECT id, title, author, genre, description, published_year,
       average_rating, total_reviews, created_at, updated_at
FROM books` + where + `
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, pg.Limit, pg.Offset())...)
	if err != nil {
		return domain.BooksPage{}, err
	}
	defer rows.Close()

	var out []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return domain.BooksPage{}, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return domain.BooksPage{}, err
	}
	return domain.BooksPage{Items: out, TotalItems: total}, nil
}

func (r *BookRepo) UpdateRating(ctx context.Context, id int64, avg float64, total int) error {
	_, err := r.db.ExecContext(ctx, updateBookRatingSQL, avg, total, id)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBook(row rowScanner) (domain.Book, error) {
	var b domain.Book
	var year sql.NullInt64
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description,
		&year, &b.AverageRating, &b.TotalReviews, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Book{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Book{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		b.PublishedYear = &y
	}
	return b, nil
}

func valYear(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
