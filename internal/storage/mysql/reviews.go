package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"book_reviews/internal/domain"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrNoReferencedRow = 1452
)

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func isMissingReference(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}

type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.UserID, rv.BookID, rv.Rating, rv.Comment, now, now)
	if err != nil {
		// unique index on (user_id, book_id)
		if isDuplicate(err) {
			return domain.ErrDuplicateReview
		}
		// FK backstop; the service checks book existence first
		if isMissingReference(err) {
			return domain.ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = id
	rv.CreatedAt = now
	rv.UpdatedAt = now
	return nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv *domain.Review) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, updateReviewSQL, rv.Rating, rv.Comment, now, rv.ID)
	if err != nil {
		return err
	}
	rv.UpdatedAt = now
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) GetOwned(ctx context.Context, id, userID int64) (domain.Review, error) {
	var rv domain.Review
	err := r.db.QueryRowContext(ctx, getOwnedReviewSQL, id, userID).Scan(
		&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepo) ListByBook(ctx context.Context, bookID int64, pg domain.PageQuery) ([]domain.ReviewView, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByBookSQL, bookID, pg.Limit, pg.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewView
	for rows.Next() {
		var rv domain.ReviewView
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.Rating, &rv.Comment, &rv.Author, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepo) RatingStats(ctx context.Context, bookID int64) (domain.RatingStats, error) {
	var st domain.RatingStats
	err := r.db.QueryRowContext(ctx, ratingStatsSQL, bookID).Scan(&st.Average, &st.Count)
	if err != nil {
		return domain.RatingStats{}, err
	}
	return st, nil
}
