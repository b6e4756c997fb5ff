package mysql

const insertBookSQL = `
INSERT INTO books
  (title, author, genre, description, published_year, average_rating, total_reviews, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, 0, 0, ?, ?)
`

const getBookSQL = `
SELECT id, title, author, genre, description, published_year,
       average_rating, total_reviews, created_at, updated_at
FROM books
WHERE id = ?
`

// Derived fields only; everything else is written at creation time.
const updateBookRatingSQL = `
UPDATE books
SET average_rating = ?, total_reviews = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const insertReviewSQL = `
INSERT INTO reviews (user_id, book_id, rating, comment, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews SET rating = ?, comment = ?, updated_at = ? WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

// Existence and ownership checked in one statement so absence and foreign
// ownership are indistinguishable to callers.
const getOwnedReviewSQL = `
SELECT id, user_id, book_id, rating, comment, created_at, updated_at
FROM reviews
WHERE id = ? AND user_id = ?
`

// Newest first; aligns with the index on (book_id, created_at, id).
const listReviewsByBookSQL = `
SELECT r.id, r.book_id, r.rating, r.comment, u.username, r.created_at
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.book_id = ?
ORDER BY r.created_at DESC, r.id DESC
LIMIT ? OFFSET ?
`

// Grouped aggregate feeding the book's derived fields. AVG is left unrounded
// here; the rounding rule lives in the app layer where it is unit-tested.
const ratingStatsSQL = `
SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE book_id = ?
`

const insertUserSQL = `
INSERT INTO users (username, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
`

const getUserByEmailSQL = `
SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?
`

const getUserByIDSQL = `
SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?
`
