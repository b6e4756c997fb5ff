package httpserver

import (
	"time"

	"book_reviews/internal/domain"
)

type bookJSON struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description"`
	PublishedYear *int      `json:"publishedYear,omitempty"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type reviewJSON struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// reviewListJSON carries the reviewer's display name; used on book detail.
type reviewListJSON struct {
	reviewJSON
	User string `json:"user"`
}

type bookDetailJSON struct {
	bookJSON
	Reviews []reviewListJSON `json:"reviews"`
}

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginJSON struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

func toBookJSON(b domain.Book) bookJSON {
	return bookJSON{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		AverageRating: b.AverageRating,
		TotalReviews:  b.TotalReviews,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookListJSON(items []domain.Book) []bookJSON {
	out := make([]bookJSON, len(items))
	for i, b := range items {
		out[i] = toBookJSON(b)
	}
	return out
}

func toReviewJSON(r domain.Review) reviewJSON {
	return reviewJSON{ID: r.ID, BookID: r.BookID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
}

func toReviewListJSON(items []domain.ReviewView) []reviewListJSON {
	out := make([]reviewListJSON, len(items))
	for i, v := range items {
		out[i] = reviewListJSON{
			reviewJSON: reviewJSON{ID: v.ID, BookID: v.BookID, Rating: v.Rating, Comment: v.Comment, CreatedAt: v.CreatedAt},
			User:       v.Author,
		}
	}
	return out
}

func toUserJSON(u domain.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}
