package domain

import "time"

type Book struct {
	ID            int64
	Title         string
	Author        string
	Genre         string
	Description   string
	PublishedYear *int // optional, [1000, current year]
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublishedYearMin is the lower bound accepted for Book.PublishedYear.
const PublishedYearMin = 1000
