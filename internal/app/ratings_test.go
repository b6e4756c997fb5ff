package app_test

import (
	"context"
	"errors"
	"testing"

	"book_reviews/internal/app"
	"book_reviews/internal/domain"
)

func TestRound1_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.0, 4.0},
		{4.5, 4.5},
		{4.333333, 4.3},
		{4.666666, 4.7},
		// mean 1.25 is the discriminating boundary: half-away gives 1.3,
		// half-to-even would give 1.2
		{1.25, 1.3},
		{1.75, 1.8},
		{3.35, 3.4},
	}
	for _, c := range cases {
		if got := app.Round1(c.in); got != c.want {
			t.Fatalf("Round1(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func seedBook(t *testing.T, books *memBooks) int64 {
	t.Helper()
	b := domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Description: "Spice."}
	if err := books.Create(context.Background(), &b); err != nil {
		t.Fatalf("create book: %v", err)
	}
	return b.ID
}

func TestRecompute_EmptySetZeroesBoth(t *testing.T) {
	books, reviews := newMemBooks(), newMemReviews()
	id := seedBook(t, books)
	// pre-dirty the derived fields to prove they get rewritten
	if err := books.UpdateRating(context.Background(), id, 3.3, 7); err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	rc := app.NewRecomputer(books, reviews)
	if err := rc.Recompute(context.Background(), id); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	b, _ := books.GetByID(context.Background(), id)
	if b.AverageRating != 0 || b.TotalReviews != 0 {
		t.Fatalf("expected 0/0, got %v/%d", b.AverageRating, b.TotalReviews)
	}
}

func TestRecompute_MeanAndCount(t *testing.T) {
	books, reviews := newMemBooks(), newMemReviews()
	id := seedBook(t, books)
	for i, rating := range []int{1, 1, 1, 2} { // mean 1.25 -> 1.3
		r := domain.Review{UserID: int64(i + 1), BookID: id, Rating: rating, Comment: "ok"}
		if err := reviews.Create(context.Background(), &r); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	rc := app.NewRecomputer(books, reviews)
	if err := rc.Recompute(context.Background(), id); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	b, _ := books.GetByID(context.Background(), id)
	if b.AverageRating != 1.3 || b.TotalReviews != 4 {
		t.Fatalf("expected 1.3/4, got %v/%d", b.AverageRating, b.TotalReviews)
	}

	// idempotent: a second run changes nothing
	if err := rc.Recompute(context.Background(), id); err != nil {
		t.Fatalf("recompute again: %v", err)
	}
	b2, _ := books.GetByID(context.Background(), id)
	if b2.AverageRating != 1.3 || b2.TotalReviews != 4 {
		t.Fatalf("recompute not idempotent: %v/%d", b2.AverageRating, b2.TotalReviews)
	}
}

func TestRecompute_StorageFailureIsAggregateSyncError(t *testing.T) {
	books, reviews := newMemBooks(), newMemReviews()
	id := seedBook(t, books)
	books.failing = true

	rc := app.NewRecomputer(books, reviews)
	err := rc.Recompute(context.Background(), id)
	var sync *domain.AggregateSyncError
	if !errors.As(err, &sync) {
		t.Fatalf("expected *AggregateSyncError, got %v", err)
	}
	if sync.BookID != id {
		t.Fatalf("wrong book id in error: %d", sync.BookID)
	}
}
