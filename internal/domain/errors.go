package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReview: the (user, book) pair already has a review.
	// Enforced by the storage layer's unique index.
	ErrDuplicateReview = errors.New("user has already reviewed this book")

	ErrInvalidRequest = errors.New("invalid request")

	ErrEmailTaken         = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AggregateSyncError reports that a review mutation persisted but the book's
// derived rating fields could not be rewritten. The primary mutation is not
// rolled back; callers decide whether to surface the staleness or only log it.
type AggregateSyncError struct {
	BookID int64
	Err    error
}

func (e *AggregateSyncError) Error() string {
	return fmt.Sprintf("aggregate sync failed for book %d: %v", e.BookID, e.Err)
}

func (e *AggregateSyncError) Unwrap() error { return e.Err }
