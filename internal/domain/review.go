package domain

import "time"

type Review struct {
	ID        int64
	UserID    int64
	BookID    int64
	Rating    int // integer 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewView is the listing read model. The reviewer is exposed by display
// name only; no other user fields leave the storage layer.
type ReviewView struct {
	ID        int64
	BookID    int64
	Rating    int
	Comment   string
	Author    string
	CreatedAt time.Time
}
