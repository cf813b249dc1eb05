package models

import "time"

// Note is a personal note. A buyer's private copy of a purchased listing is
// an ordinary Note with no link back to the listing.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
