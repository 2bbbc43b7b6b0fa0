package domain

import "time"

// Tag is a shared label. Slug is the identity; Name keeps the spelling of
// whoever used the tag first.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
