package domain

import "time"

// ShareLink maps a public hash to the user whose content it exposes.
// Links are immutable and never expire.
type ShareLink struct {
	Hash      string    `json:"hash"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
