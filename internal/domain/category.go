package domain

import "time"

// UncategorizedName is shown for content without a live category.
const UncategorizedName = "Uncategorized"

// Category is a named grouping of content, unique by name per user.
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	// NameKey is the normalized name used for uniqueness.
	NameKey   string    `json:"name_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (c *Category) InitTimestamps() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now()
}
