package domain

import (
	"fmt"
	"slices"
	"time"
)

// ContentType is the closed set of things a user can save.
type ContentType string

// Supported content types.
const (
	ContentTweet     ContentType = "tweet"
	ContentYouTube   ContentType = "youtube"
	ContentLink      ContentType = "link"
	ContentImage     ContentType = "image"
	ContentNote      ContentType = "note"
	ContentSpotify   ContentType = "spotify"
	ContentInstagram ContentType = "instagram"
)

// ContentTypes lists every valid content type in display order.
var ContentTypes = []ContentType{
	ContentTweet,
	ContentYouTube,
	ContentLink,
	ContentImage,
	ContentNote,
	ContentSpotify,
	ContentInstagram,
}

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	return slices.Contains(ContentTypes, t)
}

// ParseContentType converts s to a ContentType.
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return t, nil
}

// Content is a single saved item owned by one user.
type Content struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	URL         string      `json:"url,omitempty"`
	Type        ContentType `json:"type"`
	Description string      `json:"description,omitempty"`
	TagIDs      []string    `json:"tag_ids,omitempty"`
	// CategoryID may outlive its category; readers treat a missing
	// category as Uncategorized.
	CategoryID string    `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (c *Content) InitTimestamps() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (c *Content) Touch() {
	c.UpdatedAt = time.Now()
}

// HasTag reports whether the content references tagID.
func (c *Content) HasTag(tagID string) bool {
	return slices.Contains(c.TagIDs, tagID)
}

// ContentFilter narrows a content listing. Zero fields match everything.
type ContentFilter struct {
	Type       ContentType
	CategoryID string
	TagID      string
}

// Matches reports whether c passes the filter.
func (f ContentFilter) Matches(c *Content) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && c.CategoryID != f.CategoryID {
		return false
	}
	if f.TagID != "" && !c.HasTag(f.TagID) {
		return false
	}
	return true
}
