// Package store defines the persistence contract shared by the sqlite and
// badger backends.
//
// Owned records (content, categories) are always addressed together with the
// owner's user id. A record owned by someone else is reported as ErrNotFound.
// Uniqueness violations (username, share hash, category name per user, tag
// slug) are reported as ErrAlreadyExists and are enforced by the backend
// inside the write, never by a separate existence check.
package store

import (
	"context"

	"github.com/secondbrain/brain-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Content
	CreateContent(ctx context.Context, content *domain.Content) error
	GetContent(ctx context.Context, userID, id string) (*domain.Content, error)
	ListContent(ctx context.Context, userID string, filter domain.ContentFilter) ([]*domain.Content, error)
	UpdateContent(ctx context.Context, content *domain.Content) error
	DeleteContent(ctx context.Context, userID, id string) error

	// Categories
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, userID, id string) (*domain.Category, error)
	GetCategoryByNameKey(ctx context.Context, userID, nameKey string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, userID, id string) error

	// Tags
	FindOrCreateTag(ctx context.Context, name, slug string) (*domain.Tag, bool, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	ListTagsForUser(ctx context.Context, userID string) ([]*domain.Tag, error)

	// Share links
	CreateShareLink(ctx context.Context, link *domain.ShareLink) error
	GetShareLink(ctx context.Context, hash string) (*domain.ShareLink, error)
	ListShareLinks(ctx context.Context, userID string) ([]*domain.ShareLink, error)
}
