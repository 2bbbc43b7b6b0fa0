package badgerstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/store"
)

// errNotOwned hides records that belong to another user.
func errNotOwned() error { return store.ErrNotFound }

// CreateCategory stores a category. The (user, name key) pair is unique.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	return s.categories.Create(ctx, c.ID, c)
}

// GetCategory retrieves a category owned by userID.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (*domain.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, errNotOwned()
	}
	return c, nil
}

// GetCategoryByNameKey retrieves the user's category with the given name key.
func (s *Store) GetCategoryByNameKey(ctx context.Context, userID, nameKey string) (*domain.Category, error) {
	return s.categories.GetByIndex(ctx, "name", userID+":"+nameKey)
}

// ListCategories returns the user's categories oldest first.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	categories, err := s.categories.ListByIndex(ctx, "user", userID)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(categories, func(a, b *domain.Category) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return categories, nil
}

// UpdateCategory renames a category owned by c.UserID.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	return s.categories.UpdateWhere(ctx, c.ID, c, func(old *domain.Category) bool {
		return old.UserID == c.UserID
	})
}

// DeleteCategory removes a category. Content referencing it keeps the id.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.categories.DeleteWhere(ctx, id, func(old *domain.Category) bool {
		return old.UserID == userID
	})
}
