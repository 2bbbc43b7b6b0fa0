package badgerstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/secondbrain/brain-server/internal/domain"
)

// CreateContent stores a content item.
func (s *Store) CreateContent(ctx context.Context, c *domain.Content) error {
	return s.content.Create(ctx, c.ID, c)
}

// GetContent retrieves a content item owned by userID.
func (s *Store) GetContent(ctx context.Context, userID, id string) (*domain.Content, error) {
	c, err := s.content.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, errNotOwned()
	}
	return c, nil
}

// ListContent returns the user's content oldest first, narrowed by filter.
func (s *Store) ListContent(ctx context.Context, userID string, filter domain.ContentFilter) ([]*domain.Content, error) {
	all, err := s.content.ListByIndex(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Content, 0, len(all))
	for _, c := range all {
		if filter.Matches(c) {
			items = append(items, c)
		}
	}
	slices.SortStableFunc(items, func(a, b *domain.Content) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// UpdateContent replaces a content item owned by c.UserID.
func (s *Store) UpdateContent(ctx context.Context, c *domain.Content) error {
	return s.content.UpdateWhere(ctx, c.ID, c, func(old *domain.Content) bool {
		return old.UserID == c.UserID
	})
}

// DeleteContent removes a content item owned by userID.
func (s *Store) DeleteContent(ctx context.Context, userID, id string) error {
	return s.content.DeleteWhere(ctx, id, func(old *domain.Content) bool {
		return old.UserID == userID
	})
}
