package badgerstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/secondbrain/brain-server/internal/domain"
)

// CreateShareLink stores a share link keyed by its hash. An existing hash
// is reported as store.ErrAlreadyExists and left untouched.
func (s *Store) CreateShareLink(ctx context.Context, l *domain.ShareLink) error {
	return s.links.Create(ctx, l.Hash, l)
}

// GetShareLink retrieves a share link by hash.
func (s *Store) GetShareLink(ctx context.Context, hash string) (*domain.ShareLink, error) {
	return s.links.Get(ctx, hash)
}

// ListShareLinks returns the user's share links newest first.
func (s *Store) ListShareLinks(ctx context.Context, userID string) ([]*domain.ShareLink, error) {
	links, err := s.links.ListByIndex(ctx, "user", userID)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(links, func(a, b *domain.ShareLink) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.Hash, a.Hash))
	})
	return links, nil
}
