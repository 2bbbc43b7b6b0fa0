package badgerstore

import (
	"context"

	"github.com/secondbrain/brain-server/internal/domain"
)

// CreateUser stores a user. The username index is case-insensitive.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.users.Create(ctx, u.ID, u)
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByIndex(ctx, "username", username)
}
