package sqlite

import (
	"context"
	"fmt"

	"github.com/secondbrain/brain-server/internal/domain"
)

// categoryColumns must match the scan order in scanCategory.
const categoryColumns = `id, user_id, name, name_key, created_at, updated_at`

func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var (
		c                    domain.Category
		createdAt, updatedAt string
	)

	if err := scanner.Scan(&c.ID, &c.UserID, &c.Name, &c.NameKey, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory inserts a category. Returns store.ErrAlreadyExists when the
// user already has a category with the same name key.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, name_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.NameKey, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	return mapConstraint(err)
}

// GetCategory retrieves a category owned by userID.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCategory(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return c, nil
}

// GetCategoryByNameKey retrieves the user's category with the given name key.
func (s *Store) GetCategoryByNameKey(ctx context.Context, userID, nameKey string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? AND name_key = ?`, userID, nameKey)
	c, err := scanCategory(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return c, nil
}

// ListCategories returns the user's categories oldest first.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory renames a category.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, name_key = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Name, c.NameKey, formatTime(c.UpdatedAt), c.ID, c.UserID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

// DeleteCategory removes a category. Content referencing it keeps the id.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
