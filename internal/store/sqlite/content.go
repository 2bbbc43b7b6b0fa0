package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/secondbrain/brain-server/internal/domain"
)

// contentColumns must match the scan order in scanContent.
const contentColumns = `id, user_id, title, url, type, description, category_id, created_at, updated_at`

func scanContent(scanner interface{ Scan(dest ...any) error }) (*domain.Content, error) {
	var (
		c                          domain.Content
		url, description, category sql.NullString
		contentType                string
		createdAt, updatedAt       string
	)

	err := scanner.Scan(
		&c.ID, &c.UserID, &c.Title, &url, &contentType,
		&description, &category, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.URL = url.String
	c.Type = domain.ContentType(contentType)
	c.Description = description.String
	c.CategoryID = category.String

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateContent inserts a content item together with its tag references.
func (s *Store) CreateContent(ctx context.Context, c *domain.Content) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO content (id, user_id, title, url, type, description, category_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.UserID, c.Title, nullString(c.URL), string(c.Type),
			nullString(c.Description), nullString(c.CategoryID),
			formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
		)
		if err != nil {
			return mapConstraint(err)
		}
		return insertContentTags(ctx, tx, c.ID, c.TagIDs)
	})
}

// GetContent retrieves a content item owned by userID.
func (s *Store) GetContent(ctx context.Context, userID, id string) (*domain.Content, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanContent(row)
	if err != nil {
		return nil, mapNoRows(err)
	}

	tags, err := s.loadContentTags(ctx, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.TagIDs = tags[c.ID]
	return c, nil
}

// ListContent returns the user's content oldest first, narrowed by filter.
func (s *Store) ListContent(ctx context.Context, userID string, filter domain.ContentFilter) ([]*domain.Content, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.TagID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM content_tags ct WHERE ct.content_id = content.id AND ct.tag_id = ?)")
		args = append(args, filter.TagID)
	}

	query := `SELECT ` + contentColumns + ` FROM content WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var (
		items []*domain.Content
		ids   []string
	)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := s.loadContentTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		c.TagIDs = tags[c.ID]
	}
	return items, nil
}

// UpdateContent replaces a content item and its tag references.
// Returns store.ErrNotFound if the item does not exist for c.UserID.
func (s *Store) UpdateContent(ctx context.Context, c *domain.Content) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE content
			SET title = ?, url = ?, type = ?, description = ?, category_id = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			c.Title, nullString(c.URL), string(c.Type), nullString(c.Description),
			nullString(c.CategoryID), formatTime(c.UpdatedAt),
			c.ID, c.UserID,
		)
		if err != nil {
			return err
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM content_tags WHERE content_id = ?`, c.ID); err != nil {
			return fmt.Errorf("clear content tags: %w", err)
		}
		return insertContentTags(ctx, tx, c.ID, c.TagIDs)
	})
}

// DeleteContent removes a content item owned by userID.
func (s *Store) DeleteContent(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func insertContentTags(ctx context.Context, tx *sql.Tx, contentID string, tagIDs []string) error {
	for i, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO content_tags (content_id, tag_id, position) VALUES (?, ?, ?)
			ON CONFLICT (content_id, tag_id) DO NOTHING`,
			contentID, tagID, i,
		)
		if err != nil {
			return fmt.Errorf("insert content tag: %w", err)
		}
	}
	return nil
}

// loadContentTags returns tag ids per content id, in the order they were attached.
func (s *Store) loadContentTags(ctx context.Context, contentIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(contentIDs))
	for i, id := range contentIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT content_id, tag_id FROM content_tags
		WHERE content_id IN (`+placeholders(len(contentIDs))+`)
		ORDER BY content_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("load content tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contentID, tagID string
		if err := rows.Scan(&contentID, &tagID); err != nil {
			return nil, err
		}
		result[contentID] = append(result[contentID], tagID)
	}
	return result, rows.Err()
}
