package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
)

// tagColumns must match the scan order in scanTag.
const tagColumns = `id, name, slug, created_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var (
		t         domain.Tag
		createdAt string
	)
	if err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindOrCreateTag returns the tag with slug, creating it with name when it
// does not exist yet. The bool reports whether a new tag was created.
func (s *Store) FindOrCreateTag(ctx context.Context, name, slug string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		tag.ID, tag.Name, tag.Slug, formatTime(tag.CreatedAt),
	)
	if err = mapConstraint(err); err != nil {
		// Lost the race to another writer.
		if errors.Is(err, store.ErrAlreadyExists) {
			existing, err := s.GetTagBySlug(ctx, slug)
			return existing, false, err
		}
		return nil, false, fmt.Errorf("create tag: %w", err)
	}

	return tag, true, nil
}

// GetTagBySlug retrieves a tag by its slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE slug = ?`, slug)
	t, err := scanTag(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

// GetTagsByIDs returns the tags for ids in input order. Unknown ids are skipped.
func (s *Store) GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, v := range ids {
		args[i] = v
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Tag, len(ids))
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags := make([]*domain.Tag, 0, len(ids))
	for _, v := range ids {
		if t, ok := byID[v]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// ListTagsForUser returns the distinct tags used on the user's content, by slug.
func (s *Store) ListTagsForUser(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN content_tags ct ON ct.tag_id = t.id
		JOIN content c ON c.id = ct.content_id
		WHERE c.user_id = ?
		ORDER BY t.slug`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
