package badgerstore

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
)

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
	if err := s.tags.Create(ctx, tag.ID, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			existing, err := s.GetTagBySlug(ctx, slug)
			return existing, false, err
		}
		return nil, false, err
	}
	return tag, true, nil
}

// GetTagBySlug retrieves a tag by its slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return s.tags.GetByIndex(ctx, "slug", slug)
}

// GetTagsByIDs returns the tags for ids in input order. Unknown ids are skipped.
func (s *Store) GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags := make([]*domain.Tag, 0, len(ids))
	for _, tagID := range ids {
		t, err := s.tags.Get(ctx, tagID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// ListTagsForUser returns the distinct tags used on the user's content, by slug.
func (s *Store) ListTagsForUser(ctx context.Context, userID string) ([]*domain.Tag, error) {
	items, err := s.content.ListByIndex(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, c := range items {
		for _, tagID := range c.TagIDs {
			if !seen[tagID] {
				seen[tagID] = true
				ids = append(ids, tagID)
			}
		}
	}

	tags, err := s.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tags, func(a, b *domain.Tag) int {
		return cmp.Compare(a.Slug, b.Slug)
	})
	return tags, nil
}
