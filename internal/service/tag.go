package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secondbrain/brain-server/internal/domain"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/util"
)

// TagService resolves tag names to shared tag records.
// Tags are global: two users typing "Go Lang" get the same tag.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// List returns the tags used on the user's content, ordered by slug.
func (s *TagService) List(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.store.ListTagsForUser(ctx, userID)
}

// Lookup returns the tag matching a raw name without creating it.
func (s *TagService) Lookup(ctx context.Context, rawName string) (*domain.Tag, error) {
	slug := util.NormalizeTagSlug(rawName)
	if slug == "" {
		return nil, domainerrors.NotFound("tag not found")
	}
	tag, err := s.store.GetTagBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// Resolve finds or creates a tag for every raw name and returns their ids
// in input order, without duplicates.
func (s *TagService) Resolve(ctx context.Context, rawNames []string) ([]string, error) {
	ids := make([]string, 0, len(rawNames))
	seen := make(map[string]bool, len(rawNames))

	for _, raw := range rawNames {
		slug := util.NormalizeTagSlug(raw)
		if slug == "" {
			return nil, domainerrors.Validation("tag must not be blank")
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true

		tag, created, err := s.store.FindOrCreateTag(ctx, util.CleanName(raw), slug)
		if err != nil {
			return nil, fmt.Errorf("find or create tag %q: %w", slug, err)
		}
		if created && s.logger != nil {
			s.logger.Debug("Tag created", "tag_id", tag.ID, "slug", slug)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
