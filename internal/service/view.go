package service

import (
	"context"
	"fmt"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/store"
)

// ContentView is a content item with its references resolved for display.
type ContentView struct {
	*domain.Content
	Tags []*domain.Tag
	// CategoryName is domain.UncategorizedName when the item has no live category.
	CategoryName string
}

// hydrate resolves tags and category names for items owned by userID.
// Categories and tags are loaded once for the whole batch.
func hydrate(ctx context.Context, s store.Store, userID string, items []*domain.Content) ([]ContentView, error) {
	views := make([]ContentView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	categories, err := s.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	seen := make(map[string]bool)
	var tagIDs []string
	for _, c := range items {
		for _, tagID := range c.TagIDs {
			if !seen[tagID] {
				seen[tagID] = true
				tagIDs = append(tagIDs, tagID)
			}
		}
	}
	tags, err := s.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	byID := make(map[string]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}

	for _, c := range items {
		view := ContentView{
			Content:      c,
			Tags:         make([]*domain.Tag, 0, len(c.TagIDs)),
			CategoryName: domain.UncategorizedName,
		}
		if name, ok := names[c.CategoryID]; ok {
			view.CategoryName = name
		}
		for _, tagID := range c.TagIDs {
			if t, ok := byID[tagID]; ok {
				view.Tags = append(view.Tags, t)
			}
		}
		views = append(views, view)
	}
	return views, nil
}
