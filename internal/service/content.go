package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/secondbrain/brain-server/internal/domain"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/util"
	"github.com/secondbrain/brain-server/internal/validation"
)

// ContentService manages a user's saved items.
type ContentService struct {
	store      store.Store
	tags       *TagService
	categories *CategoryService
	logger     *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(store store.Store, tags *TagService, categories *CategoryService, logger *slog.Logger) *ContentService {
	return &ContentService{
		store:      store,
		tags:       tags,
		categories: categories,
		logger:     logger,
	}
}

// CreateContentRequest describes a new item. Tags are raw names; each is
// resolved to a shared tag. CategoryName creates the category if needed and
// is ignored when CategoryID is set.
type CreateContentRequest struct {
	Title        string   `json:"title" validate:"required,notblank,max=500"`
	URL          string   `json:"url" validate:"omitempty,weburl,max=2048"`
	Type         string   `json:"type" validate:"required,oneof=tweet youtube link image note spotify instagram"`
	Description  string   `json:"description" validate:"max=20000"`
	Tags         []string `json:"tags" validate:"max=50,dive,notblank,max=64"`
	CategoryID   string   `json:"category_id" validate:"max=100"`
	CategoryName string   `json:"category_name" validate:"omitempty,notblank,max=100"`
}

// UpdateContentRequest is a partial update. Nil fields are left alone.
// An empty URL, Description or CategoryID clears the field; an empty Tags
// slice removes all tags.
type UpdateContentRequest struct {
	Title        *string  `json:"title" validate:"omitempty,notblank,max=500"`
	URL          *string  `json:"url" validate:"omitempty,max=2048"`
	Type         *string  `json:"type" validate:"omitempty,oneof=tweet youtube link image note spotify instagram"`
	Description  *string  `json:"description" validate:"omitempty,max=20000"`
	Tags         []string `json:"tags" validate:"omitempty,max=50,dive,notblank,max=64"`
	CategoryID   *string  `json:"category_id" validate:"omitempty,max=100"`
	CategoryName *string  `json:"category_name" validate:"omitempty,notblank,max=100"`
}

// ListContentRequest filters a listing. Tag is a raw tag name.
type ListContentRequest struct {
	Type       string `json:"type" validate:"omitempty,oneof=tweet youtube link image note spotify instagram"`
	CategoryID string `json:"category_id" validate:"max=100"`
	Tag        string `json:"tag" validate:"max=64"`
}

// Create saves a new item for userID.
func (s *ContentService) Create(ctx context.Context, userID string, req CreateContentRequest) (*ContentView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tagIDs, err := s.tags.Resolve(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, userID, req.CategoryID, req.CategoryName)
	if err != nil {
		return nil, err
	}

	contentID, err := id.Generate("content")
	if err != nil {
		return nil, fmt.Errorf("generate content ID: %w", err)
	}

	content := &domain.Content{
		ID:          contentID,
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		Type:        domain.ContentType(req.Type),
		Description: util.HTMLToMarkdown(req.Description),
		TagIDs:      tagIDs,
		CategoryID:  categoryID,
	}
	content.InitTimestamps()

	if err := s.store.CreateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Content created",
			"user_id", userID,
			"content_id", content.ID,
			"type", content.Type,
		)
	}

	return s.view(ctx, userID, content)
}

// Get returns one of the user's items.
func (s *ContentService) Get(ctx context.Context, userID, contentID string) (*ContentView, error) {
	content, err := s.get(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, userID, content)
}

func (s *ContentService) get(ctx context.Context, userID, contentID string) (*domain.Content, error) {
	content, err := s.store.GetContent(ctx, userID, contentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("content not found")
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return content, nil
}

// List returns the user's items, oldest first.
func (s *ContentService) List(ctx context.Context, userID string, req ListContentRequest) ([]ContentView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	filter := domain.ContentFilter{
		Type:       domain.ContentType(req.Type),
		CategoryID: req.CategoryID,
	}
	if req.Tag != "" {
		tag, err := s.tags.Lookup(ctx, req.Tag)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				// Nobody has used this tag, so nothing can match.
				return []ContentView{}, nil
			}
			return nil, err
		}
		filter.TagID = tag.ID
	}

	items, err := s.store.ListContent(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return hydrate(ctx, s.store, userID, items)
}

// Update applies a partial update to one of the user's items.
func (s *ContentService) Update(ctx context.Context, userID, contentID string, req UpdateContentRequest) (*ContentView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if req.URL != nil && *req.URL != "" && !validation.IsWebURL(*req.URL) {
		return nil, domainerrors.ValidationWithDetails("url must be a valid http(s) URL",
			map[string]string{"url": "must be a valid http(s) URL"})
	}

	content, err := s.get(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		content.Title = strings.TrimSpace(*req.Title)
	}
	if req.URL != nil {
		content.URL = strings.TrimSpace(*req.URL)
	}
	if req.Type != nil {
		content.Type = domain.ContentType(*req.Type)
	}
	if req.Description != nil {
		content.Description = util.HTMLToMarkdown(*req.Description)
	}
	if req.Tags != nil {
		if content.TagIDs, err = s.tags.Resolve(ctx, req.Tags); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil || req.CategoryName != nil {
		var categoryID, categoryName string
		if req.CategoryID != nil {
			categoryID = *req.CategoryID
		}
		if req.CategoryName != nil {
			categoryName = *req.CategoryName
		}
		if content.CategoryID, err = s.resolveCategory(ctx, userID, categoryID, categoryName); err != nil {
			return nil, err
		}
	}
	content.Touch()

	if err := s.store.UpdateContent(ctx, content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("content not found")
		}
		return nil, fmt.Errorf("update content: %w", err)
	}

	return s.view(ctx, userID, content)
}

// Delete removes one of the user's items.
func (s *ContentService) Delete(ctx context.Context, userID, contentID string) error {
	if err := s.store.DeleteContent(ctx, userID, contentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("content not found")
		}
		return fmt.Errorf("delete content: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Content deleted", "user_id", userID, "content_id", contentID)
	}
	return nil
}

// resolveCategory returns the category id to store. An explicit id must
// name one of the user's categories. A name is created on first use.
// Both empty means uncategorized.
func (s *ContentService) resolveCategory(ctx context.Context, userID, categoryID, categoryName string) (string, error) {
	if categoryID != "" {
		category, err := s.categories.Get(ctx, userID, categoryID)
		if err != nil {
			return "", err
		}
		return category.ID, nil
	}
	if strings.TrimSpace(categoryName) != "" {
		category, _, err := s.categories.findOrCreate(ctx, userID, categoryName)
		if err != nil {
			return "", err
		}
		return category.ID, nil
	}
	return "", nil
}

func (s *ContentService) view(ctx context.Context, userID string, content *domain.Content) (*ContentView, error) {
	views, err := hydrate(ctx, s.store, userID, []*domain.Content{content})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
