package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/secondbrain/brain-server/internal/domain"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/util"
)

// CategoryService manages per-user categories. Names are unique per user
// after normalization (see util.NameKey).
type CategoryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store store.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

// CategoryRequest names a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// Create returns the user's category with the given name, creating it if
// needed. created is false when an existing category was returned.
func (s *CategoryService) Create(ctx context.Context, userID string, req CategoryRequest) (category *domain.Category, created bool, err error) {
	if err := validate.Validate(req); err != nil {
		return nil, false, err
	}
	return s.findOrCreate(ctx, userID, req.Name)
}

func (s *CategoryService) findOrCreate(ctx context.Context, userID, rawName string) (*domain.Category, bool, error) {
	name := util.CleanName(rawName)
	key := util.NameKey(name)
	if key == "" {
		return nil, false, domainerrors.Validation("name is required")
	}

	existing, err := s.store.GetCategoryByNameKey(ctx, userID, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup category: %w", err)
	}

	categoryID, err := id.Generate("category")
	if err != nil {
		return nil, false, fmt.Errorf("generate category ID: %w", err)
	}

	category := &domain.Category{
		ID:      categoryID,
		UserID:  userID,
		Name:    name,
		NameKey: key,
	}
	category.InitTimestamps()

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// A concurrent request created it first.
			existing, err := s.store.GetCategoryByNameKey(ctx, userID, key)
			if err != nil {
				return nil, false, fmt.Errorf("reload category: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category created",
			"user_id", userID,
			"category_id", category.ID,
			"name", category.Name,
		)
	}

	return category, true, nil
}

// Get returns one of the user's categories.
func (s *CategoryService) Get(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// List returns all of the user's categories.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

// Rename changes a category's name. Renaming onto another category's name
// is a conflict.
func (s *CategoryService) Rename(ctx context.Context, userID, categoryID string, req CategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = util.CleanName(req.Name)
	category.NameKey = util.NameKey(category.Name)
	category.Touch()

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Conflictf("category %q already exists", category.Name)
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Content that referenced it shows as
// Uncategorized from then on.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("category not found")
		}
		return fmt.Errorf("delete category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Category deleted", "user_id", userID, "category_id", categoryID)
	}
	return nil
}
