package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "createCategory",
		Method:       http.MethodPost,
		Path:         "/api/category",
		Summary:      "Create category",
		Description:  "Creates a category, or returns the existing one with the same name (200)",
		Tags:         []string{"Categories"},
		MaxBodyBytes: MaxBodySize,
		Security:     []map[string][]string{{"bearer": {}}},
		Responses: map[string]*huma.Response{
			"201": {Description: "Category created"},
		},
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/category",
		Summary:     "List categories",
		Description: "Lists the caller's categories by name",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/category/{id}",
		Summary:     "Get category",
		Description: "Returns one of the caller's categories",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID:  "renameCategory",
		Method:       http.MethodPatch,
		Path:         "/api/category/{id}",
		Summary:      "Rename category",
		Description:  "Renames a category. Fails with 409 if another category has that name.",
		Tags:         []string{"Categories"},
		MaxBodyBytes: MaxBodySize,
		Security:     []map[string][]string{{"bearer": {}}},
	}, s.handleRenameCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/category/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category. Its content becomes Uncategorized.",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCategory)
}

// === DTOs ===

// CategoryResponse is a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id" doc:"Category ID"`
	Name      string    `json:"name" doc:"Display name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// CategoryRequest is the request body for create and rename.
type CategoryRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"100" doc:"Category name"`
}

// CreateCategoryInput wraps the create category request for Huma.
type CreateCategoryInput struct {
	Body CategoryRequest
}

// RenameCategoryInput wraps the rename request for Huma.
type RenameCategoryInput struct {
	ID   string `path:"id" doc:"Category ID"`
	Body CategoryRequest
}

// CategoryIDInput contains the category ID path parameter.
type CategoryIDInput struct {
	ID string `path:"id" doc:"Category ID"`
}

// CategoryResponseBody wraps a single category.
type CategoryResponseBody struct {
	Category CategoryResponse `json:"category" doc:"Category"`
}

// CategoryOutput wraps the category response for Huma.
type CategoryOutput struct {
	Body CategoryResponseBody
}

// CreateCategoryOutput reports 201 for a new category and 200 for an existing one.
type CreateCategoryOutput struct {
	Status int
	Body   CategoryResponseBody
}

// CategoryListResponse wraps a list of categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"Categories"`
}

// CategoryListOutput wraps the category list response for Huma.
type CategoryListOutput struct {
	Body CategoryListResponse
}

// === Handlers ===

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	category, created, err := s.services.Category.Create(ctx, userID, service.CategoryRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return &CreateCategoryOutput{
		Status: status,
		Body:   CategoryResponseBody{Category: mapCategory(category)},
	}, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*CategoryListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.services.Category.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, mapCategory(c))
	}

	return &CategoryListOutput{Body: CategoryListResponse{Categories: out}}, nil
}

func (s *Server) handleGetCategory(ctx context.Context, input *CategoryIDInput) (*CategoryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Category.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: CategoryResponseBody{Category: mapCategory(category)}}, nil
}

func (s *Server) handleRenameCategory(ctx context.Context, input *RenameCategoryInput) (*CategoryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	category, err := s.services.Category.Rename(ctx, userID, input.ID, service.CategoryRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &CategoryOutput{Body: CategoryResponseBody{Category: mapCategory(category)}}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *CategoryIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Category.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted successfully"}}, nil
}

func mapCategory(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
