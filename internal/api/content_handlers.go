package api

import (
	"cmp"
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/embed"
	"github.com/secondbrain/brain-server/internal/service"
)

func (s *Server) registerContentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createContent",
		Method:        http.MethodPost,
		Path:          "/api/content",
		Summary:       "Save content",
		Description:   "Saves a link, note or media item. Tags are created on first use; category_name creates the category if needed.",
		Tags:          []string{"Content"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  MaxBodySize,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listContent",
		Method:      http.MethodGet,
		Path:        "/api/content",
		Summary:     "List content",
		Description: "Lists the caller's items, oldest first, optionally filtered by type, category or tag",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "getContent",
		Method:      http.MethodGet,
		Path:        "/api/content/{id}",
		Summary:     "Get content",
		Description: "Returns one of the caller's items",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetContent)

	huma.Register(s.api, huma.Operation{
		OperationID:  "updateContent",
		Method:       http.MethodPatch,
		Path:         "/api/content/{id}",
		Summary:      "Update content",
		Description:  "Partially updates one of the caller's items. Omitted fields are unchanged.",
		Tags:         []string{"Content"},
		MaxBodyBytes: MaxBodySize,
		Security:     []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteContent",
		Method:      http.MethodDelete,
		Path:        "/api/content/{id}",
		Summary:     "Delete content",
		Description: "Deletes one of the caller's items",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteContent)
}

// === DTOs ===

// TagResponse is a tag attached to content.
type TagResponse struct {
	ID   string `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Display name"`
	Slug string `json:"slug" doc:"URL-safe identity"`
}

// ContentResponse is a saved item with its tags, category and embed resolved.
type ContentResponse struct {
	ID           string        `json:"id" doc:"Content ID"`
	Title        string        `json:"title" doc:"Title"`
	URL          string        `json:"url,omitempty" doc:"Source URL"`
	Type         string        `json:"type" doc:"Content type"`
	Description  string        `json:"description,omitempty" doc:"Markdown description"`
	Tags         []TagResponse `json:"tags" doc:"Tags in the order given"`
	CategoryID   string        `json:"category_id,omitempty" doc:"Category ID"`
	CategoryName string        `json:"category_name" doc:"Category name, or Uncategorized"`
	Embed        embed.Embed   `json:"embed" doc:"How to render the item"`
	CreatedAt    time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time     `json:"updated_at" doc:"Last update time"`
}

// CreateContentRequest is the request body for saving content.
type CreateContentRequest struct {
	Title        string   `json:"title" minLength:"1" maxLength:"500" doc:"Title"`
	URL          string   `json:"url,omitempty" maxLength:"2048" doc:"Source URL (http or https)"`
	Type         string   `json:"type" enum:"tweet,youtube,link,image,note,spotify,instagram" doc:"Content type"`
	Description  string   `json:"description,omitempty" maxLength:"20000" doc:"Description; HTML is converted to Markdown"`
	Tags         []string `json:"tags,omitempty" maxItems:"50" doc:"Tag names"`
	CategoryID   string   `json:"category_id,omitempty" doc:"Existing category ID"`
	CategoryName string   `json:"category_name,omitempty" maxLength:"100" doc:"Category name, created if missing"`

	// camelCase spellings sent by the web client.
	CategoryIDAlias   string `json:"categoryId,omitempty" doc:"Alias of category_id"`
	CategoryNameAlias string `json:"categoryName,omitempty" maxLength:"100" doc:"Alias of category_name"`
}

// CreateContentInput wraps the create content request for Huma.
type CreateContentInput struct {
	Body CreateContentRequest
}

// UpdateContentRequest is the request body for a partial update.
type UpdateContentRequest struct {
	Title        *string  `json:"title,omitempty" minLength:"1" maxLength:"500" doc:"Title"`
	URL          *string  `json:"url,omitempty" maxLength:"2048" doc:"Source URL; empty clears it"`
	Type         *string  `json:"type,omitempty" enum:"tweet,youtube,link,image,note,spotify,instagram" doc:"Content type"`
	Description  *string  `json:"description,omitempty" maxLength:"20000" doc:"Description; empty clears it"`
	Tags         []string `json:"tags,omitempty" maxItems:"50" doc:"Replacement tag names; an empty list removes all tags"`
	CategoryID   *string  `json:"category_id,omitempty" doc:"Category ID; empty uncategorizes"`
	CategoryName *string  `json:"category_name,omitempty" maxLength:"100" doc:"Category name, created if missing"`

	CategoryIDAlias   *string `json:"categoryId,omitempty" doc:"Alias of category_id"`
	CategoryNameAlias *string `json:"categoryName,omitempty" maxLength:"100" doc:"Alias of category_name"`
}

// UpdateContentInput wraps the update content request for Huma.
type UpdateContentInput struct {
	ID   string `path:"id" doc:"Content ID"`
	Body UpdateContentRequest
}

// ListContentInput contains query parameters for listing content.
type ListContentInput struct {
	Type       string `query:"type" enum:"tweet,youtube,link,image,note,spotify,instagram" doc:"Only items of this type"`
	CategoryID string `query:"category_id" doc:"Only items in this category"`
	Tag        string `query:"tag" doc:"Only items carrying this tag name"`
}

// ContentIDInput contains the content ID path parameter.
type ContentIDInput struct {
	ID string `path:"id" doc:"Content ID"`
}

// ContentResponseBody wraps a single item.
type ContentResponseBody struct {
	Content ContentResponse `json:"content" doc:"Content item"`
}

// ContentOutput wraps the content response for Huma.
type ContentOutput struct {
	Body ContentResponseBody
}

// ContentListResponse wraps a list of items.
type ContentListResponse struct {
	Content []ContentResponse `json:"content" doc:"Content items"`
}

// ContentListOutput wraps the content list response for Huma.
type ContentListOutput struct {
	Body ContentListResponse
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Outcome message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleCreateContent(ctx context.Context, input *CreateContentInput) (*ContentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Content.Create(ctx, userID, service.CreateContentRequest{
		Title:        input.Body.Title,
		URL:          input.Body.URL,
		Type:         input.Body.Type,
		Description:  input.Body.Description,
		Tags:         input.Body.Tags,
		CategoryID:   cmp.Or(input.Body.CategoryID, input.Body.CategoryIDAlias),
		CategoryName: cmp.Or(input.Body.CategoryName, input.Body.CategoryNameAlias),
	})
	if err != nil {
		return nil, err
	}

	return &ContentOutput{Body: ContentResponseBody{Content: mapContent(view)}}, nil
}

func (s *Server) handleListContent(ctx context.Context, input *ListContentInput) (*ContentListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Content.List(ctx, userID, service.ListContentRequest{
		Type:       input.Type,
		CategoryID: input.CategoryID,
		Tag:        input.Tag,
	})
	if err != nil {
		return nil, err
	}

	return &ContentListOutput{Body: ContentListResponse{Content: mapContentList(views)}}, nil
}

func (s *Server) handleGetContent(ctx context.Context, input *ContentIDInput) (*ContentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Content.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ContentOutput{Body: ContentResponseBody{Content: mapContent(view)}}, nil
}

func (s *Server) handleUpdateContent(ctx context.Context, input *UpdateContentInput) (*ContentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Content.Update(ctx, userID, input.ID, service.UpdateContentRequest{
		Title:        input.Body.Title,
		URL:          input.Body.URL,
		Type:         input.Body.Type,
		Description:  input.Body.Description,
		Tags:         input.Body.Tags,
		CategoryID:   cmp.Or(input.Body.CategoryID, input.Body.CategoryIDAlias),
		CategoryName: cmp.Or(input.Body.CategoryName, input.Body.CategoryNameAlias),
	})
	if err != nil {
		return nil, err
	}

	return &ContentOutput{Body: ContentResponseBody{Content: mapContent(view)}}, nil
}

func (s *Server) handleDeleteContent(ctx context.Context, input *ContentIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Content.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Content deleted successfully"}}, nil
}

// === Mappers ===

func mapContent(v *service.ContentView) ContentResponse {
	tags := make([]TagResponse, 0, len(v.Tags))
	for _, t := range v.Tags {
		tags = append(tags, mapTag(t))
	}

	return ContentResponse{
		ID:           v.ID,
		Title:        v.Title,
		URL:          v.URL,
		Type:         string(v.Type),
		Description:  v.Description,
		Tags:         tags,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Embed:        embed.ForContent(v.Content),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func mapContentList(views []service.ContentView) []ContentResponse {
	out := make([]ContentResponse, 0, len(views))
	for i := range views {
		out = append(out, mapContent(&views[i]))
	}
	return out
}

func mapTag(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}
