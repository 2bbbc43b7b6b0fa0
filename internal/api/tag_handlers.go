package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Lists the tags used on the caller's content, ordered by slug",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)
}

// TagListResponse wraps a list of tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags"`
}

// TagListOutput wraps the tag list response for Huma.
type TagListOutput struct {
	Body TagListResponse
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, mapTag(t))
	}

	return &TagListOutput{Body: TagListResponse{Tags: out}}, nil
}
