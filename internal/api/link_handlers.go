package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-server/internal/service"
)

func (s *Server) registerLinkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createShareLink",
		Method:        http.MethodPost,
		Path:          "/api/links",
		Summary:       "Create share link",
		Description:   "Issues a new public link exposing the caller's saved content. Every call returns a fresh hash.",
		Tags:          []string{"Sharing"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateShareLink)

	huma.Register(s.api, huma.Operation{
		OperationID: "listShareLinks",
		Method:      http.MethodGet,
		Path:        "/api/links",
		Summary:     "List share links",
		Description: "Lists the links the caller has issued, newest first",
		Tags:        []string{"Sharing"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListShareLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveShareLink",
		Method:      http.MethodGet,
		Path:        "/link/{hash}",
		Summary:     "Open share link",
		Description: "Returns the username and saved content behind a share link. No authentication required.",
		Tags:        []string{"Sharing"},
	}, s.handleResolveShareLink)
}

// === DTOs ===

// ShareLinkResponse is an issued share link.
type ShareLinkResponse struct {
	Hash      string     `json:"hash" doc:"8 character hex hash"`
	URL       string     `json:"url" doc:"Public URL"`
	CreatedAt *time.Time `json:"created_at,omitempty" doc:"Issue time"`
}

// CreateShareLinkResponse wraps a newly issued link.
type CreateShareLinkResponse struct {
	Link ShareLinkResponse `json:"link" doc:"Issued link"`
}

// CreateShareLinkOutput wraps the create link response for Huma.
type CreateShareLinkOutput struct {
	Body CreateShareLinkResponse
}

// ShareLinkListResponse wraps the caller's links.
type ShareLinkListResponse struct {
	Links []ShareLinkResponse `json:"links" doc:"Issued links"`
}

// ShareLinkListOutput wraps the link list response for Huma.
type ShareLinkListOutput struct {
	Body ShareLinkListResponse
}

// ResolveShareLinkInput contains the hash path parameter.
type ResolveShareLinkInput struct {
	Hash string `path:"hash" doc:"Share hash"`
}

// SharedProfileResponse is the public view behind a share link.
type SharedProfileResponse struct {
	Username string            `json:"username" doc:"Owner's username"`
	Content  []ContentResponse `json:"content" doc:"Everything the owner has saved"`
}

// SharedProfileOutput wraps the shared profile for Huma.
type SharedProfileOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         SharedProfileResponse
}

// === Handlers ===

func (s *Server) handleCreateShareLink(ctx context.Context, _ *struct{}) (*CreateShareLinkOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.services.Link.Generate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CreateShareLinkOutput{
		Body: CreateShareLinkResponse{
			Link: ShareLinkResponse{Hash: link.Hash, URL: link.URL},
		},
	}, nil
}

func (s *Server) handleListShareLinks(ctx context.Context, _ *struct{}) (*ShareLinkListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.services.Link.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ShareLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, mapShareLink(l))
	}

	return &ShareLinkListOutput{Body: ShareLinkListResponse{Links: out}}, nil
}

func (s *Server) handleResolveShareLink(ctx context.Context, input *ResolveShareLinkInput) (*SharedProfileOutput, error) {
	profile, err := s.services.Link.Resolve(ctx, input.Hash)
	if err != nil {
		return nil, err
	}

	return &SharedProfileOutput{
		CacheControl: CacheNoStore,
		Body: SharedProfileResponse{
			Username: profile.Username,
			Content:  mapContentList(profile.Content),
		},
	}, nil
}

func mapShareLink(l service.IssuedLink) ShareLinkResponse {
	createdAt := l.CreatedAt
	return ShareLinkResponse{
		Hash:      l.Hash,
		URL:       l.URL,
		CreatedAt: &createdAt,
	}
}
