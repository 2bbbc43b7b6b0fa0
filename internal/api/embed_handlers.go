package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/embed"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/validation"
)

func (s *Server) registerEmbedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "previewEmbed",
		Method:      http.MethodGet,
		Path:        "/api/embed",
		Summary:     "Preview embed",
		Description: "Returns the render descriptor a URL would get as the given content type, before saving it",
		Tags:        []string{"Content"},
	}, s.handlePreviewEmbed)
}

// EmbedInput contains query parameters for an embed preview.
type EmbedInput struct {
	Type        string `query:"type" required:"true" enum:"tweet,youtube,link,image,note,spotify,instagram" doc:"Content type"`
	URL         string `query:"url" maxLength:"2048" doc:"Source URL"`
	Title       string `query:"title" maxLength:"500" doc:"Optional title used as caption"`
	Description string `query:"description" maxLength:"2000" doc:"Note text"`
}

// EmbedOutput wraps the embed descriptor for Huma.
type EmbedOutput struct {
	Body embed.Embed
}

func (s *Server) handlePreviewEmbed(_ context.Context, input *EmbedInput) (*EmbedOutput, error) {
	if input.URL != "" && !validation.IsWebURL(input.URL) {
		return nil, domainerrors.ValidationWithDetails("url must be a valid http(s) URL",
			map[string]string{"url": "must be a valid http(s) URL"})
	}

	return &EmbedOutput{
		Body: embed.For(domain.ContentType(input.Type), embed.Item{
			Title:       input.Title,
			URL:         input.URL,
			Description: input.Description,
		}),
	}, nil
}
