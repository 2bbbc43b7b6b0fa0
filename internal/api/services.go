package api

import (
	"github.com/secondbrain/brain-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth     *service.AuthService
	Link     *service.LinkService
	Content  *service.ContentService
	Category *service.CategoryService
	Tag      *service.TagService
}
