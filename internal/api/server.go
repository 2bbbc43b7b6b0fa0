// Package api provides the HTTP API server and handlers for brain-server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/secondbrain/brain-server/internal/http/response"
	"github.com/secondbrain/brain-server/internal/ratelimit"
	"github.com/secondbrain/brain-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	// CORSOrigins lists allowed browser origins; empty allows any.
	CORSOrigins []string
	// AuthRatePerMinute caps register and login calls per client IP.
	AuthRatePerMinute int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rate := opts.AuthRatePerMinute
	if rate <= 0 {
		rate = DefaultAuthRatePerMinute
	}

	s := &Server{
		store:           st,
		services:        services,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: ratelimit.PerMinute(rate),
	}

	s.setupMiddleware(opts)
	s.api = humachi.New(s.router, newHumaConfig())
	RegisterErrorHandler(logger)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func newHumaConfig() huma.Config {
	cfg := huma.DefaultConfig("Second Brain API", "1.0.0")
	cfg.Info.Description = "Save links, notes and media, organize them, and share them through public links."
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	// Plain JSON bodies: no $schema field or describedby link.
	cfg.CreateHooks = nil
	return cfg
}

// setupMiddleware configures middleware stack. It must run before any route
// is registered on the router.
func (s *Server) setupMiddleware(opts Options) {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(s.recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, authRateLimitPaths, s.logger))
	s.router.Use(authMiddleware(s.services.Auth))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "method not allowed", s.logger)
	})
}

// setupRoutes registers every huma operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerLinkRoutes()
	s.registerContentRoutes()
	s.registerCategoryRoutes()
	s.registerTagRoutes()
	s.registerEmbedRoutes()
}
