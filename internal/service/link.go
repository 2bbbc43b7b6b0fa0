package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/secondbrain/brain-server/internal/domain"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
)

// DefaultLinkMaxAttempts bounds hash draws when no limit is configured.
const DefaultLinkMaxAttempts = 8

// LinkService issues and resolves share links.
//
// A share link is an 8 character hex hash that exposes one user's whole
// content set, read-only, to anyone holding the URL. Hashes are drawn at
// random and inserted without a prior existence check. The store's
// uniqueness constraint decides collisions; a collision draws again.
type LinkService struct {
	store       store.Store
	baseURL     string
	maxAttempts int
	newHash     func() (string, error)
	logger      *slog.Logger
}

// NewLinkService creates a link service. baseURL prefixes issued URLs;
// maxAttempts < 1 falls back to DefaultLinkMaxAttempts.
func NewLinkService(store store.Store, baseURL string, maxAttempts int, logger *slog.Logger) *LinkService {
	if maxAttempts < 1 {
		maxAttempts = DefaultLinkMaxAttempts
	}
	return &LinkService{
		store:       store,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: maxAttempts,
		newHash:     id.ShareHash,
		logger:      logger,
	}
}

// IssuedLink is a share link together with its public URL.
type IssuedLink struct {
	*domain.ShareLink
	URL string
}

// SharedProfile is what a share link exposes: the owner's username and
// every item they have saved.
type SharedProfile struct {
	Username string
	Content  []ContentView
}

// Generate issues a new share link for userID.
func (s *LinkService) Generate(ctx context.Context, userID string) (*IssuedLink, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		hash, err := s.newHash()
		if err != nil {
			return nil, fmt.Errorf("draw share hash: %w", err)
		}

		link := &domain.ShareLink{
			Hash:      hash,
			UserID:    userID,
			CreatedAt: time.Now(),
		}

		err = s.store.CreateShareLink(ctx, link)
		if err == nil {
			if s.logger != nil {
				s.logger.Info("Share link issued",
					"user_id", userID,
					"hash", hash,
					"attempts", attempt,
				)
			}
			return s.issued(link), nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return nil, fmt.Errorf("create share link: %w", err)
		}

		if s.logger != nil {
			s.logger.Warn("Share hash collision, drawing again",
				"hash", hash,
				"attempt", attempt,
				"max_attempts", s.maxAttempts,
			)
		}
	}

	if s.logger != nil {
		s.logger.Error("Share hash space exhausted", "user_id", userID, "attempts", s.maxAttempts)
	}
	return nil, domainerrors.HashExhausted(s.maxAttempts)
}

// Resolve returns the profile a hash points at. It never writes.
func (s *LinkService) Resolve(ctx context.Context, hash string) (*SharedProfile, error) {
	if !id.IsShareHash(hash) {
		return nil, domainerrors.NotFound("Link not found")
	}

	link, err := s.store.GetShareLink(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Link not found")
		}
		return nil, fmt.Errorf("get share link: %w", err)
	}

	owner, err := s.store.GetUser(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.OrphanedLink("user not found!")
		}
		return nil, fmt.Errorf("get link owner: %w", err)
	}

	items, err := s.store.ListContent(ctx, owner.ID, domain.ContentFilter{})
	if err != nil {
		return nil, fmt.Errorf("list shared content: %w", err)
	}
	views, err := hydrate(ctx, s.store, owner.ID, items)
	if err != nil {
		return nil, err
	}

	return &SharedProfile{
		Username: owner.Username,
		Content:  views,
	}, nil
}

// List returns the links userID has issued, newest first.
func (s *LinkService) List(ctx context.Context, userID string) ([]IssuedLink, error) {
	links, err := s.store.ListShareLinks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}

	issued := make([]IssuedLink, 0, len(links))
	for _, l := range links {
		issued = append(issued, *s.issued(l))
	}
	return issued, nil
}

// URL returns the public URL for hash.
func (s *LinkService) URL(hash string) string {
	return s.baseURL + "/link/" + hash
}

func (s *LinkService) issued(l *domain.ShareLink) *IssuedLink {
	return &IssuedLink{ShareLink: l, URL: s.URL(l.Hash)}
}
