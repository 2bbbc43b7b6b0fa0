package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/secondbrain/brain-server/internal/auth"
	"github.com/secondbrain/brain-server/internal/domain"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// AuthService handles registration, login and token verification.
type AuthService struct {
	store  store.Store
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	logger *slog.Logger

	decoyOnce sync.Once
	decoy     string
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, hasher *auth.PasswordHasher, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// CredentialsRequest carries a username and password for register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Password string `json:"password" validate:"required,min=3,max=1024"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req CredentialsRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.UsernameTaken("username already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered",
			"user_id", user.ID,
			"username", user.Username,
		)
	}

	return s.issue(user)
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, req CredentialsRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the username exists: pay for one hash either way.
			s.hasher.Verify(s.decoyHash(), req.Password)
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID)
	}

	return s.issue(user)
}

// decoyHash is a hash with the hasher's live params that no password matches.
func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash(rand.Text())
	})
	return s.decoy
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Duration()),
	}, nil
}

// VerifyToken validates a session token and returns the user id it is
// bound to. Tokens for users that no longer exist are rejected.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", domainerrors.TokenExpired("token expired")
		}
		return "", domainerrors.Unauthorized("invalid token")
	}

	if _, err := s.store.GetUser(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainerrors.Unauthorized("user not found")
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	return claims.UserID, nil
}

// CurrentUser returns the authenticated user's record.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
