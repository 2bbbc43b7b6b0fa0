package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Register new user",
		Description:   "Creates an account and returns a session token",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  MaxBodySize,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID:   "login",
		Method:        http.MethodPost,
		Path:          "/api/auth/login",
		Summary:       "User login",
		Description:   "Verifies credentials and returns a session token",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  MaxBodySize,
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/auth/me",
		Summary:     "Get current user",
		Description: "Returns the account the bearer token belongs to",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// CredentialsRequest is the request body for register and login.
type CredentialsRequest struct {
	Username string `json:"username" minLength:"1" maxLength:"64" doc:"Account name"`
	Password string `json:"password" minLength:"1" maxLength:"1024" doc:"Account password"`
}

// CredentialsInput wraps the credentials request for Huma.
type CredentialsInput struct {
	Body CredentialsRequest
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id" doc:"User ID"`
	Username string `json:"username" doc:"Username"`
}

// AuthResponse contains a user and their session token.
type AuthResponse struct {
	User      UserResponse `json:"user" doc:"Signed in user"`
	Token     string       `json:"token" doc:"PASETO bearer token"`
	ExpiresAt time.Time    `json:"expires_at" doc:"Token expiry"`
	Message   string       `json:"message" doc:"Outcome message"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// CurrentUserResponse contains the authenticated account.
type CurrentUserResponse struct {
	User UserResponse `json:"user" doc:"Authenticated user"`
}

// CurrentUserOutput wraps the current user response for Huma.
type CurrentUserOutput struct {
	Body CurrentUserResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *CredentialsInput) (*AuthOutput, error) {
	result, err := s.services.Auth.Register(ctx, service.CredentialsRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: authResponse(result, "User registered successfully")}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *CredentialsInput) (*AuthOutput, error) {
	result, err := s.services.Auth.Login(ctx, service.CredentialsRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: authResponse(result, "Login successful")}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*CurrentUserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CurrentUserOutput{Body: CurrentUserResponse{User: mapUser(user)}}, nil
}

func authResponse(result *service.AuthResult, message string) AuthResponse {
	return AuthResponse{
		User:      mapUser(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Message:   message,
	}
}

func mapUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
