package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-server/internal/auth"
)

func TestRegister_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": "alice",
		"password": "pw1",
	})

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decode[AuthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "alice", body.User.Username)
	assert.NotEmpty(t, body.User.ID)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestRegister_UsernameTaken(t *testing.T) {
	ts := setupTestServer(t)
	ts.register(t, "alice")

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"username": "Alice",
		"password": "another",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode[APIError](t, resp.Body.Bytes())
	assert.Equal(t, "USERNAME_TAKEN", body.Code)
}

func TestRegister_Validation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing password", map[string]any{"username": "alice"}},
		{"short username", map[string]any{"username": "al", "password": "pw1"}},
		{"short password", map[string]any{"username": "alice", "password": "pw"}},
		{"bad characters", map[string]any{"username": "al ice!", "password": "pw1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/auth/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			body := decode[APIError](t, resp.Body.Bytes())
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	_, userID := ts.register(t, "alice")

	t.Run("success", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/login", map[string]any{
			"username": "alice",
			"password": "pw1",
		})

		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		body := decode[AuthResponse](t, resp.Body.Bytes())
		assert.Equal(t, userID, body.User.ID)
		assert.Equal(t, "Login successful", body.Message)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/login", map[string]any{
			"username": "alice",
			"password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		body := decode[APIError](t, resp.Body.Bytes())
		assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := ts.api.Post("/api/auth/login", map[string]any{
			"username": "bob",
			"password": "pw1",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.register(t, "alice")

	t.Run("authenticated", func(t *testing.T) {
		resp := ts.api.Get("/api/auth/me", bearer(token))

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		body := decode[CurrentUserResponse](t, resp.Body.Bytes())
		assert.Equal(t, userID, body.User.ID)
		assert.Equal(t, "alice", body.User.Username)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := ts.api.Get("/api/auth/me")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		body := decode[APIError](t, resp.Body.Bytes())
		assert.Equal(t, "UNAUTHORIZED", body.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := ts.api.Get("/api/auth/me", bearer("v4.local.garbage"))

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := auth.NewTokenService(testKeyHex, -time.Minute)
		require.NoError(t, err)
		stale, err := expired.Generate(userID)
		require.NoError(t, err)

		resp := ts.api.Get("/api/auth/me", bearer(stale))

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		body := decode[APIError](t, resp.Body.Bytes())
		assert.Equal(t, "TOKEN_EXPIRED", body.Code)
	})
}
