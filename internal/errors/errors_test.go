package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeHashExhausted, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeValidation, http.StatusBadRequest},
		{CodeUsernameTaken, http.StatusBadRequest},
		{CodeOrphanedLink, http.StatusLengthRequired},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("content not found")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, Is(wrapped, ErrNotFound))
}

func TestError_WithCause(t *testing.T) {
	cause := New("disk full")
	err := Internal("failed to save").WithCause(cause)

	assert.Equal(t, "failed to save: disk full", err.Error())
	assert.True(t, Is(err, cause))
	assert.True(t, Is(err, ErrInternal))
}

func TestError_WithDetailsKeepsCode(t *testing.T) {
	err := ErrValidation.WithDetails(map[string]string{"title": "is required"})

	var domainErr *Error
	require.True(t, As(err, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.NotNil(t, domainErr.Details)
	assert.Nil(t, ErrValidation.Details)
}

func TestHashExhausted_Message(t *testing.T) {
	err := HashExhausted(8)
	assert.Contains(t, err.Message, "8 attempts")
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
}
