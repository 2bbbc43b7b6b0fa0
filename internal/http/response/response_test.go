package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "test", result["message"])
}

func TestJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusNoContent, nil, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   domainerrors.Code
	}{
		{
			name:   "not found",
			write:  func(w http.ResponseWriter) { NotFound(w, "route not found", discardLogger()) },
			status: http.StatusNotFound,
			code:   domainerrors.CodeNotFound,
		},
		{
			name:   "method not allowed",
			write:  func(w http.ResponseWriter) { MethodNotAllowed(w, "method not allowed", nil) },
			status: http.StatusMethodNotAllowed,
			code:   domainerrors.CodeValidation,
		},
		{
			name:   "too many requests",
			write:  func(w http.ResponseWriter) { TooManyRequests(w, "slow down", discardLogger()) },
			status: http.StatusTooManyRequests,
			code:   domainerrors.CodeRateLimited,
		},
		{
			name:   "internal",
			write:  func(w http.ResponseWriter) { InternalError(w, "boom", nil) },
			status: http.StatusInternalServerError,
			code:   domainerrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, string(tt.code), body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.OrphanedLink("user not found!"), discardLogger())

	assert.Equal(t, http.StatusLengthRequired, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "ORPHANED_LINK", body.Code)
	assert.Equal(t, "user not found!", body.Message)
}

func TestHandleError_StoreError(t *testing.T) {
	w := httptest.NewRecorder()

	err := fmt.Errorf("get content: %w", store.ErrNotFound.WithMessage("content not found"))
	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "content not found", body.Message)
}

func TestHandleError_UnknownErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, fmt.Errorf("disk on fire"), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "disk")
}
