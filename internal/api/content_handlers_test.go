package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createContent(t *testing.T, token string, body map[string]any) ContentResponse {
	t.Helper()
	resp := ts.api.Post("/api/content", bearer(token), body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[ContentResponseBody](t, resp.Body.Bytes()).Content
}

func TestCreateContent(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	item := ts.createContent(t, token, map[string]any{
		"title":         "Gopher song",
		"type":          "spotify",
		"url":           "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
		"description":   "<p>Listen <strong>loud</strong></p>",
		"tags":          []string{"Music", "music", "Go Lang"},
		"category_name": "  Reading  ",
	})

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "spotify", item.Type)
	assert.Equal(t, "Listen **loud**", item.Description)
	assert.Equal(t, "Reading", item.CategoryName)
	assert.NotEmpty(t, item.CategoryID)
	require.Len(t, item.Tags, 2)
	assert.Equal(t, "music", item.Tags[0].Slug)
	assert.Equal(t, "go-lang", item.Tags[1].Slug)
	assert.Equal(t, "iframe", string(item.Embed.Kind))
	assert.Equal(t, "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC", item.Embed.Src)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestCreateContent_Validation(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown type", map[string]any{"title": "x", "type": "podcast"}},
		{"missing title", map[string]any{"type": "note"}},
		{"blank title", map[string]any{"title": "   ", "type": "note"}},
		{"non web url", map[string]any{"title": "x", "type": "link", "url": "ftp://example.com/file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/content", bearer(token), tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", decode[APIError](t, resp.Body.Bytes()).Code)
		})
	}
}

func TestCreateContent_NonLatinTags(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	for _, tag := range []string{"日本語", "книги", "🎵"} {
		t.Run(tag, func(t *testing.T) {
			item := ts.createContent(t, token, map[string]any{"title": "x", "type": "note", "tags": []string{tag}})
			require.Len(t, item.Tags, 1)
			assert.Equal(t, tag, item.Tags[0].Name)
			assert.Equal(t, tag, item.Tags[0].Slug)

			resp := ts.api.Get("/api/content?tag="+url.QueryEscape(tag), bearer(token))
			require.Equal(t, http.StatusOK, resp.Code)
			listed := decode[ContentListResponse](t, resp.Body.Bytes()).Content
			require.Len(t, listed, 1)
			assert.Equal(t, item.ID, listed[0].ID)
		})
	}

	resp := ts.api.Post("/api/content", bearer(token), map[string]any{"title": "x", "type": "note", "tags": []string{"  "}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestContent_CamelCaseCategoryFields(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	item := ts.createContent(t, token, map[string]any{"title": "x", "type": "note", "categoryName": "Reading"})
	assert.Equal(t, "Reading", item.CategoryName)
	require.NotEmpty(t, item.CategoryID)

	other := ts.createContent(t, token, map[string]any{"title": "y", "type": "note", "categoryId": item.CategoryID})
	assert.Equal(t, item.CategoryID, other.CategoryID)

	music := decode[CategoryResponseBody](t, ts.api.Post("/api/category", bearer(token), map[string]any{"name": "Music"}).Body.Bytes()).Category
	resp := ts.api.Patch("/api/content/"+other.ID, bearer(token), map[string]any{"categoryId": music.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Music", decode[ContentResponseBody](t, resp.Body.Bytes()).Content.CategoryName)

	// The snake_case field wins when both are sent.
	resp = ts.api.Patch("/api/content/"+other.ID, bearer(token), map[string]any{"category_id": item.CategoryID, "categoryId": music.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Reading", decode[ContentResponseBody](t, resp.Body.Bytes()).Content.CategoryName)
}

func TestCreateContent_UnknownCategory(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	resp := ts.api.Post("/api/content", bearer(token), map[string]any{
		"title":       "x",
		"type":        "note",
		"category_id": "category-missing",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestContent_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	alice, _ := ts.register(t, "alice")
	bob, _ := ts.register(t, "bob")

	item := ts.createContent(t, alice, map[string]any{"title": "private", "type": "note"})

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/content/"+item.ID, bearer(bob)).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Patch("/api/content/"+item.ID, bearer(bob), map[string]any{"title": "mine"}).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Delete("/api/content/"+item.ID, bearer(bob)).Code)

	resp := ts.api.Get("/api/content", bearer(bob))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[ContentListResponse](t, resp.Body.Bytes()).Content)

	// Still intact for the owner.
	resp = ts.api.Get("/api/content/"+item.ID, bearer(alice))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "private", decode[ContentResponseBody](t, resp.Body.Bytes()).Content.Title)
}

func TestListContent_Filters(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	ts.createContent(t, token, map[string]any{"title": "n1", "type": "note", "tags": []string{"go"}})
	ts.createContent(t, token, map[string]any{"title": "l1", "type": "link", "url": "https://go.dev", "tags": []string{"go"}, "category_name": "Dev"})
	ts.createContent(t, token, map[string]any{"title": "n2", "type": "note"})

	titles := func(query string) []string {
		resp := ts.api.Get("/api/content"+query, bearer(token))
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		var out []string
		for _, c := range decode[ContentListResponse](t, resp.Body.Bytes()).Content {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, []string{"n1", "l1", "n2"}, titles(""))
	assert.Equal(t, []string{"n1", "n2"}, titles("?type=note"))
	assert.Equal(t, []string{"n1", "l1"}, titles("?tag=Go"))
	assert.Empty(t, titles("?tag=never-used"))

	cats := decode[CategoryListResponse](t, ts.api.Get("/api/category", bearer(token)).Body.Bytes())
	require.Len(t, cats.Categories, 1)
	assert.Equal(t, []string{"l1"}, titles("?category_id="+cats.Categories[0].ID))

	resp := ts.api.Get("/api/content?type=podcast", bearer(token))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateContent(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")

	item := ts.createContent(t, token, map[string]any{
		"title":       "draft",
		"type":        "link",
		"url":         "https://example.com",
		"description": "keep me",
		"tags":        []string{"a", "b"},
	})

	resp := ts.api.Patch("/api/content/"+item.ID, bearer(token), map[string]any{
		"title": "final",
		"tags":  []string{},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	updated := decode[ContentResponseBody](t, resp.Body.Bytes()).Content
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "https://example.com", updated.URL)
	assert.Empty(t, updated.Tags)
	assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt))

	resp = ts.api.Patch("/api/content/"+item.ID, bearer(token), map[string]any{"url": "javascript:alert(1)"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteContent(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.register(t, "alice")
	item := ts.createContent(t, token, map[string]any{"title": "gone", "type": "note"})

	resp := ts.api.Delete("/api/content/"+item.ID, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, decode[MessageResponse](t, resp.Body.Bytes()).Message)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/content/"+item.ID, bearer(token)).Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Delete("/api/content/"+item.ID, bearer(token)).Code)
}

func TestContent_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/api/content").Code)
	assert.Equal(t, http.StatusUnauthorized, ts.api.Post("/api/content", map[string]any{"title": "x", "type": "note"}).Code)
}

func TestListTags(t *testing.T) {
	ts := setupTestServer(t)
	alice, _ := ts.register(t, "alice")
	bob, _ := ts.register(t, "bob")

	ts.createContent(t, alice, map[string]any{"title": "x", "type": "note", "tags": []string{"zeta", "Alpha"}})
	ts.createContent(t, bob, map[string]any{"title": "y", "type": "note", "tags": []string{"bob-only"}})

	resp := ts.api.Get("/api/tags", bearer(alice))
	require.Equal(t, http.StatusOK, resp.Code)

	tags := decode[TagListResponse](t, resp.Body.Bytes()).Tags
	require.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Slug)
	assert.Equal(t, "zeta", tags[1].Slug)
}

func TestPreviewEmbed(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("youtube short link", func(t *testing.T) {
		resp := ts.api.Get("/api/embed?type=youtube&url=https://youtu.be/abc123")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		e := decode[map[string]any](t, resp.Body.Bytes())
		assert.Equal(t, "iframe", e["kind"])
		assert.Equal(t, "https://www.youtube.com/embed/abc123", e["src"])
	})

	t.Run("invalid url", func(t *testing.T) {
		resp := ts.api.Get("/api/embed?type=link&url=notaurl")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("missing type", func(t *testing.T) {
		resp := ts.api.Get("/api/embed?url=https://example.com")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
