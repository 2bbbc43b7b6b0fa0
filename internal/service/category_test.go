package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/secondbrain/brain-server/internal/errors"
)

func TestCategoryService_Create_Idempotent(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")

	first, created, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Reading"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Reading"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	third, created, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "  READING "})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, "Reading", third.Name, "first spelling is kept")

	list, err := ts.categories.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategoryService_Create_Concurrent(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")

	const callers = 10
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, _, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Music"})
			if assert.NoError(t, err) {
				ids[i] = c.ID
			}
		}()
	}
	wg.Wait()

	for _, got := range ids {
		assert.Equal(t, ids[0], got)
	}
}

func TestCategoryService_Create_Validation(t *testing.T) {
	ts := setupServices(t)
	alice := ts.register(t, "alice")

	_, _, err := ts.categories.Create(context.Background(), alice.ID, CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCategoryService_PerUser(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	a, _, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Reading"})
	require.NoError(t, err)
	b, created, err := ts.categories.Create(ctx, bob.ID, CategoryRequest{Name: "Reading"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)

	_, err = ts.categories.Get(ctx, bob.ID, a.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = ts.categories.Rename(ctx, bob.ID, a.ID, CategoryRequest{Name: "Mine"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.ErrorIs(t, ts.categories.Delete(ctx, bob.ID, a.ID), domainerrors.ErrNotFound)
}

func TestCategoryService_Rename(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")

	reading, _, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Reading"})
	require.NoError(t, err)
	music, _, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Music"})
	require.NoError(t, err)

	_, err = ts.categories.Rename(ctx, alice.ID, music.ID, CategoryRequest{Name: "reading"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	renamed, err := ts.categories.Rename(ctx, alice.ID, reading.ID, CategoryRequest{Name: "Books"})
	require.NoError(t, err)
	assert.Equal(t, "Books", renamed.Name)

	// Changing only the case of a name is not a conflict with itself.
	renamed, err = ts.categories.Rename(ctx, alice.ID, reading.ID, CategoryRequest{Name: "BOOKS"})
	require.NoError(t, err)
	assert.Equal(t, "BOOKS", renamed.Name)
}

func TestCategoryService_Delete_LeavesContentUncategorized(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")

	cat, _, err := ts.categories.Create(ctx, alice.ID, CategoryRequest{Name: "Temp"})
	require.NoError(t, err)

	item, err := ts.content.Create(ctx, alice.ID, CreateContentRequest{Title: "x", Type: "note", CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Temp", item.CategoryName)

	require.NoError(t, ts.categories.Delete(ctx, alice.ID, cat.ID))

	got, err := ts.content.Get(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID)
	assert.Equal(t, "Uncategorized", got.CategoryName)
}
