// Package storetest holds the behavioral contract every store.Store
// backend must satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/id"
	"github.com/secondbrain/brain-server/internal/store"
)

// Factory returns a fresh, empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

// Run executes the full contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Content", func(t *testing.T) { testContent(t, newStore(t)) })
	t.Run("ContentScoping", func(t *testing.T) { testContentScoping(t, newStore(t)) })
	t.Run("ContentFilter", func(t *testing.T) { testContentFilter(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("Tags", func(t *testing.T) { testTags(t, newStore(t)) })
	t.Run("ShareLinks", func(t *testing.T) { testShareLinks(t, newStore(t)) })
	t.Run("ShareLinksConcurrent", func(t *testing.T) { testShareLinksConcurrent(t, newStore(t)) })
}

// NewUser builds a user with a fresh id.
func NewUser(username string) *domain.User {
	u := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     username,
		PasswordHash: "$argon2id$test",
	}
	u.InitTimestamps()
	return u
}

// NewContent builds a content item for userID with a fresh id.
func NewContent(userID, title string, t domain.ContentType) *domain.Content {
	c := &domain.Content{
		ID:     id.MustGenerate("content"),
		UserID: userID,
		Title:  title,
		Type:   t,
	}
	c.InitTimestamps()
	return c
}

// NewCategory builds a category for userID with a fresh id.
func NewCategory(userID, name, nameKey string) *domain.Category {
	c := &domain.Category{
		ID:      id.MustGenerate("category"),
		UserID:  userID,
		Name:    name,
		NameKey: nameKey,
	}
	c.InitTimestamps()
	return c
}

func mustCreateUser(t *testing.T, s store.Store, username string) *domain.User {
	t.Helper()
	u := NewUser(username)
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice")

	got, err := s.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, alice.PasswordHash, got.PasswordHash)
	assert.WithinDuration(t, alice.CreatedAt, got.CreatedAt, time.Millisecond)

	got, err = s.GetUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	err = s.CreateUser(ctx, NewUser("Alice"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.GetUser(ctx, "user-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testContent(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")

	go1, _, err := s.FindOrCreateTag(ctx, "Go", "go")
	require.NoError(t, err)
	db, _, err := s.FindOrCreateTag(ctx, "Databases", "databases")
	require.NoError(t, err)

	c := NewContent(alice.ID, "Effective Go", domain.ContentLink)
	c.URL = "https://go.dev/doc/effective_go"
	c.Description = "the classic"
	c.TagIDs = []string{db.ID, go1.ID}
	require.NoError(t, s.CreateContent(ctx, c))

	got, err := s.GetContent(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Title, got.Title)
	assert.Equal(t, c.URL, got.URL)
	assert.Equal(t, domain.ContentLink, got.Type)
	assert.Equal(t, c.Description, got.Description)
	assert.Equal(t, []string{db.ID, go1.ID}, got.TagIDs, "tag order is preserved")

	got.Title = "Effective Go (2nd read)"
	got.TagIDs = []string{go1.ID}
	got.CategoryID = "category-gone"
	got.Touch()
	require.NoError(t, s.UpdateContent(ctx, got))

	again, err := s.GetContent(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Effective Go (2nd read)", again.Title)
	assert.Equal(t, []string{go1.ID}, again.TagIDs)
	assert.Equal(t, "category-gone", again.CategoryID, "dangling category ids are kept")

	second := NewContent(alice.ID, "A note", domain.ContentNote)
	second.CreatedAt = c.CreatedAt.Add(time.Second)
	require.NoError(t, s.CreateContent(ctx, second))

	list, err := s.ListContent(ctx, alice.ID, domain.ContentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c.ID, list[0].ID, "oldest first")
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, s.DeleteContent(ctx, alice.ID, c.ID))
	_, err = s.GetContent(ctx, alice.ID, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteContent(ctx, alice.ID, c.ID), store.ErrNotFound)
}

func testContentScoping(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	c := NewContent(alice.ID, "private", domain.ContentNote)
	require.NoError(t, s.CreateContent(ctx, c))

	_, err := s.GetContent(ctx, bob.ID, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	hijack := *c
	hijack.UserID = bob.ID
	hijack.Title = "mine now"
	assert.ErrorIs(t, s.UpdateContent(ctx, &hijack), store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteContent(ctx, bob.ID, c.ID), store.ErrNotFound)

	list, err := s.ListContent(ctx, bob.ID, domain.ContentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetContent(ctx, alice.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func testContentFilter(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")

	tag, _, err := s.FindOrCreateTag(ctx, "music", "music")
	require.NoError(t, err)

	base := time.Now()
	song := NewContent(alice.ID, "song", domain.ContentSpotify)
	song.TagIDs = []string{tag.ID}
	song.CategoryID = "category-a"
	song.CreatedAt = base

	clip := NewContent(alice.ID, "clip", domain.ContentYouTube)
	clip.TagIDs = []string{tag.ID}
	clip.CreatedAt = base.Add(time.Second)

	note := NewContent(alice.ID, "note", domain.ContentNote)
	note.CategoryID = "category-a"
	note.CreatedAt = base.Add(2 * time.Second)

	for _, c := range []*domain.Content{song, clip, note} {
		require.NoError(t, s.CreateContent(ctx, c))
	}

	titles := func(f domain.ContentFilter) []string {
		list, err := s.ListContent(ctx, alice.ID, f)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, c := range list {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, []string{"song", "clip", "note"}, titles(domain.ContentFilter{}))
	assert.Equal(t, []string{"clip"}, titles(domain.ContentFilter{Type: domain.ContentYouTube}))
	assert.Equal(t, []string{"song", "note"}, titles(domain.ContentFilter{CategoryID: "category-a"}))
	assert.Equal(t, []string{"song", "clip"}, titles(domain.ContentFilter{TagID: tag.ID}))
	assert.Equal(t, []string{"song"}, titles(domain.ContentFilter{TagID: tag.ID, CategoryID: "category-a"}))
	assert.Empty(t, titles(domain.ContentFilter{Type: domain.ContentImage}))
}

func testCategories(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	reading := NewCategory(alice.ID, "Reading", "reading")
	require.NoError(t, s.CreateCategory(ctx, reading))

	err := s.CreateCategory(ctx, NewCategory(alice.ID, "READING", "reading"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Names are unique per user, not globally.
	require.NoError(t, s.CreateCategory(ctx, NewCategory(bob.ID, "Reading", "reading")))

	got, err := s.GetCategoryByNameKey(ctx, alice.ID, "reading")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, got.ID)

	_, err = s.GetCategory(ctx, bob.ID, reading.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	music := NewCategory(alice.ID, "Music", "music")
	music.CreatedAt = reading.CreatedAt.Add(time.Second)
	require.NoError(t, s.CreateCategory(ctx, music))

	list, err := s.ListCategories(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Reading", list[0].Name)
	assert.Equal(t, "Music", list[1].Name)

	// Renaming onto an existing name conflicts.
	music.Name, music.NameKey = "reading", "reading"
	assert.ErrorIs(t, s.UpdateCategory(ctx, music), store.ErrAlreadyExists)

	music.Name, music.NameKey = "Songs", "songs"
	music.Touch()
	require.NoError(t, s.UpdateCategory(ctx, music))

	_, err = s.GetCategoryByNameKey(ctx, alice.ID, "music")
	assert.ErrorIs(t, err, store.ErrNotFound, "old name key is released")
	require.NoError(t, s.CreateCategory(ctx, NewCategory(alice.ID, "Music", "music")))

	require.NoError(t, s.DeleteCategory(ctx, alice.ID, reading.ID))
	assert.ErrorIs(t, s.DeleteCategory(ctx, alice.ID, reading.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, alice.ID, "category-missing"), store.ErrNotFound)
}

func testTags(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	first, created, err := s.FindOrCreateTag(ctx, "Go Lang", "go-lang")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := s.FindOrCreateTag(ctx, "go lang", "go-lang")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Go Lang", again.Name, "first spelling wins")

	bySlug, err := s.GetTagBySlug(ctx, "go-lang")
	require.NoError(t, err)
	assert.Equal(t, first.ID, bySlug.ID)

	_, err = s.GetTagBySlug(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	art, _, err := s.FindOrCreateTag(ctx, "Art", "art")
	require.NoError(t, err)

	tags, err := s.GetTagsByIDs(ctx, []string{first.ID, "tag-missing", art.ID})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, first.ID, tags[0].ID)
	assert.Equal(t, art.ID, tags[1].ID)

	c := NewContent(alice.ID, "x", domain.ContentNote)
	c.TagIDs = []string{first.ID, art.ID}
	require.NoError(t, s.CreateContent(ctx, c))

	c2 := NewContent(alice.ID, "y", domain.ContentNote)
	c2.TagIDs = []string{art.ID}
	require.NoError(t, s.CreateContent(ctx, c2))

	used, err := s.ListTagsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, used, 2)
	assert.Equal(t, "art", used[0].Slug)
	assert.Equal(t, "go-lang", used[1].Slug)

	none, err := s.ListTagsForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testShareLinks(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")

	now := time.Now()
	older := &domain.ShareLink{Hash: "0a1b2c3d", UserID: alice.ID, CreatedAt: now}
	newer := &domain.ShareLink{Hash: "ffffffff", UserID: alice.ID, CreatedAt: now.Add(time.Second)}
	require.NoError(t, s.CreateShareLink(ctx, older))
	require.NoError(t, s.CreateShareLink(ctx, newer))

	dup := &domain.ShareLink{Hash: "0a1b2c3d", UserID: "user-other", CreatedAt: now}
	assert.ErrorIs(t, s.CreateShareLink(ctx, dup), store.ErrAlreadyExists)

	got, err := s.GetShareLink(ctx, "0a1b2c3d")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID, "a collision never overwrites the original owner")

	_, err = s.GetShareLink(ctx, "00000000")
	assert.ErrorIs(t, err, store.ErrNotFound)

	links, err := s.ListShareLinks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "ffffffff", links[0].Hash, "newest first")
	assert.Equal(t, "0a1b2c3d", links[1].Hash)

	// Links whose owner no longer exists can still be stored and read.
	orphan := &domain.ShareLink{Hash: "deadbeef", UserID: "user-deleted", CreatedAt: now}
	require.NoError(t, s.CreateShareLink(ctx, orphan))
	got, err = s.GetShareLink(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "user-deleted", got.UserID)
}

// testShareLinksConcurrent races many writers on the same hash. Exactly one
// must win and every other writer must see ErrAlreadyExists.
func testShareLinksConcurrent(t *testing.T, s store.Store) {
	ctx := context.Background()
	const writers = 16

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		winner   string
		failures []error
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			err := s.CreateShareLink(ctx, &domain.ShareLink{
				Hash:      "abcdef01",
				UserID:    userID,
				CreatedAt: time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				winner = userID
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	for _, err := range failures {
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	}

	got, err := s.GetShareLink(ctx, "abcdef01")
	require.NoError(t, err)
	assert.Equal(t, winner, got.UserID)
}
