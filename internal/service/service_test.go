package service

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-server/internal/auth"
	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/store/badgerstore"
	"github.com/secondbrain/brain-server/internal/store/sqlite"
)

// fastArgon2 keeps password hashing cheap in tests.
var fastArgon2 = auth.Argon2Params{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type testServices struct {
	store      store.Store
	tokens     *auth.TokenService
	auth       *AuthService
	tags       *TagService
	categories *CategoryService
	content    *ContentService
	links      *LinkService
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newBadgerTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := badgerstore.New(filepath.Join(t.TempDir(), "badger"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	return setupServicesWithStore(t, newTestStore(t))
}

func setupServicesWithStore(t *testing.T, s store.Store) *testServices {
	t.Helper()

	tokens, err := auth.NewTokenService(hex.EncodeToString([]byte(strings.Repeat("k", 32))), time.Hour)
	require.NoError(t, err)

	tags := NewTagService(s, nil)
	categories := NewCategoryService(s, nil)
	return &testServices{
		store:      s,
		tokens:     tokens,
		auth:       NewAuthService(s, auth.NewPasswordHasher(fastArgon2), tokens, nil),
		tags:       tags,
		categories: categories,
		content:    NewContentService(s, tags, categories, nil),
		links:      NewLinkService(s, "http://localhost:3000/", 8, nil),
	}
}

func (ts *testServices) register(t *testing.T, username string) *domain.User {
	t.Helper()
	res, err := ts.auth.Register(context.Background(), CredentialsRequest{Username: username, Password: "pw1"})
	require.NoError(t, err)
	return res.User
}
