package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Pragmas come from the DSN, so every pooled connection must report them.
	for range 3 {
		conn, err := s.db.Conn(context.Background())
		if err != nil {
			t.Fatalf("conn: %v", err)
		}
		var fk int
		if err := conn.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("query foreign_keys: %v", err)
		}
		if fk != 1 {
			t.Errorf("expected foreign_keys=1, got %d", fk)
		}
		defer conn.Close()
	}

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	tables := []string{"users", "content", "content_tags", "tags", "categories", "share_links"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	if err := s2.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
	s2.Close()
}

func TestShareLinkHashShape(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateShareLink(context.Background(), &domain.ShareLink{
		Hash:      "short",
		UserID:    "user-1",
		CreatedAt: time.Now(),
	})
	if err == nil {
		t.Fatal("expected check constraint to reject a short hash")
	}
}

func TestContentTypeCheck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := storetest.NewUser("alice")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	c := storetest.NewContent(u.ID, "bad", domain.ContentType("podcast"))
	if err := s.CreateContent(ctx, c); err == nil {
		t.Fatal("expected check constraint to reject unknown type")
	}
}

func TestTimeLayoutSortsLexically(t *testing.T) {
	a := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b := a.Add(500 * time.Millisecond)
	c := a.Add(time.Second)

	fa, fb, fc := formatTime(a), formatTime(b), formatTime(c)
	if !(fa < fb && fb < fc) {
		t.Errorf("timestamps do not sort: %s %s %s", fa, fb, fc)
	}
	if len(fa) != len(fb) || len(fb) != len(fc) {
		t.Errorf("timestamps are not fixed width: %s %s %s", fa, fb, fc)
	}

	parsed, err := parseTime(fb)
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !parsed.Equal(b) {
		t.Errorf("round trip: got %v, want %v", parsed, b)
	}
}

func TestDeleteUserCascadesContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := storetest.NewUser("alice")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateContent(ctx, storetest.NewContent(u.ID, "n", domain.ContentNote)); err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	if err := s.CreateShareLink(ctx, &domain.ShareLink{Hash: "01234567", UserID: u.ID, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateShareLink: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	items, err := s.ListContent(ctx, u.ID, domain.ContentFilter{})
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected content to cascade, got %d items", len(items))
	}

	// Share links survive their owner and resolve as orphans.
	if _, err := s.GetShareLink(ctx, "01234567"); err != nil {
		t.Errorf("GetShareLink: %v", err)
	}
}
