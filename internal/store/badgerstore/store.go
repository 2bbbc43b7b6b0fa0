// Package badgerstore implements store.Store on an embedded Badger
// key-value database.
//
// Key layout:
//
//	user:<id>                                 user JSON
//	user:idx:username:<lower(username)>       -> id
//	content:<id>                              content JSON
//	content:idx:user:<userID>:<id>            -> id
//	category:<id>                             category JSON
//	category:idx:name:<userID>:<nameKey>      -> id
//	category:idx:user:<userID>:<id>           -> id
//	tag:<id>                                  tag JSON
//	tag:idx:slug:<slug>                       -> id
//	link:<hash>                               share link JSON
//	link:idx:user:<userID>:<hash>             -> hash
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/secondbrain/brain-server/internal/domain"
	"github.com/secondbrain/brain-server/internal/store"
)

// maxConflictRetries bounds how often a write is replayed after badger
// reports a transaction conflict.
const maxConflictRetries = 10

// Key prefixes, exported for inspection tooling.
const (
	PrefixUser     = "user:"
	PrefixContent  = "content:"
	PrefixCategory = "category:"
	PrefixTag      = "tag:"
	PrefixLink     = "link:"
)

// Prefixes lists every entity prefix.
var Prefixes = []string{PrefixUser, PrefixContent, PrefixCategory, PrefixTag, PrefixLink}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	users      *Entity[domain.User]
	content    *Entity[domain.Content]
	categories *Entity[domain.Category]
	tags       *Entity[domain.Tag]
	links      *Entity[domain.ShareLink]
}

var _ store.Store = (*Store)(nil)

// Options controls how the database is opened.
type Options struct {
	// InMemory keeps all data in memory. Path is ignored.
	InMemory bool
	// ReadOnly opens an existing database without taking the write lock.
	ReadOnly bool
}

// New opens or creates a Badger database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	return Open(path, logger, Options{})
}

// Open opens a Badger database with explicit options.
func Open(path string, logger *slog.Logger, o Options) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Disable Badger's internal logging.
	opts.Logger = nil
	// Sync writes to disk to prevent corruption on crashes.
	opts.SyncWrites = !o.InMemory
	opts.CompactL0OnClose = true
	opts.ReadOnly = o.ReadOnly

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	s.initEntities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path, "in_memory", o.InMemory)
	}

	return s, nil
}

func (s *Store) initEntities() {
	s.users = NewEntity[domain.User](s, PrefixUser).
		WithUniqueIndexTransform("username",
			func(u *domain.User) []string { return []string{strings.ToLower(u.Username)} },
			strings.ToLower,
		)

	s.content = NewEntity[domain.Content](s, PrefixContent).
		WithIndex("user", func(c *domain.Content) []string { return []string{c.UserID} })

	s.categories = NewEntity[domain.Category](s, PrefixCategory).
		WithUniqueIndex("name", func(c *domain.Category) []string { return []string{c.UserID + ":" + c.NameKey} }).
		WithIndex("user", func(c *domain.Category) []string { return []string{c.UserID} })

	s.tags = NewEntity[domain.Tag](s, PrefixTag).
		WithUniqueIndex("slug", func(t *domain.Tag) []string { return []string{t.Slug} })

	s.links = NewEntity[domain.ShareLink](s, PrefixLink).
		WithIndex("user", func(l *domain.ShareLink) []string { return []string{l.UserID} })
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// update runs fn in a read-write transaction, replaying it when another
// writer committed a key fn read. A replay sees the winner's writes, so
// a lost race on a unique key turns into store.ErrAlreadyExists.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for range maxConflictRetries {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction kept conflicting: %w", err)
}

// CountPrefix returns the number of primary records and index entries
// stored under prefix.
func (s *Store) CountPrefix(ctx context.Context, prefix string) (records, indexEntries int, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if strings.HasPrefix(string(it.Item().Key()[len(prefix):]), "idx:") {
				indexEntries++
			} else {
				records++
			}
		}
		return nil
	})
	return records, indexEntries, err
}
