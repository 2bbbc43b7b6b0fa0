package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/secondbrain/brain-server/internal/store"
)

// Entity provides generic CRUD operations for any domain type stored as
// JSON under prefix+id.
//
// Two kinds of secondary index are supported. A unique index maps one value
// to one id and rejects a second entity with the same value. A multi index
// maps a value to many ids by suffixing the key with the id, and is read
// with ListByIndex.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a secondary index on an entity.
type Index[T any] struct {
	name            string
	unique          bool
	keyGen          func(*T) []string
	lookupTransform func(string) string
}

func (idx Index[T]) key(prefix, value, id string) []byte {
	if idx.unique {
		return buildIndexKey(prefix, idx.name, value)
	}
	return buildIndexKey(prefix, idx.name, value+":"+id)
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:   s,
		prefix:  prefix,
		indexes: make([]Index[T], 0),
	}
}

// WithUniqueIndex adds a unique secondary index.
func (e *Entity[T]) WithUniqueIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{name: name, unique: true, keyGen: keyGen})
	return e
}

// WithUniqueIndexTransform adds a unique index whose lookups are passed
// through lookupTransform first (case folding, normalization).
func (e *Entity[T]) WithUniqueIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:            name,
		unique:          true,
		keyGen:          keyGen,
		lookupTransform: lookupTransform,
	})
	return e
}

// WithIndex adds a non-unique secondary index.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{name: name, keyGen: keyGen})
	return e
}

func (e *Entity[T]) index(name string) (Index[T], bool) {
	for _, idx := range e.indexes {
		if idx.name == name {
			return idx, true
		}
	}
	return Index[T]{}, false
}

// Create stores a new entity under id.
// Returns store.ErrAlreadyExists if the id or any unique index value is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.update(func(txn *badger.Txn) error {
		key := buildKey(e.prefix, id)
		defer releaseKey(key)

		_, err := txn.Get(key)
		if err == nil {
			return store.ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := e.checkUnique(txn, entity, nil); err != nil {
			return err
		}

		if err := txn.Set(copyKey(key), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.setIndexes(txn, id, entity)
	})
}

// Get retrieves an entity by ID.
// Returns store.ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity *T
	err := e.store.db.View(func(txn *badger.Txn) error {
		var err error
		entity, err = e.get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (e *Entity[T]) get(txn *badger.Txn, id string) (*T, error) {
	key := buildKey(e.prefix, id)
	defer releaseKey(key)

	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var entity T
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &entity); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity through a unique index.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, ok := e.index(indexName)
	if !ok || !idx.unique {
		return nil, fmt.Errorf("no unique index %q on %s", indexName, e.prefix)
	}
	if idx.lookupTransform != nil {
		value = idx.lookupTransform(value)
	}

	var entity *T
	err := e.store.db.View(func(txn *badger.Txn) error {
		indexKey := buildIndexKey(e.prefix, indexName, value)
		defer releaseKey(indexKey)

		item, err := txn.Get(indexKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		entity, err = e.get(txn, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListByIndex returns every entity whose multi index value equals value,
// in key order.
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, ok := e.index(indexName)
	if !ok || idx.unique {
		return nil, fmt.Errorf("no multi index %q on %s", indexName, e.prefix)
	}

	prefix := []byte(e.prefix + "idx:" + indexName + ":" + value + ":")

	var entities []*T
	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			entity, err := e.get(txn, string(id))
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			entities = append(entities, entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Update replaces an existing entity.
// Returns store.ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	return e.UpdateWhere(ctx, id, entity, nil)
}

// UpdateWhere replaces an existing entity if match accepts the stored
// version. A rejected match is reported as store.ErrNotFound.
func (e *Entity[T]) UpdateWhere(ctx context.Context, id string, entity *T, match func(old *T) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.update(func(txn *badger.Txn) error {
		old, err := e.get(txn, id)
		if err != nil {
			return err
		}
		if match != nil && !match(old) {
			return store.ErrNotFound
		}

		if err := e.checkUnique(txn, entity, old); err != nil {
			return err
		}
		if err := e.deleteIndexes(txn, id, old); err != nil {
			return err
		}

		if err := txn.Set([]byte(e.prefix+id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.setIndexes(txn, id, entity)
	})
}

// Delete removes an entity by ID. Deleting a missing entity is not an error.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	err := e.DeleteWhere(ctx, id, nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteWhere removes an entity if match accepts it.
// Returns store.ErrNotFound when the entity is missing or rejected.
func (e *Entity[T]) DeleteWhere(ctx context.Context, id string, match func(*T) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.update(func(txn *badger.Txn) error {
		old, err := e.get(txn, id)
		if err != nil {
			return err
		}
		if match != nil && !match(old) {
			return store.ErrNotFound
		}

		if err := e.deleteIndexes(txn, id, old); err != nil {
			return err
		}
		if err := txn.Delete([]byte(e.prefix + id)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// List returns an iterator over all entities.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		//nolint:errcheck // errors are delivered through yield
		e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				// Skip index keys
				if strings.HasPrefix(string(it.Item().Key()[len(e.prefix):]), "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&entity, nil) {
					return nil
				}
			}
			return nil
		})
	}
}

// checkUnique fails with store.ErrAlreadyExists if any unique value of
// entity is held by another entity. Values already owned by old are skipped.
func (e *Entity[T]) checkUnique(txn *badger.Txn, entity, old *T) error {
	for _, idx := range e.indexes {
		if !idx.unique {
			continue
		}

		owned := make(map[string]bool)
		if old != nil {
			for _, k := range idx.keyGen(old) {
				owned[k] = true
			}
		}

		for _, value := range idx.keyGen(entity) {
			if owned[value] {
				continue
			}
			if err := e.checkIndexKey(txn, idx, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Entity[T]) checkIndexKey(txn *badger.Txn, idx Index[T], value string) error {
	key := buildIndexKey(e.prefix, idx.name, value)
	defer releaseKey(key)

	_, err := txn.Get(key)
	if err == nil {
		return store.ErrAlreadyExists.WithMessage(
			fmt.Sprintf("index %s conflict on key %s", idx.name, value))
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to check index key: %w", err)
	}
	return nil
}

func (e *Entity[T]) setIndexes(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Set(idx.key(e.prefix, value, id), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) deleteIndexes(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, value := range idx.keyGen(entity) {
			if err := txn.Delete(idx.key(e.prefix, value, id)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}

// copyKey detaches a pooled key before badger retains it.
func copyKey(key []byte) []byte {
	out := make([]byte, len(key))
	copy(out, key)
	return out
}
