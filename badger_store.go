package main

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/vmihailenco/msgpack/v5"
)

const runnerEntity = "corredores"

// BadgerStore keeps one msgpack encoded runner per key, keyed by its position
// in the collection so iteration order is insertion order.
type BadgerStore struct {
	entityPrefix []byte
	db           *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		entityPrefix: []byte(runnerEntity + "/"),
		db:           db,
	}
}

func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return db, nil
}

func (b *BadgerStore) buildKey(pos int) []byte {
	return []byte(fmt.Sprintf("%s%010d", b.entityPrefix, pos))
}

func (b *BadgerStore) Load(_ context.Context) (Database, error) {
	db := Database{Corredores: []Runner{}}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(b.entityPrefix); it.ValidForPrefix(b.entityPrefix); it.Next() {
			var r Runner
			if err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			db.Corredores = append(db.Corredores, r)
		}
		return nil
	})
	if err != nil {
		return Database{}, fmt.Errorf("failed to list corredores: %w", err)
	}
	return db, nil
}

func (b *BadgerStore) Save(_ context.Context, db Database) error {
	return b.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		for it.Seek(b.entityPrefix); it.ValidForPrefix(b.entityPrefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for pos, r := range db.Corredores {
			buf, err := msgpack.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to marshal corredor %d: %w", r.ID, err)
			}
			if err := txn.Set(b.buildKey(pos), buf); err != nil {
				return err
			}
		}
		return nil
	})
}
