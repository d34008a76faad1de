// Package bolt stores snapshots in a single bbolt bucket.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/goliatone/go-resumegen/pkg/persistence"
)

const bucketSnapshots = "snapshots" // key: storage key -> Record JSON

type Store struct {
	storage *bbolt.DB
}

var _ persistence.Store = (*Store)(nil)

// Open creates or opens the database file at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bolt store: create dir: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt store: open: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	}); err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("bolt store: create bucket: %w", err)
	}

	return &Store{storage: instance}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.storage.Close()
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.storage.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(key))
		if value == nil {
			return persistence.ErrNotFound
		}
		// value is only valid inside the transaction
		out = append([]byte(nil), value...)
		return nil
	})
	return out, err
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return s.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(key), value)
	})
}

func (s *Store) Delete(_ context.Context, key string) error {
	return s.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Delete([]byte(key))
	})
}
