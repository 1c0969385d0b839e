package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltStore persists key-value state in a BoltDB file so it survives
// restarts, the way a browser keeps local storage across sessions.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt initializes the BoltDB file and ensures the bucket exists.
func OpenBolt(path, bucket string) (*BoltStore, error) {
	if bucket == "" {
		bucket = "state"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, bolt.ErrDatabaseNotOpen
	}
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	return value, found, err
}

func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Len returns the number of stored keys.
func (s *BoltStore) Len(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*BoltStore)(nil)
