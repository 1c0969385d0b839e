package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Queue persists recorded operations in BoltDB until a drain delivers them.
type Queue struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Queue, error) {
	if bucket == "" {
		bucket = "outbox"
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

	return &Queue{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores an operation under a time-ordered key.
func (q *Queue) Enqueue(op Operation) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	op.normalize()
	op.bucketKey = []byte(buildKey(op))

	payload, err := json.Marshal(op)
	if err != nil {
		return err
	}

	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(q.bucket).Put(op.bucketKey, payload)
	})
}

// GetBatch returns up to limit operations without removing them.
func (q *Queue) GetBatch(limit int) ([]Operation, error) {
	if q == nil || q.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var ops []Operation
	err := q.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(q.bucket).Cursor()
		for k, v := c.First(); k != nil && len(ops) < limit; k, v = c.Next() {
			var op Operation
			if err := json.Unmarshal(v, &op); err != nil {
				continue
			}
			op.bucketKey = append([]byte(nil), k...)
			ops = append(ops, op)
		}
		return nil
	})
	return ops, err
}

// Remove deletes the provided operation from the queue.
func (q *Queue) Remove(op Operation) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(op.bucketKey) == 0 {
		return q.deleteByID(op.ID)
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(q.bucket).Delete(op.bucketKey)
	})
}

// Requeue re-inserts an operation after bumping its timestamp.
func (q *Queue) Requeue(op Operation) error {
	op.bucketKey = nil
	op.RecordedAt = time.Now()
	return q.Enqueue(op)
}

// Size returns the number of queued operations.
func (q *Queue) Size() (int, error) {
	if q == nil || q.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := q.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(q.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes operations recorded before the provided timestamp.
func (q *Queue) Cleanup(olderThan time.Time) error {
	if q == nil || q.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(q.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var op Operation
			if err := json.Unmarshal(v, &op); err != nil {
				continue
			}
			if op.RecordedAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (q *Queue) Close() error {
	if q == nil || q.db == nil {
		return nil
	}
	return q.db.Close()
}

func (q *Queue) deleteByID(id string) error {
	if id == "" {
		return nil
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(q.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var op Operation
			if err := json.Unmarshal(v, &op); err != nil {
				continue
			}
			if op.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

func buildKey(op Operation) string {
	return fmt.Sprintf("%020d_%s", op.RecordedAt.UnixNano(), op.ID)
}
