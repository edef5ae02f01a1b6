package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	bolt "go.etcd.io/bbolt"
)

// BoltStore keeps snapshots in a local bbolt file, one key per snapshot.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

var _ pricebook.SnapshotStore = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the database file and bucket.
func NewBoltStore(path, bucket string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}
	if bucket == "" {
		return nil, errors.New("bolt bucket is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bolt directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bolt bucket: %w", err)
	}

	return &BoltStore{db: db, bucket: []byte(bucket)}, nil
}

// Load reads the payload under key
func (s *BoltStore) Load(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return pricebook.ErrSnapshotNotFound
		}
		// bolt values are only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save overwrites the payload under key
func (s *BoltStore) Save(ctx context.Context, key string, payload []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), payload)
	})
	if err != nil {
		return fmt.Errorf("failed to write bolt snapshot: %w", err)
	}
	return nil
}

// Delete removes the payload under key
func (s *BoltStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete bolt snapshot: %w", err)
	}
	return nil
}

// Close closes the database file
func (s *BoltStore) Close() error {
	return s.db.Close()
}
