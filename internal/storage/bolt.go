package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

// BoltStorage keeps items in a single bucket of a bbolt file.
type BoltStorage struct {
	db     *bolt.DB
	bucket []byte
}

func OpenBolt(path string, bucket string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open db %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("unable to create bucket %s: %w", bucket, err)
		}
		if !b.Writable() {
			return fmt.Errorf("non writeable bucket %s", bucket)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Debugf("opened bolt storage %s (bucket %s)", path, bucket)

	return &BoltStorage{db: db, bucket: []byte(bucket)}, nil
}

func (s *BoltStorage) GetItem(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("invalid bucket %s", s.bucket)
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return ErrItemNotFound
		}
		// raw is only valid while the transaction is open
		value = slices.Clone(raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStorage) SetItem(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("invalid bucket %s", s.bucket)
		}
		if err := b.Put([]byte(key), value); err != nil {
			return fmt.Errorf("could not store item %s: %w", key, err)
		}
		return nil
	})
}

func (s *BoltStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
