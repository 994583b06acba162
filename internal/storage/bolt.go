package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// BoltStore persists specs in a single bucket of a bbolt database. It backs
// state that changes at runtime (characters), where one-file-per-record
// churn would be wasteful.
type BoltStore[T ValidatingSpec] struct {
	db     *bolt.DB
	bucket []byte

	mu sync.RWMutex
}

func NewBoltStore[T ValidatingSpec](path, bucket string) (*BoltStore[T], error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt database %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating bucket %q: %w", bucket, err)
	}

	return &BoltStore[T]{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *BoltStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := o.Validate(); err != nil {
		return fmt.Errorf("validating %q: %w", id, err)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshalling %q: %w", id, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(id), data)
	})
}

func (s *BoltStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var val T
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &val)
	})
	if err != nil {
		var nilVal T
		return nilVal
	}

	return val
}

func (s *BoltStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := map[string]T{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			var val T
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("unmarshalling %q: %w", k, err)
			}
			vals[string(k)] = val
			return nil
		})
	})
	if err != nil {
		return map[string]T{}
	}

	return vals
}

// Close releases the underlying database file.
func (s *BoltStore[T]) Close() error {
	return s.db.Close()
}
