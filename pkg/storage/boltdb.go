package storage

import (
	"fmt"
	"path/filepath"

	json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketApplied = []byte("applied_config")

	keyLast = []byte("last")
)

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "tempo-operator.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketApplied); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketApplied, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SaveApplied records the config that was just pushed to the workload
func (s *BoltStore) SaveApplied(applied *AppliedConfig) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(applied)
		if err != nil {
			return fmt.Errorf("failed to marshal applied config: %w", err)
		}
		return tx.Bucket(bucketApplied).Put(keyLast, data)
	})
}

// LastApplied returns the most recently applied config, nil when none
func (s *BoltStore) LastApplied() (*AppliedConfig, error) {
	var applied *AppliedConfig
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketApplied).Get(keyLast)
		if data == nil {
			return nil
		}
		applied = &AppliedConfig{}
		if err := json.Unmarshal(data, applied); err != nil {
			return fmt.Errorf("failed to unmarshal applied config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}
