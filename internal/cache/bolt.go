package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

var schemaBucket = []byte("schemas")

// BoltStore keeps cache entries in a single bbolt file. Useful when shipping
// one artifact alongside the built site is preferable to a directory of files.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) a bbolt-backed store at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(schemaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Lookup implements Store. Read failures of any kind are cache misses.
func (s *BoltStore) Lookup(url, contentModified string, pageContent string) (json.RawMessage, bool) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(schemaBucket).Get([]byte(urlKey(url))); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		log.Printf("Warning: failed to read cache entry for %s: %v", url, err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var entry CachedSchema
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("Warning: corrupt cache entry for %s: %v", url, err)
		return nil, false
	}

	if !entry.Fresh(contentModified, pageContent) {
		return nil, false
	}
	return entry.Schema, true
}

// Put implements Store.
func (s *BoltStore) Put(url string, schema json.RawMessage, contentModified string, pageContent string) error {
	entry := CachedSchema{
		Schema:          schema,
		GeneratedAt:     time.Now().UTC(),
		ContentModified: contentModified,
		ContentHash:     Fingerprint(pageContent),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(schemaBucket).Put([]byte(urlKey(url)), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", url, err)
	}
	return nil
}

// Clear implements Store by dropping and recreating the bucket.
func (s *BoltStore) Clear() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(schemaBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(schemaBucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
