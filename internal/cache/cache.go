package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"schemagen/internal/content"
)

// Store persists generated schema graphs keyed by canonical page URL and
// decides whether an entry may be reused for new content.
type Store interface {
	// Lookup returns the cached schema for url if it is still valid for the
	// given content and modification timestamp. It never writes.
	Lookup(url, contentModified string, pageContent string) (json.RawMessage, bool)

	// Put writes or overwrites the entry for url. Repeated calls for the same
	// URL are idempotent overwrites.
	Put(url string, schema json.RawMessage, contentModified string, pageContent string) error

	// Clear deletes all entries. Used for full regeneration only.
	Clear() error
}

// CachedSchema is the persisted unit: the generated graph plus the fingerprint
// and timestamp needed to decide whether it is still valid.
type CachedSchema struct {
	Schema          json.RawMessage `json:"schema"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	ContentModified string          `json:"contentModified"`
	ContentHash     string          `json:"contentHash"`
}

// Fresh reports whether the entry may still be used for a page with the given
// modification timestamp and content. The fingerprint covers the case where
// content changed without the timestamp being bumped.
func (e *CachedSchema) Fresh(contentModified, pageContent string) bool {
	if modifiedAfter(contentModified, e.ContentModified) {
		return false
	}
	return e.ContentHash == Fingerprint(pageContent)
}

// modifiedAfter reports whether incoming is strictly later than stored. An
// unparsable incoming timestamp yields no signal (the fingerprint decides); an
// unparsable stored timestamp forces regeneration.
func modifiedAfter(incoming, stored string) bool {
	in, err := time.Parse(time.RFC3339, incoming)
	if err != nil {
		return false
	}
	st, err := time.Parse(time.RFC3339, stored)
	if err != nil {
		return true
	}
	return st.Before(in)
}

// Fingerprint computes the content-addressed hash over the normalized form of
// pageContent. Normalization matches what the analyzer sends to the model, so
// the invalidation signal is "would the model see different input".
func Fingerprint(pageContent string) string {
	sum := sha256.Sum256([]byte(content.Normalize(pageContent)))
	return hex.EncodeToString(sum[:])
}

// urlKey derives a filesystem- and bucket-safe key from a page URL.
func urlKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8])
}

// FileStore keeps one JSON file per URL in a directory. The directory is
// expected to ship with the built site so later builds reuse it.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) entryPath(url string) string {
	return filepath.Join(s.dir, urlKey(url)+".json")
}

// Lookup implements Store. Read failures of any kind are cache misses.
func (s *FileStore) Lookup(url, contentModified string, pageContent string) (json.RawMessage, bool) {
	data, err := os.ReadFile(s.entryPath(url))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read cache entry for %s: %v", url, err)
		}
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
func (s *FileStore) Put(url string, schema json.RawMessage, contentModified string, pageContent string) error {
	entry := CachedSchema{
		Schema:          schema,
		GeneratedAt:     time.Now().UTC(),
		ContentModified: contentModified,
		ContentHash:     Fingerprint(pageContent),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(s.entryPath(url), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", url, err)
	}
	return nil
}

// Clear implements Store by removing and recreating the cache directory.
func (s *FileStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to clear cache directory %s: %w", s.dir, err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to recreate cache directory %s: %w", s.dir, err)
	}
	return nil
}
