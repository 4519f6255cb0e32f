// Package cache persists per-file parse results in a bbolt file so unchanged
// files skip re-parsing across index rebuilds. Entries are keyed by the file's
// root-relative path and validated against its content hash; the cache is
// eviction-free for its lifetime. Using it at all is optional.
package cache

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/dpolishuk/codegraph/internal/models"
)

var bucketName = []byte("parse_results")

// Entry is one file's cached parse output.
type Entry struct {
	Hash     string              `json:"hash"`
	Entities []models.CodeEntity `json:"entities,omitempty"`
	Imports  []string            `json:"imports,omitempty"`
}

// Cache is a bbolt-backed parse-result store. Safe for concurrent use.
type Cache struct {
	db *bolt.DB
}

// Open creates or opens the cache file.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached entry for a path, or nil when absent.
func (c *Cache) Get(path string) (*Entry, error) {
	var entry *Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(path))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Put stores an entry, replacing any previous one for the path.
func (c *Cache) Put(path string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(path), data)
	})
}
