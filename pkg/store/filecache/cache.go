package filecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
	TTL       int64           `json:"ttl"` // seconds
}

// Cache is a TTL-bounded JSON file cache for fetched provider
// responses. Stale entries are removed on read.
type Cache struct {
	dir string
	now func() time.Time
}

func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, now: time.Now}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get unmarshals the cached value for key into out. It reports false
// on a miss; an expired entry counts as a miss and is deleted.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cache entry %s: %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Corrupt entries are treated as misses.
		_ = os.Remove(c.path(key))
		return false, nil
	}

	if c.now().After(e.Timestamp.Add(time.Duration(e.TTL) * time.Second)) {
		_ = os.Remove(c.path(key))
		return false, nil
	}

	if err := json.Unmarshal(e.Value, out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores the value under key with the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}

	e := entry{
		Value:     raw,
		Timestamp: c.now(),
		TTL:       int64(ttl / time.Second),
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}
