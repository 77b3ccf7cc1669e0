package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a base directory, sharded by
// the leading byte of the key hash so a long-lived cache does not pile
// thousands of files into one directory. Expiry is checked lazily on read;
// Prune removes expired entries eagerly for the cache maintenance commands.
//
// The directory is private to the user, matching the draw history store.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// fileEntry is the on-disk representation: payload plus expiry metadata.
// A zero ExpiresAt means the entry never expires.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get retrieves a value. Expired and unreadable entries are removed and
// reported as misses rather than errors.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a value. A positive ttl stamps the entry with an expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation opens and closes its own files.
func (c *FileCache) Close() error {
	return nil
}

// Prune removes expired and unreadable entries, reporting how many files
// were removed and how many remain.
func (c *FileCache) Prune() (removed, kept int, err error) {
	now := time.Now()
	err = c.walkEntries(func(path string) {
		raw, readErr := os.ReadFile(path)
		var entry fileEntry
		if readErr != nil || json.Unmarshal(raw, &entry) != nil || entry.expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
			return
		}
		kept++
	})
	c.removeEmptyShards()
	return removed, kept, err
}

// Clear removes every entry regardless of expiry and reports the count.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	err := c.walkEntries(func(path string) {
		if os.Remove(path) == nil {
			removed++
		}
	})
	c.removeEmptyShards()
	return removed, err
}

// walkEntries calls fn for every entry file under the cache root.
func (c *FileCache) walkEntries(fn func(path string)) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		fn(path)
		return nil
	})
}

// removeEmptyShards drops shard directories emptied by Prune or Clear.
// Remove refuses non-empty directories, so live shards survive.
func (c *FileCache) removeEmptyShards() {
	shards, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, shard := range shards {
		if shard.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, shard.Name()))
		}
	}
}

// path shards keys by the leading byte of their hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
