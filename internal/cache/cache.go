// Package cache implements a single-level key-value cache backed by one
// file per key. It memoizes generated artifacts (e.g. the last synthesized
// persona for an account) so identical work is skipped across runs.
//
// The cache has no TTL or invalidation logic; staleness detection is the
// caller's responsibility.
package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	debuglog "github.com/personafy/personafy/internal/log"
)

type Cache struct {
	dir string

	mu      sync.RWMutex
	entries map[string]string
}

// New opens (or creates) a cache directory and loads every existing entry
// into the in-memory view. Unreadable entries are skipped, not fatal.
func New(dir string) (ret *Cache, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}

	ret = &Cache{dir: dir, entries: map[string]string{}}

	var files []os.DirEntry
	if files, err = os.ReadDir(dir); err != nil {
		return nil, errors.Wrap(err, "reading cache directory")
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		content, readErr := os.ReadFile(filepath.Join(dir, file.Name()))
		if readErr != nil {
			debuglog.Log("cache: skipping unreadable entry %s: %v\n", file.Name(), readErr)
			continue
		}
		ret.entries[file.Name()] = string(content)
	}
	return ret, nil
}

func (o *Cache) Path() string {
	return o.dir
}

// Get returns the value saved under key, from the in-memory view populated
// at construction and by Save.
func (o *Cache) Get(key string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	value, ok := o.entries[key]
	return value, ok
}

// Save persists value under key, both in memory and on disk. It returns
// false on I/O failure and never panics.
func (o *Cache) Save(key, value string) bool {
	if err := os.WriteFile(filepath.Join(o.dir, key), []byte(value), 0o644); err != nil {
		debuglog.Log("cache: saving %s failed: %v\n", key, err)
		return false
	}

	o.mu.Lock()
	o.entries[key] = value
	o.mu.Unlock()
	return true
}
