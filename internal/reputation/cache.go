// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reputation resolves author-impact records: known-author table
// first, then the persistent cache, then the external reputation service.
package reputation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// defaultFlushEvery is the insertion interval between opportunistic flushes.
const defaultFlushEvery = 20

// Cache is the persistent author→reputation mapping. All entries live in
// memory behind one mutex and are mirrored to a single JSON file. The
// cache is an optimization, never a correctness dependency: losing
// unflushed entries on a crash only costs repeat lookups.
type Cache struct {
	path       string
	flushEvery int
	log        zerolog.Logger

	mu      sync.Mutex
	entries map[string]types.AuthorReputation
	inserts int
}

// OpenCache loads the cache file at path. A missing file starts an empty
// cache; a malformed file starts empty with a warning. Opening never fails.
func OpenCache(path string, log zerolog.Logger) *Cache {
	c := &Cache{
		path:       path,
		flushEvery: defaultFlushEvery,
		log:        log,
		entries:    make(map[string]types.AuthorReputation),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("could not read reputation cache")
		}
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("malformed reputation cache, starting empty")
		c.entries = make(map[string]types.AuthorReputation)
	}
	return c
}

// Get returns the cached record for name.
func (c *Cache) Get(name string) (types.AuthorReputation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rep, ok := c.entries[name]
	return rep, ok
}

// Put stores a record and flushes every flushEvery insertions.
func (c *Cache) Put(name string, rep types.AuthorReputation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = rep
	c.inserts++
	if c.flushEvery > 0 && c.inserts%c.flushEvery == 0 {
		if err := c.flushLocked(); err != nil {
			c.log.Warn().Err(err).Msg("opportunistic cache flush failed")
		}
	}
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Path returns the backing file path.
func (c *Cache) Path() string { return c.path }

// Flush writes the in-memory entries to the backing file.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

// Clear empties the cache and truncates the backing file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]types.AuthorReputation)
	c.inserts = 0
	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling reputation cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing reputation cache: %w", err)
	}
	return nil
}
