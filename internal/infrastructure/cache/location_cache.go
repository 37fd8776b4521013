package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// LocationEntry is one cached geocoding result.
type LocationEntry struct {
	Key         string             `json:"key"`
	Coordinates domain.Coordinates `json:"coordinates"`
	CreatedAt   time.Time          `json:"created_at"`
}

// LocationCache stores geocoding results as JSON files addressed by hashed key.
type LocationCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	clock      ports.Clock
}

// NewLocationCache returns a cache rooted at dir.
func NewLocationCache(dir string, ttl time.Duration, maxEntries int, clock ports.Clock) *LocationCache {
	return &LocationCache{
		dir:        dir,
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
	}
}

// Get retrieves coordinates for key. Expired or unreadable entries are misses.
func (c *LocationCache) Get(key string) (domain.Coordinates, bool) {
	key = normalizeKey(key)
	if key == "" {
		return domain.Coordinates{}, false
	}
	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Coordinates{}, false
	}
	var entry LocationEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		return domain.Coordinates{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return domain.Coordinates{}, false
	}
	return entry.Coordinates, true
}

// Set stores coordinates for key and evicts the oldest entries over the limit.
func (c *LocationCache) Set(key string, value domain.Coordinates) error {
	key = normalizeKey(key)
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(LocationEntry{Key: key, Coordinates: value, CreatedAt: c.now()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(key), data, 0o644); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Dir exposes the cache directory path.
func (c *LocationCache) Dir() string {
	return c.dir
}

// Clear removes all cached entries.
func (c *LocationCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Entries lists cache entries (best-effort), oldest first.
func (c *LocationCache) Entries() ([]LocationEntry, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []LocationEntry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry LocationEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

func (c *LocationCache) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".json")
}

func (c *LocationCache) now() time.Time {
	if c.clock == nil {
		return time.Now()
	}
	return c.clock.Now()
}

func (c *LocationCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	entries, err := c.Entries()
	if err != nil {
		return err
	}
	for len(entries) > c.maxEntries {
		_ = os.Remove(c.pathFor(entries[0].Key))
		entries = entries[1:]
	}
	return nil
}

func normalizeKey(key string) string {
	return turkish.Normalize(key)
}

var _ ports.LocationCache = (*LocationCache)(nil)
