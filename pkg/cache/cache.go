// Package cache stores each passive source's per-apex result set on disk so
// a repeated run against the same apex can skip the network round-trip
// while the entry is still fresh.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is keyed by (apex, source name) and evicts entries past ttl.
type Cache struct {
	dir string
	ttl time.Duration
}

// Entry is one cached source result, persisted as JSON.
type Entry struct {
	Domain    string    `json:"domain"`
	Source    string    `json:"source"`
	Results   []string  `json:"results"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a cache rooted at dir, creating it if necessary. An empty dir
// defaults to ~/.subrecon/cache.
func New(dir string, ttl time.Duration) *Cache {
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".subrecon", "cache")
	}
	os.MkdirAll(dir, 0o755)
	return &Cache{dir: dir, ttl: ttl}
}

// Get returns the cached hostnames for (domain, source), or false if there
// is no entry or it has expired.
func (c *Cache) Get(domain, source string) ([]string, bool) {
	path := c.entryPath(domain, source)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	return entry.Results, true
}

// Set persists results for (domain, source).
func (c *Cache) Set(domain, source string, results []string) error {
	entry := Entry{
		Domain:    domain,
		Source:    source,
		Results:   results,
		Timestamp: time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.entryPath(domain, source), data, 0o644)
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.dir)
}

// ClearExpired removes every entry past its ttl.
func (c *Cache) ClearExpired() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, f := range entries {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if time.Since(entry.Timestamp) > c.ttl {
			os.Remove(path)
		}
	}

	return nil
}

// Stats reports entry counts and disk usage.
func (c *Cache) Stats() (total, expired int, sizeBytes int64, err error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, f := range entries {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		sizeBytes += info.Size()
		total++

		data, err := os.ReadFile(filepath.Join(c.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if time.Since(entry.Timestamp) > c.ttl {
			expired++
		}
	}

	return total, expired, sizeBytes, nil
}

func (c *Cache) entryPath(domain, source string) string {
	key := fmt.Sprintf("%s:%s", domain, source)
	hash := md5.Sum([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}
