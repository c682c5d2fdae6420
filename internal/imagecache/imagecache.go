// Package imagecache memoizes internal/imagecheck's invertibility verdict
// keyed by file content hash, so repeated image-invertibility
// checks across rebuilds don't re-decode unchanged images.
package imagecache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"github.com/gwern/ssgen/internal/atomicfile"
	"github.com/gwern/ssgen/internal/imagecheck"
	"gopkg.in/yaml.v3"
)

// entry is one on-disk cache record.
type entry struct {
	Hash       string `yaml:"hash"`
	Invertible bool   `yaml:"invertible"`
}

// Cache memoizes IsInvertible results by content hash, persisted to a
// single YAML file so results survive across builds.
type Cache struct {
	path string
	mu   sync.Mutex
	data map[string]bool // content hash -> invertible
}

// Load reads an existing cache file, or starts empty if it doesn't exist
// (a missing cache is equivalent to an empty one, matching the rest of
// the repo's file-missing convention).
func Load(path string) (*Cache, error) {
	c := &Cache{path: path, data: map[string]bool{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading image cache %s: %w", path, err)
	}

	var entries []entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing image cache %s: %w", path, err)
	}
	for _, e := range entries {
		c.data[e.Hash] = e.Invertible
	}
	return c, nil
}

// IsInvertible returns the memoized invertibility verdict for content
// (an encoded image's bytes), computing and caching it on a miss. The content is hashed
// with SHA-256 first, so the same bytes under different filenames share
// one cache entry.
func (c *Cache) IsInvertible(content []byte) (bool, error) {
	hash := hashContent(content)

	c.mu.Lock()
	if v, ok := c.data[hash]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := imagecheck.IsInvertible(bytes.NewReader(content))
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.data[hash] = v
	c.mu.Unlock()
	return v, nil
}

// Save atomically rewrites the cache file with the current in-memory
// contents (temp file + rename, via internal/atomicfile).
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]entry, 0, len(c.data))
	for hash, invertible := range c.data {
		entries = append(entries, entry{Hash: hash, Invertible: invertible})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding image cache: %w", err)
	}
	return atomicfile.WriteFile(c.path, data)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
