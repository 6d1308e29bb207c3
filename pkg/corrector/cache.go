package corrector

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"

	"github.com/bkga-dev/bkga/pkg/types"
)

// Cache stores corrector responses by document content.
// Key is SHA256(text) so identical snapshots share one entry.
type Cache struct {
	results map[string][]types.Issue
	mu      sync.RWMutex
}

// NewCache creates an empty response cache.
func NewCache() *Cache {
	return &Cache{
		results: make(map[string][]types.Issue),
	}
}

// Get returns the cached issues for text.
func (c *Cache) Get(text string) ([]types.Issue, bool) {
	key := computeCacheKey(text)
	c.mu.RLock()
	defer c.mu.RUnlock()
	issues, ok := c.results[key]
	return slices.Clone(issues), ok
}

// Set stores issues for text.
func (c *Cache) Set(text string, issues []types.Issue) {
	key := computeCacheKey(text)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = slices.Clone(issues)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// computeCacheKey returns SHA256 hash of text as hex string.
func computeCacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
