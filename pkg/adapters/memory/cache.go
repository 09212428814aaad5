package memory

import (
	"context"
	"sync"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

// Cache implements ports.DiagramCache in memory.
// Safe for concurrent use. Entries never expire.
type Cache struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]string),
	}
}

// Get returns the document stored under key, or domain.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return doc, nil
}

// Put stores doc under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key, doc string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = doc
	return nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
