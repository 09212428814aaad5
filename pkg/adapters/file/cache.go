// Package file provides a diagram cache on the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fdurupinar/bioagents/pkg/domain"
)

// DefaultDir is used when no directory is configured.
var DefaultDir = filepath.Join(".bsb", "diagrams")

// Cache implements ports.DiagramCache with one file per document.
type Cache struct {
	BasePath string
}

// NewCache creates a Cache rooted at basePath (DefaultDir when empty).
// The directory is created on first write.
func NewCache(basePath string) *Cache {
	if basePath == "" {
		basePath = DefaultDir
	}
	return &Cache{BasePath: basePath}
}

func (c *Cache) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("cache key cannot be empty")
	}
	// Keys are <format>:<hex digest>; keep them portable as file names.
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(c.BasePath, name+".doc"), nil
}

// Get returns the document stored under key, or domain.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	path, err := c.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to read diagram file: %w", err)
	}
	return string(data), nil
}

// Put writes doc atomically: readers never see a partial document.
func (c *Cache) Put(ctx context.Context, key, doc string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.BasePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write diagram file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write diagram file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to commit diagram file: %w", err)
	}
	return nil
}
