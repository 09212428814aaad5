package diagram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/ports"
)

// CachedTranslator memoises an inner Translator in a DiagramCache.
// Cache failures are logged and fall through to the inner translator;
// translation errors are never cached.
type CachedTranslator struct {
	inner   Translator
	cache   ports.DiagramCache
	format  Format
	logger  *slog.Logger
	observe func(hit bool)
}

// CacheOption configures a CachedTranslator.
type CacheOption func(*CachedTranslator)

// WithCacheLogger sets the logger used for cache failures.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedTranslator) {
		c.logger = logger
	}
}

// WithCacheObserver registers a callback invoked after every lookup.
func WithCacheObserver(observe func(hit bool)) CacheOption {
	return func(c *CachedTranslator) {
		c.observe = observe
	}
}

// Cached wraps inner with cache. format namespaces the keys so documents
// of different dialects never collide.
func Cached(inner Translator, cache ports.DiagramCache, format Format, opts ...CacheOption) *CachedTranslator {
	c := &CachedTranslator{
		inner:  inner,
		cache:  cache,
		format: format,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate implements Translator.
func (c *CachedTranslator) Translate(ctx context.Context, facts []domain.Fact) (Document, error) {
	key, err := c.Key(facts)
	if err != nil {
		c.logger.Warn("diagram cache key failed", "error", err)
		return c.inner.Translate(ctx, facts)
	}

	cached, err := c.cache.Get(ctx, key)
	if c.observe != nil {
		c.observe(err == nil)
	}
	switch {
	case err == nil:
		c.logger.Debug("diagram cache hit", "key", key)
		return Document(cached), nil
	case !errors.Is(err, domain.ErrCacheMiss):
		c.logger.Warn("diagram cache get failed", "key", key, "error", err)
	}

	doc, err := c.inner.Translate(ctx, facts)
	if err != nil {
		return "", err
	}
	if err := c.cache.Put(ctx, key, string(doc)); err != nil {
		c.logger.Warn("diagram cache put failed", "key", key, "error", err)
	}
	return doc, nil
}

// Key derives the cache key for a fact list: <format>:<sha256 of canonical JSON>.
func (c *CachedTranslator) Key(facts []domain.Fact) (string, error) {
	data, err := json.Marshal(facts)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return string(c.format) + ":" + hex.EncodeToString(sum[:]), nil
}
