package diagram_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	putErr error
}

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	doc, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return doc, nil
}

func (c *mapCache) Put(ctx context.Context, key, doc string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	if c.data == nil {
		c.data = make(map[string]string)
	}
	c.data[key] = doc
	return nil
}

func countingTranslator(calls *int) diagram.Translator {
	return diagram.TranslatorFunc(func(ctx context.Context, facts []domain.Fact) (diagram.Document, error) {
		*calls++
		return diagram.SBGN{}.Translate(ctx, facts)
	})
}

func TestCached_HitSkipsInner(t *testing.T) {
	calls := 0
	cache := &mapCache{}
	tr := diagram.Cached(countingTranslator(&calls), cache, diagram.FormatSBGN)

	first, err := tr.Translate(context.Background(), sampleFacts())
	require.NoError(t, err)
	second, err := tr.Translate(context.Background(), sampleFacts())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Len(t, cache.data, 1)
}

func TestCached_KeyNamespacedByFormat(t *testing.T) {
	sbgnKey, err := diagram.Cached(diagram.SBGN{}, &mapCache{}, diagram.FormatSBGN).Key(sampleFacts())
	require.NoError(t, err)
	mermaidKey, err := diagram.Cached(diagram.Mermaid{}, &mapCache{}, diagram.FormatMermaid).Key(sampleFacts())
	require.NoError(t, err)

	assert.NotEqual(t, sbgnKey, mermaidKey)
	assert.Regexp(t, `^sbgn:[0-9a-f]{64}$`, sbgnKey)
}

func TestCached_FailuresFallThrough(t *testing.T) {
	calls := 0
	cache := &mapCache{getErr: errors.New("redis down"), putErr: errors.New("redis down")}
	tr := diagram.Cached(countingTranslator(&calls), cache, diagram.FormatSBGN)

	doc, err := tr.Translate(context.Background(), sampleFacts())
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, 1, calls)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	cache := &mapCache{}
	tr := diagram.Cached(diagram.SBGN{}, cache, diagram.FormatSBGN)

	_, err := tr.Translate(context.Background(), nil)
	var translationErr *domain.TranslationError
	require.ErrorAs(t, err, &translationErr)
	assert.Empty(t, cache.data)
}

func TestCached_ObserverSeesHitsAndMisses(t *testing.T) {
	var results []bool
	tr := diagram.Cached(diagram.SBGN{}, &mapCache{}, diagram.FormatSBGN,
		diagram.WithCacheObserver(func(hit bool) { results = append(results, hit) }))

	for i := 0; i < 2; i++ {
		_, err := tr.Translate(context.Background(), sampleFacts())
		require.NoError(t, err)
	}
	assert.Equal(t, []bool{false, true}, results)
}
