package ports

import (
	"context"
	"testing"
	"time"

	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDiagramCacheContract runs a suite of tests to verify that a DiagramCache
// implementation adheres to the defined interface contract.
func RunDiagramCacheContract(t *testing.T, cache DiagramCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put and Get", func(t *testing.T) {
		doc := `<sbgn><map language="process description"/></sbgn>`
		require.NoError(t, cache.Put(ctx, key, doc), "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, doc, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, "first"))
		require.NoError(t, cache.Put(ctx, key, "second"))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("Empty Document", func(t *testing.T) {
		emptyKey := key + "-empty"
		require.NoError(t, cache.Put(ctx, emptyKey, ""))

		got, err := cache.Get(ctx, emptyKey)
		require.NoError(t, err, "an empty document is still a hit")
		assert.Equal(t, "", got)
	})
}
