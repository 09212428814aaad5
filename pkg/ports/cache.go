package ports

import "context"

// DiagramCache stores rendered diagram documents keyed by a content hash.
// It is a memoisation layer only: losing entries never changes behaviour.
type DiagramCache interface {
	// Get returns the document stored under key.
	// Returns domain.ErrCacheMiss if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Put stores a document under key, replacing any previous value.
	Put(ctx context.Context, key string, document string) error
}
