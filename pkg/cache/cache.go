// Package cache stores rendered artifacts between CLI runs.
//
// Rendering the flow map through Graphviz and generating a full document are
// deterministic in their inputs, so the CLI keys their output by a hash of
// those inputs and reuses it. [FileCache] persists entries on disk,
// [NullCache] disables caching.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/screenforge/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}

// Keyer derives cache keys for the artifacts the CLI produces.
type Keyer interface {
	// SVGKey keys a Graphviz rendering of a DOT source.
	SVGKey(dot string) string
	// DocumentKey keys a generated document.
	DocumentKey(opts DocumentKeyOpts) string
}

// DocumentKeyOpts are the inputs that determine a generated document.
type DocumentKeyOpts struct {
	Operation   string `json:"operation"`
	CatalogHash string `json:"catalog"`
	TokensHash  string `json:"tokens"`
	Options     any    `json:"options,omitempty"`
}

// DefaultKeyer hashes inputs into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SVGKey returns "svg:<sha256 of dot>".
func (DefaultKeyer) SVGKey(dot string) string {
	return "svg:" + Hash([]byte(dot))
}

// DocumentKey returns "document:<sha256 of opts>".
func (DefaultKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return hashKey("document", opts)
}

// Fetch returns the cached value for key, or computes, stores and returns
// it. keyType labels the entry for cache hooks. A failed cache read counts
// as a miss and a failed write is ignored; only compute errors are returned.
func Fetch(ctx context.Context, c Cache, keyType, key string, ttl time.Duration, compute func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, keyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, keyType)

	data, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}
