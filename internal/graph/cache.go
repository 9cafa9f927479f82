package graph

import (
	"context"
	"sync"
	"time"

	"github.com/zhokingg/abt-un-sub002/internal/types"
)

// Cache holds the current graph snapshot and rebuilds it once the validity
// window has elapsed. The clock is a field so tests can control staleness.
type Cache struct {
	builder  *Builder
	validity time.Duration

	mu   sync.Mutex
	snap *LiquidityGraph

	now func() time.Time
}

func NewCache(b *Builder, validity time.Duration) *Cache {
	return &Cache{builder: b, validity: validity, now: time.Now}
}

// RebuildIfStale returns the current snapshot, rebuilding it first when the
// validity window has expired. The boolean reports whether a rebuild ran.
// Concurrent callers serialize here so at most one oracle fan-out is in
// flight; within the window everyone shares the same snapshot.
func (c *Cache) RebuildIfStale(ctx context.Context, assets []types.AssetDescriptor) (*LiquidityGraph, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.now().Sub(c.snap.BuiltAt()) <= c.validity {
		return c.snap, false, nil
	}

	g, err := c.builder.Build(ctx, assets)
	if err != nil {
		// Keep serving the stale snapshot, if any, rather than dropping the pass.
		return c.snap, false, err
	}
	c.snap = g
	return c.snap, true, nil
}

// Snapshot returns the cached graph without any freshness check.
func (c *Cache) Snapshot() *LiquidityGraph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}
