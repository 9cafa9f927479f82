// Package graph builds and caches the liquidity multigraph the cycle search
// runs over. A snapshot is immutable once built and safe to share across
// concurrent searches.
package graph

import (
	"sort"
	"time"

	"github.com/zhokingg/abt-un-sub002/internal/types"
)

// LiquidityGraph is one immutable snapshot of the tradable-pair graph:
// adjacency lists sorted by descending weight plus a pair-keyed index.
type LiquidityGraph struct {
	adjacency map[string][]types.Edge
	byPair    map[string]types.Edge
	builtAt   time.Time
}

// PairKey is the index key for a directed pair.
func PairKey(from, to string) string { return from + "-" + to }

// NewSnapshot assembles a snapshot from a flat edge list. Adjacency lists are
// ordered by descending weight so the search's branching bound can slice the
// head of each list directly.
func NewSnapshot(edges []types.Edge, builtAt time.Time) *LiquidityGraph {
	g := &LiquidityGraph{
		adjacency: make(map[string][]types.Edge),
		byPair:    make(map[string]types.Edge, len(edges)),
		builtAt:   builtAt,
	}
	for _, e := range edges {
		g.adjacency[e.From] = append(g.adjacency[e.From], e)
		g.byPair[PairKey(e.From, e.To)] = e
	}
	for sym := range g.adjacency {
		out := g.adjacency[sym]
		sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	}
	return g
}

// Out returns the outgoing edges of an asset, best first. Callers must not
// mutate the returned slice.
func (g *LiquidityGraph) Out(symbol string) []types.Edge {
	return g.adjacency[symbol]
}

// Edge looks up the directed edge between a pair, if one exists.
func (g *LiquidityGraph) Edge(from, to string) (types.Edge, bool) {
	e, ok := g.byPair[PairKey(from, to)]
	return e, ok
}

// EdgeCount reports the number of directed edges in the snapshot.
func (g *LiquidityGraph) EdgeCount() int { return len(g.byPair) }

// BuiltAt reports when the snapshot was assembled.
func (g *LiquidityGraph) BuiltAt() time.Time { return g.builtAt }
