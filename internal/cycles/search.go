// Package cycles enumerates profitable return-to-start loops through a graph
// snapshot with a bounded, deduplicated depth-first search.
package cycles

import (
	"context"
	"sort"

	"github.com/zhokingg/abt-un-sub002/internal/graph"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

const minHops = 3 // A->B->A round trips are not arbitrage loops

type Options struct {
	MaxHops         int
	BranchingFactor int     // top-N outgoing edges explored per node
	WeightFloor     float64 // abandon branches whose cumulative weight drops below
	TopK            int     // result truncation after sorting
}

func (o *Options) normalize() {
	if o.MaxHops < minHops {
		o.MaxHops = 4
	}
	if o.BranchingFactor <= 0 {
		o.BranchingFactor = 5
	}
	if o.WeightFloor <= 0 {
		o.WeightFloor = 0.1
	}
	if o.TopK <= 0 {
		o.TopK = 20
	}
}

type searcher struct {
	g     *graph.LiquidityGraph
	start string
	opts  Options

	seen map[string]struct{} // canonical key -> first-seen wins
	out  []types.Cycle
	done bool // ctx expired; unwind with partial results
}

// Find enumerates cycles from start. Deterministic for a fixed snapshot; on
// ctx expiry the cycles collected so far are returned. Each call owns its
// path and visited state, so concurrent calls over one shared snapshot are
// safe.
func Find(ctx context.Context, g *graph.LiquidityGraph, start string, opts Options) []types.Cycle {
	opts.normalize()
	s := &searcher{
		g:     g,
		start: start,
		opts:  opts,
		seen:  make(map[string]struct{}),
	}
	visited := map[string]bool{start: true}
	s.walk(ctx, []string{start}, visited, 1.0, 0.0)

	sort.SliceStable(s.out, func(i, j int) bool { return s.out[i].Weight > s.out[j].Weight })
	if len(s.out) > opts.TopK {
		s.out = s.out[:opts.TopK]
	}
	return s.out
}

// walk extends path (which always begins at the seed) one hop at a time.
// The path slice is copied on branch so no recursion level aliases another's
// buffer; visited is owned by this call and backtracked explicitly.
func (s *searcher) walk(ctx context.Context, path []string, visited map[string]bool, cumWeight, cumSlippage float64) {
	if s.done {
		return
	}
	select {
	case <-ctx.Done():
		s.done = true
		return
	default:
	}

	cur := path[len(path)-1]

	// Close the loop whenever the depth window allows and a return edge exists.
	if len(path) >= minHops && len(path) <= s.opts.MaxHops {
		if ret, ok := s.g.Edge(cur, s.start); ok {
			s.emit(path, cumWeight*ret.Weight, cumSlippage+ret.EstimatedSlippage)
		}
	}
	if len(path) >= s.opts.MaxHops {
		return
	}

	taken := 0
	for _, e := range s.g.Out(cur) { // best-first: adjacency is weight-sorted
		if taken >= s.opts.BranchingFactor {
			break
		}
		if e.To == s.start || visited[e.To] {
			continue
		}
		w := cumWeight * e.Weight
		if w < s.opts.WeightFloor {
			// Adjacency is sorted by weight, so every remaining edge prunes too.
			break
		}
		taken++

		next := make([]string, len(path), len(path)+1)
		copy(next, path)
		next = append(next, e.To)

		visited[e.To] = true
		s.walk(ctx, next, visited, w, cumSlippage+e.EstimatedSlippage)
		delete(visited, e.To)
	}
}

func (s *searcher) emit(loop []string, weight, slippage float64) {
	key := CanonicalKey(loop)
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}

	path := make([]string, len(loop), len(loop)+1)
	copy(path, loop)
	path = append(path, s.start)

	s.out = append(s.out, types.Cycle{
		Path:          path,
		Hops:          len(loop),
		Weight:        weight,
		TotalSlippage: slippage,
		ProfitPct:     weight, // weight-proportional gross-return proxy
	})
}
