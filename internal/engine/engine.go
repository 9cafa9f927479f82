// Package engine sequences the analysis pipeline: graph freshness, per-seed
// cycle search, risk scoring, ranking and trade sizing, all against a single
// deadline.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zhokingg/abt-un-sub002/internal/config"
	"github.com/zhokingg/abt-un-sub002/internal/cycles"
	"github.com/zhokingg/abt-un-sub002/internal/graph"
	imetrics "github.com/zhokingg/abt-un-sub002/internal/metrics"
	"github.com/zhokingg/abt-un-sub002/internal/oracle"
	"github.com/zhokingg/abt-un-sub002/internal/risk"
	"github.com/zhokingg/abt-un-sub002/internal/sizing"
	"github.com/zhokingg/abt-un-sub002/internal/types"
	"go.uber.org/zap"
)

// ErrInvalidInput marks configuration or arguments the engine refuses to
// guess around. Everything else degrades the result set instead of failing.
var ErrInvalidInput = errors.New("invalid input")

type Engine struct {
	cfg    *config.Config
	assets []types.AssetDescriptor
	cache  *graph.Cache
	gas    oracle.GasOracle
	log    *zap.Logger
}

func New(cfg *config.Config, assets []types.AssetDescriptor, cache *graph.Cache, gas oracle.GasOracle, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, assets: assets, cache: cache, gas: gas, log: log}
}

// Analyze runs one full pass over the given seed assets and returns the
// top-K opportunities with per-stage timings. The pass runs under the
// configured deadline; on expiry whatever has been computed so far is
// returned with TargetMet=false rather than discarded.
func (e *Engine) Analyze(ctx context.Context, seeds []string) (*types.Report, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed assets", ErrInvalidInput)
	}
	if e.cfg.Search.MaxHops < 3 {
		return nil, fmt.Errorf("%w: max_hops %d < 3", ErrInvalidInput, e.cfg.Search.MaxHops)
	}

	dctx, cancel := context.WithTimeout(ctx, e.cfg.AnalysisDeadline())
	defer cancel()

	start := time.Now()
	rep := &types.Report{SeedsSearched: len(seeds), Ts: start}

	// Stage 1: graph freshness.
	snap, rebuilt, err := e.cache.RebuildIfStale(dctx, e.assets)
	rep.Timings.GraphBuild = time.Since(start)
	if err != nil {
		e.log.Warn("graph rebuild incomplete", zap.Bool("have_snapshot", snap != nil), zap.Error(err))
	}
	if snap == nil {
		rep.Timings.Total = time.Since(start)
		return rep, nil
	}
	if rebuilt {
		e.log.Debug("graph rebuilt", zap.Int("edges", snap.EdgeCount()))
	}

	// Stage 2: per-seed cycle search over the shared read-only snapshot.
	searchStart := time.Now()
	opts := cycles.Options{
		MaxHops:         e.cfg.Search.MaxHops,
		BranchingFactor: e.cfg.Search.BranchingFactor,
		WeightFloor:     e.cfg.Search.WeightFloor,
		TopK:            e.cfg.Search.TopKCycles,
	}

	var (
		mu    sync.Mutex
		found []types.Cycle
		seen  = make(map[string]struct{})
	)
	eg, egctx := errgroup.WithContext(dctx)
	for _, seed := range seeds {
		seed := seed
		eg.Go(func() error {
			for _, c := range cycles.Find(egctx, snap, seed, opts) {
				key := cycles.CanonicalKey(c.Path[:c.Hops])
				mu.Lock()
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					found = append(found, c)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait() // searches never fail; they stop early on ctx expiry
	rep.Timings.PathFinding = time.Since(searchStart)
	rep.CyclesFound = len(found)
	imetrics.CyclesFound.Set(float64(len(found)))

	// Stage 3: risk scoring and viability.
	gasGwei := e.gasPrice(dctx)
	refImpact := 0.05 * math.Sqrt(e.cfg.Trade.MaxTradeUSD/2/100_000)

	scored := make([]types.ScoredOpportunity, 0, len(found))
	for _, c := range found {
		a := risk.Score(c, refImpact, gasGwei)
		adj := c.Weight * (100 - a.Score) / 100
		o := types.ScoredOpportunity{
			Cycle:         c,
			Risk:          a,
			PriceImpact:   refImpact,
			AdjustedScore: adj,
			Viable:        a.Recommendation == types.Proceed && adj > e.cfg.Risk.ViabilityThreshold,
			Ts:            time.Now(),
		}
		if o.Viable {
			rep.ViableCount++
		}
		scored = append(scored, o)
	}
	imetrics.ViableOpportunities.Set(float64(rep.ViableCount))

	// Stage 4: rank, truncate, size the winners.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].AdjustedScore > scored[j].AdjustedScore })
	if len(scored) > e.cfg.Analysis.TopKOpportunities {
		scored = scored[:e.cfg.Analysis.TopKOpportunities]
	}

	optStart := time.Now()
	params := sizing.Params{
		MaxTradeUSD:        e.cfg.Trade.MaxTradeUSD,
		Steps:              e.cfg.Trade.SizeSteps,
		SlippageCeiling:    e.cfg.Trade.SlippageCeiling,
		PriceImpactCeiling: e.cfg.Trade.PriceImpactCeiling,
		BaseGasUnits:       e.cfg.Chain.BaseGasUnits,
		GasPriceGwei:       gasGwei,
		NativeUSD:          e.cfg.Chain.NativeUSD,
	}
	for i := range scored {
		if dctx.Err() != nil {
			break
		}
		r := sizing.Optimize(scored[i].Cycle, params)
		scored[i].Sizing = &r
	}
	rep.Timings.Optimization = time.Since(optStart)

	rep.Opportunities = scored
	rep.Timings.Total = time.Since(start)
	rep.Timings.TargetMet = dctx.Err() == nil && rep.Timings.Total <= e.cfg.AnalysisDeadline()
	imetrics.AnalyzeSeconds.Observe(rep.Timings.Total.Seconds())

	e.log.Info("analysis pass complete",
		zap.Int("cycles", rep.CyclesFound),
		zap.Int("viable", rep.ViableCount),
		zap.Int("returned", len(rep.Opportunities)),
		zap.Duration("total", rep.Timings.Total),
		zap.Bool("target_met", rep.Timings.TargetMet))
	return rep, nil
}

func (e *Engine) gasPrice(ctx context.Context) float64 {
	gwei, err := e.gas.GasPriceGwei(ctx)
	if err != nil || gwei <= 0 {
		gwei = e.cfg.Chain.GasPriceGwei
	}
	imetrics.GasGwei.Set(gwei)
	return gwei
}
