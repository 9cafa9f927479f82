package graph

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	imetrics "github.com/zhokingg/abt-un-sub002/internal/metrics"
	"github.com/zhokingg/abt-un-sub002/internal/oracle"
	"github.com/zhokingg/abt-un-sub002/internal/types"
	"go.uber.org/zap"
)

// weightDenomUSD is the notional at which an edge's weight saturates to 1.
const weightDenomUSD = 100_000

type BuilderOptions struct {
	MinLiquidityUSD float64
	Concurrency     int
	OracleTimeout   time.Duration
}

// Builder assembles fresh graph snapshots from oracle data. It carries no
// state between builds: the same oracle responses always yield the same graph.
type Builder struct {
	oracle oracle.LiquidityOracle
	opts   BuilderOptions
	log    *zap.Logger

	now func() time.Time
}

func NewBuilder(o oracle.LiquidityOracle, opts BuilderOptions, log *zap.Logger) *Builder {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.OracleTimeout <= 0 {
		opts.OracleTimeout = 1500 * time.Millisecond
	}
	return &Builder{oracle: o, opts: opts, log: log, now: time.Now}
}

// Build queries the oracle for every ordered pair of distinct assets with
// bounded concurrency and returns the resulting snapshot. A failed, timed-out
// or liquidity-less query produces no edge; it never fails the build. Build
// returns an error only when ctx is cancelled before completion.
func (b *Builder) Build(ctx context.Context, assets []types.AssetDescriptor) (*LiquidityGraph, error) {
	start := b.now()

	var (
		mu    sync.Mutex
		edges []types.Edge
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.Concurrency)

	for _, from := range assets {
		for _, to := range assets {
			if from.Symbol == to.Symbol {
				continue
			}
			from, to := from, to
			eg.Go(func() error {
				callCtx, cancel := context.WithTimeout(gctx, b.opts.OracleTimeout)
				defer cancel()

				m, err := b.oracle.PairMetrics(callCtx, from, to)
				if err != nil {
					imetrics.OracleErrors.Inc()
					b.log.Debug("oracle query failed, skipping pair",
						zap.String("from", from.Symbol), zap.String("to", to.Symbol), zap.Error(err))
					return nil
				}
				if !m.HasLiquidity || m.LiquidityUSD <= b.opts.MinLiquidityUSD {
					return nil
				}

				w := m.LiquidityUSD / weightDenomUSD
				if w > 1 {
					w = 1
				}
				mu.Lock()
				edges = append(edges, types.Edge{
					From:              from.Symbol,
					To:                to.Symbol,
					Weight:            w,
					FeeTiers:          m.FeeTiers,
					EstimatedSlippage: m.EstimatedSlippage,
					LiquidityUSD:      m.LiquidityUSD,
				})
				mu.Unlock()
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := NewSnapshot(edges, b.now())
	imetrics.GraphBuildSeconds.Observe(b.now().Sub(start).Seconds())
	imetrics.GraphEdges.Set(float64(g.EdgeCount()))
	b.log.Info("liquidity graph built",
		zap.Int("assets", len(assets)),
		zap.Int("edges", g.EdgeCount()),
		zap.Duration("took", b.now().Sub(start)))
	return g, nil
}
