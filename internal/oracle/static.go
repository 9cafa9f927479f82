package oracle

import (
	"context"

	"github.com/zhokingg/abt-un-sub002/internal/types"
)

// StaticOracle serves pair metrics from a fixed table keyed "FROM-TO".
// Pairs absent from the table report no liquidity. Used in tests and
// offline dry runs.
type StaticOracle struct {
	Pairs map[string]LiquidityMetrics
}

func NewStaticOracle() *StaticOracle {
	return &StaticOracle{Pairs: make(map[string]LiquidityMetrics)}
}

// Set registers metrics for a directed pair.
func (o *StaticOracle) Set(from, to string, m LiquidityMetrics) {
	o.Pairs[from+"-"+to] = m
}

func (o *StaticOracle) PairMetrics(_ context.Context, from, to types.AssetDescriptor) (LiquidityMetrics, error) {
	m, ok := o.Pairs[from.Symbol+"-"+to.Symbol]
	if !ok {
		return LiquidityMetrics{}, nil
	}
	return m, nil
}
