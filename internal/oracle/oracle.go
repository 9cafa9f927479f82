// Package oracle defines the liquidity and gas data sources consumed by the
// engine. Both are injected capabilities: the engine never talks to a venue
// directly and treats every oracle failure as degraded data, not a fault.
package oracle

import (
	"context"

	"github.com/zhokingg/abt-un-sub002/internal/types"
)

// LiquidityMetrics is the oracle's view of one directed asset pair.
type LiquidityMetrics struct {
	HasLiquidity      bool     `json:"hasLiquidity"`
	LiquidityUSD      float64  `json:"liquidityUSD"`
	Volume24hUSD      float64  `json:"volume24hUSD"`
	LiquidityScore    float64  `json:"liquidityScore"` // [0,1]
	FeeTiers          []uint32 `json:"feeTiers"`
	EstimatedSlippage float64  `json:"estimatedSlippage"` // percent
}

// LiquidityOracle reports whether a tradable venue exists between two assets.
// Implementations must honor ctx deadlines; a failed or timed-out call is
// interpreted by callers as "no edge".
type LiquidityOracle interface {
	PairMetrics(ctx context.Context, from, to types.AssetDescriptor) (LiquidityMetrics, error)
}

// GasOracle supplies the current gas price in gwei.
type GasOracle interface {
	GasPriceGwei(ctx context.Context) (float64, error)
}
