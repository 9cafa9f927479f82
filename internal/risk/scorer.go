// Package risk computes a composite 0-100 risk score per candidate cycle.
// Deterministic and side-effect-free so the orchestrator's ranking is
// reproducible.
package risk

import "github.com/zhokingg/abt-un-sub002/internal/types"

const proceedBelow = 50

// Score folds hop count, slippage, price impact and network congestion into
// one clamped score with a per-factor breakdown.
func Score(c types.Cycle, priceImpactPct, gasGwei float64) types.RiskAssessment {
	factors := []types.RiskFactor{
		{Name: "liquidity", Points: float64(c.Hops) * 10},
		{Name: "slippage", Points: c.TotalSlippage * 200},
		{Name: "price_impact", Points: priceImpactPct * 100},
		{Name: "congestion", Points: congestionPoints(gasGwei)},
	}

	var total float64
	for _, f := range factors {
		total += f.Points
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	level := types.RiskHigh
	switch {
	case total < 30:
		level = types.RiskLow
	case total < 60:
		level = types.RiskMedium
	}

	rec := types.Caution
	if total < proceedBelow {
		rec = types.Proceed
	}

	return types.RiskAssessment{
		Score:          total,
		Level:          level,
		Factors:        factors,
		Recommendation: rec,
	}
}

func congestionPoints(gasGwei float64) float64 {
	switch {
	case gasGwei > 50:
		return 30
	case gasGwei > 20:
		return 15
	default:
		return 5
	}
}
