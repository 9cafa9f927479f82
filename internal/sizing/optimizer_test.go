package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

func cycle(hops int, profitPct, baseSlippage float64) types.Cycle {
	return types.Cycle{
		Path:          make([]string, hops+1),
		Hops:          hops,
		ProfitPct:     profitPct,
		TotalSlippage: baseSlippage,
	}
}

func params() Params {
	return Params{
		MaxTradeUSD:        10_000,
		Steps:              20,
		SlippageCeiling:    0.5,
		PriceImpactCeiling: 1.0,
		BaseGasUnits:       150_000,
		GasPriceGwei:       20,
		NativeUSD:          2000,
	}
}

func TestOptimize_PicksNetProfitMaximum(t *testing.T) {
	res := Optimize(cycle(3, 1.5, 0.1), params())

	require.Len(t, res.Analysis, 20)
	assert.Greater(t, res.OptimalSizeUSD, 0.0)

	// The selection must dominate every other safe candidate.
	for _, s := range res.Analysis {
		if s.Safe {
			assert.LessOrEqual(t, s.NetProfitUSD, res.ExpectedNetProfitUSD)
		}
	}
	// And the reported profit belongs to the reported size.
	found := false
	for _, s := range res.Analysis {
		if s.SizeUSD == res.OptimalSizeUSD {
			assert.Equal(t, s.NetProfitUSD, res.ExpectedNetProfitUSD)
			found = true
		}
	}
	assert.True(t, found)
}

func TestOptimize_NoSafeSizeIsZeroResult(t *testing.T) {
	// Base slippage already above the ceiling: every candidate is unsafe.
	res := Optimize(cycle(3, 5.0, 0.6), params())

	assert.Zero(t, res.OptimalSizeUSD)
	assert.Zero(t, res.ExpectedNetProfitUSD)
	require.Len(t, res.Analysis, 20, "analysis is still returned for observability")
	for _, s := range res.Analysis {
		assert.False(t, s.Safe)
	}
}

func TestOptimize_StepMath(t *testing.T) {
	p := params()
	res := Optimize(cycle(3, 2.0, 0.1), p)
	require.Len(t, res.Analysis, 20)

	// Sizes form 20 equal steps over (0, maxTradeUSD].
	step := p.MaxTradeUSD / 20
	for i, s := range res.Analysis {
		assert.InDelta(t, step*float64(i+1), s.SizeUSD, 1e-9)
	}

	// Spot-check the documented formulas at one step.
	s := res.Analysis[9] // size 5000
	impact := math.Sqrt(s.SizeUSD / 100_000)
	assert.InDelta(t, 0.1+0.1*impact, s.Slippage, 1e-9)
	assert.InDelta(t, 0.05*impact, s.PriceImpact, 1e-9)
	assert.InDelta(t, 2.0/100*s.SizeUSD, s.GrossProfitUSD, 1e-9)
	assert.InDelta(t, s.Slippage*s.SizeUSD/100, s.SlippageCostUSD, 1e-9)

	wantGas := 150_000 * (1 + 0.5*3) * 20 * 1e-9 * 2000
	assert.InDelta(t, wantGas, s.GasUSD, 1e-9)
	assert.InDelta(t, s.GrossProfitUSD-s.SlippageCostUSD-s.GasUSD, s.NetProfitUSD, 1e-9)
}

func TestOptimize_GasScalesWithHops(t *testing.T) {
	p := params()
	short := Optimize(cycle(3, 2.0, 0.1), p)
	long := Optimize(cycle(5, 2.0, 0.1), p)
	assert.Greater(t, long.Analysis[0].GasUSD, short.Analysis[0].GasUSD)
}

func TestOptimize_ZeroMaxTrade(t *testing.T) {
	p := params()
	p.MaxTradeUSD = 0
	res := Optimize(cycle(3, 2.0, 0.1), p)
	assert.Zero(t, res.OptimalSizeUSD)
	assert.Empty(t, res.Analysis)
}
