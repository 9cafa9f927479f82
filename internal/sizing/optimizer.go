// Package sizing searches a discretized range of input notionals for the one
// maximizing net profit under slippage and price-impact ceilings. Pure math;
// gas price and native-asset price arrive as inputs.
package sizing

import (
	"math"

	"github.com/zhokingg/abt-un-sub002/internal/types"
)

// impactDenomUSD anchors the square-root impact model: trading this notional
// costs 1.0 units of impact before the slippage/impact coefficients.
const impactDenomUSD = 100_000

type Params struct {
	MaxTradeUSD        float64
	Steps              int
	SlippageCeiling    float64 // percent
	PriceImpactCeiling float64 // percent
	BaseGasUnits       float64
	GasPriceGwei       float64
	NativeUSD          float64
}

func (p *Params) normalize() {
	if p.Steps <= 0 {
		p.Steps = 20
	}
	if p.SlippageCeiling <= 0 {
		p.SlippageCeiling = 0.5
	}
	if p.PriceImpactCeiling <= 0 {
		p.PriceImpactCeiling = 1.0
	}
}

// Optimize evaluates every candidate size and picks the net-profit maximum
// among those inside both ceilings. A zero-size result means no candidate was
// safe; that is an answer, not an error. The full analysis is returned for
// observability.
func Optimize(c types.Cycle, p Params) types.SizingResult {
	p.normalize()

	res := types.SizingResult{Analysis: make([]types.SizeStep, 0, p.Steps)}
	if p.MaxTradeUSD <= 0 {
		return res
	}
	step := p.MaxTradeUSD / float64(p.Steps)

	// Gas grows with hop count: each extra hop is another swap on the route.
	gasUnits := p.BaseGasUnits * (1 + 0.5*float64(c.Hops))
	gasUSD := gasUnits * p.GasPriceGwei * 1e-9 * p.NativeUSD

	best := -1
	for i := 1; i <= p.Steps; i++ {
		size := step * float64(i)

		impact := math.Sqrt(size / impactDenomUSD)
		slippage := c.TotalSlippage + 0.1*impact
		priceImpact := 0.05 * impact

		gross := c.ProfitPct / 100 * size
		slipCost := slippage * size / 100
		expected := gross - slipCost
		net := expected - gasUSD

		s := types.SizeStep{
			SizeUSD:         size,
			Slippage:        slippage,
			PriceImpact:     priceImpact,
			GrossProfitUSD:  gross,
			SlippageCostUSD: slipCost,
			GasUSD:          gasUSD,
			NetProfitUSD:    net,
			Safe:            slippage < p.SlippageCeiling && priceImpact < p.PriceImpactCeiling,
		}
		res.Analysis = append(res.Analysis, s)

		if s.Safe && (best < 0 || net > res.Analysis[best].NetProfitUSD) {
			best = len(res.Analysis) - 1
		}
	}

	if best >= 0 {
		res.OptimalSizeUSD = res.Analysis[best].SizeUSD
		res.ExpectedNetProfitUSD = res.Analysis[best].NetProfitUSD
	}
	return res
}
