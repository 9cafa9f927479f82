package types

import "time"

// AssetDescriptor identifies a tradable asset. Built once from config and
// never mutated afterwards.
type AssetDescriptor struct {
	Symbol   string
	Address  string
	Decimals uint8
}

// Edge is one directed venue between an ordered asset pair. Weight is a
// normalized liquidity proxy in [0,1]; EstimatedSlippage is percent per hop.
type Edge struct {
	From              string
	To                string
	Weight            float64
	FeeTiers          []uint32
	EstimatedSlippage float64
	LiquidityUSD      float64
}

// Cycle is a return-to-start loop through the graph. Path has Hops+1 entries
// with Path[0] == Path[len-1] == the seed asset.
type Cycle struct {
	Path          []string
	Hops          int
	Weight        float64 // product of traversed edge weights
	TotalSlippage float64 // sum of traversed edges' slippage, percent
	ProfitPct     float64 // modeled gross return for the loop, percent
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type Recommendation string

const (
	Proceed Recommendation = "PROCEED"
	Caution Recommendation = "CAUTION"
)

// RiskFactor is one additive component of the composite score, kept separate
// so the final number stays explainable.
type RiskFactor struct {
	Name   string
	Points float64
}

type RiskAssessment struct {
	Score          float64 // clamped to [0,100]
	Level          RiskLevel
	Factors        []RiskFactor
	Recommendation Recommendation
}

// SizeStep is the evaluation of one candidate trade size.
type SizeStep struct {
	SizeUSD         float64
	Slippage        float64 // percent
	PriceImpact     float64 // percent
	GrossProfitUSD  float64
	SlippageCostUSD float64
	GasUSD          float64
	NetProfitUSD    float64
	Safe            bool // within slippage and impact ceilings
}

// SizingResult carries the selected size plus the full per-step analysis.
// OptimalSizeUSD == 0 means no candidate cleared both ceilings.
type SizingResult struct {
	OptimalSizeUSD       float64
	ExpectedNetProfitUSD float64
	Analysis             []SizeStep
}

type ScoredOpportunity struct {
	Cycle
	Risk          RiskAssessment
	PriceImpact   float64 // percent, at the reference trade size
	AdjustedScore float64 // Weight * (100 - Risk.Score) / 100
	Viable        bool
	Sizing        *SizingResult
	Ts            time.Time
}

// TimingReport is the per-stage latency breakdown of one analysis pass.
type TimingReport struct {
	GraphBuild   time.Duration
	PathFinding  time.Duration
	Optimization time.Duration
	Total        time.Duration
	TargetMet    bool
}

// Report is the result of one full analysis pass.
type Report struct {
	Opportunities []ScoredOpportunity
	CyclesFound   int
	ViableCount   int
	SeedsSearched int
	Timings       TimingReport
	Ts            time.Time
}
