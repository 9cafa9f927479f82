package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GraphBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "arb_graph_build_seconds",
		Help:    "Time to rebuild the liquidity graph from oracle data",
		Buckets: prometheus.DefBuckets,
	})

	OracleErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arb_oracle_errors_total",
		Help: "Number of failed or timed-out liquidity oracle calls",
	})

	GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_graph_edges",
		Help: "Edge count of the current liquidity graph snapshot",
	})

	CyclesFound = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_cycles_found",
		Help: "Cycles found in the last analysis pass",
	})

	ViableOpportunities = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_viable_opportunities",
		Help: "Viable opportunities in the last analysis pass",
	})

	AnalyzeSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "arb_analyze_seconds",
		Help:    "End-to-end latency of one analysis pass",
		Buckets: prometheus.DefBuckets,
	})

	GasGwei = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arb_gas_price_gwei",
		Help: "Gas price used by the last analysis pass",
	})
)

func init() {
	prometheus.MustRegister(
		GraphBuildSeconds,
		OracleErrors,
		GraphEdges,
		CyclesFound,
		ViableOpportunities,
		AnalyzeSeconds,
		GasGwei,
	)
}
