package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AssetCfg struct {
	Symbol   string `yaml:"symbol"`
	Address  string `yaml:"address"`
	Decimals uint8  `yaml:"decimals"`
}

type OracleCfg struct {
	RestURL     string `yaml:"rest_url"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	Concurrency int    `yaml:"concurrency"`
}

type ChainCfg struct {
	RPCHTTP      string  `yaml:"rpc_http"`
	NativeUSD    float64 `yaml:"native_usd"`
	GasPriceGwei float64 `yaml:"gas_price_gwei"`
	BaseGasUnits float64 `yaml:"base_gas_units"`
}

type GraphCfg struct {
	CacheValidityMs int     `yaml:"cache_validity_ms"`
	MinLiquidityUSD float64 `yaml:"min_liquidity_usd"`
}

type SearchCfg struct {
	MaxHops         int     `yaml:"max_hops"`
	BranchingFactor int     `yaml:"branching_factor"`
	WeightFloor     float64 `yaml:"weight_floor"`
	TopKCycles      int     `yaml:"top_k_cycles"`
}

type TradeCfg struct {
	MaxTradeUSD        float64 `yaml:"max_trade_usd"`
	SizeSteps          int     `yaml:"size_steps"`
	SlippageCeiling    float64 `yaml:"slippage_ceiling"`     // percent
	PriceImpactCeiling float64 `yaml:"price_impact_ceiling"` // percent
}

type RiskCfg struct {
	ViabilityThreshold float64 `yaml:"viability_threshold"`
}

type AnalysisCfg struct {
	DeadlineMs        int `yaml:"deadline_ms"`
	ScanIntervalMs    int `yaml:"scan_interval_ms"`
	TopKOpportunities int `yaml:"top_k_opportunities"`
}

type RedisCfg struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Stream    string `yaml:"stream"`
	ActiveKey string `yaml:"active_key"`
}

type MetricsCfg struct {
	ListenAddr string `yaml:"listen_addr"`
}

type DashCfg struct {
	ListenAddr string `yaml:"listen_addr"`
}

type Config struct {
	DryRun bool       `yaml:"dry_run"`
	Assets []AssetCfg `yaml:"assets"`
	Seeds  []string   `yaml:"seeds"`

	Oracle   OracleCfg   `yaml:"oracle"`
	Chain    ChainCfg    `yaml:"chain"`
	Graph    GraphCfg    `yaml:"graph"`
	Search   SearchCfg   `yaml:"search"`
	Trade    TradeCfg    `yaml:"trade"`
	Risk     RiskCfg     `yaml:"risk"`
	Analysis AnalysisCfg `yaml:"analysis"`
	Redis    RedisCfg    `yaml:"redis"`
	Metrics  MetricsCfg  `yaml:"metrics"`
	Dash     DashCfg     `yaml:"dash"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Oracle.TimeoutMs == 0 {
		c.Oracle.TimeoutMs = 1500
	}
	if c.Oracle.Concurrency == 0 {
		c.Oracle.Concurrency = 8
	}
	if c.Chain.NativeUSD == 0 {
		c.Chain.NativeUSD = 2000
	}
	if c.Chain.GasPriceGwei == 0 {
		c.Chain.GasPriceGwei = 20
	}
	if c.Chain.BaseGasUnits == 0 {
		c.Chain.BaseGasUnits = 150_000
	}
	if c.Graph.CacheValidityMs == 0 {
		c.Graph.CacheValidityMs = 30_000
	}
	if c.Graph.MinLiquidityUSD == 0 {
		c.Graph.MinLiquidityUSD = 10_000
	}
	if c.Search.MaxHops == 0 {
		c.Search.MaxHops = 4
	}
	if c.Search.BranchingFactor == 0 {
		c.Search.BranchingFactor = 5
	}
	if c.Search.WeightFloor == 0 {
		c.Search.WeightFloor = 0.1
	}
	if c.Search.TopKCycles == 0 {
		c.Search.TopKCycles = 20
	}
	if c.Trade.MaxTradeUSD == 0 {
		c.Trade.MaxTradeUSD = 10_000
	}
	if c.Trade.SizeSteps == 0 {
		c.Trade.SizeSteps = 20
	}
	if c.Trade.SlippageCeiling == 0 {
		c.Trade.SlippageCeiling = 0.5
	}
	if c.Trade.PriceImpactCeiling == 0 {
		c.Trade.PriceImpactCeiling = 1.0
	}
	if c.Risk.ViabilityThreshold == 0 {
		c.Risk.ViabilityThreshold = 0.1
	}
	if c.Analysis.DeadlineMs == 0 {
		c.Analysis.DeadlineMs = 5000
	}
	if c.Analysis.ScanIntervalMs == 0 {
		c.Analysis.ScanIntervalMs = 10_000
	}
	if c.Analysis.TopKOpportunities == 0 {
		c.Analysis.TopKOpportunities = 10
	}
	if c.Redis.Stream == "" {
		c.Redis.Stream = "opps:stream"
	}
	if c.Redis.ActiveKey == "" {
		c.Redis.ActiveKey = "opps:active"
	}
	if len(c.Seeds) == 0 {
		for _, a := range c.Assets {
			c.Seeds = append(c.Seeds, a.Symbol)
		}
	}
}

// Validate rejects configuration the engine refuses to guess around.
func (c *Config) Validate() error {
	if len(c.Assets) < 3 {
		return fmt.Errorf("config: need at least 3 assets, got %d", len(c.Assets))
	}
	if c.Search.MaxHops < 3 {
		return fmt.Errorf("config: max_hops must be >= 3, got %d", c.Search.MaxHops)
	}
	if c.Trade.MaxTradeUSD <= 0 {
		return fmt.Errorf("config: max_trade_usd must be positive")
	}
	seen := make(map[string]struct{}, len(c.Assets))
	for _, a := range c.Assets {
		if a.Symbol == "" {
			return fmt.Errorf("config: asset with empty symbol")
		}
		if _, dup := seen[a.Symbol]; dup {
			return fmt.Errorf("config: duplicate asset symbol %q", a.Symbol)
		}
		seen[a.Symbol] = struct{}{}
	}
	for _, s := range c.Seeds {
		if _, ok := seen[s]; !ok {
			return fmt.Errorf("config: seed %q is not a configured asset", s)
		}
	}
	return nil
}

func (c *Config) OracleTimeout() time.Duration {
	return time.Duration(c.Oracle.TimeoutMs) * time.Millisecond
}
func (c *Config) CacheValidity() time.Duration {
	return time.Duration(c.Graph.CacheValidityMs) * time.Millisecond
}
func (c *Config) AnalysisDeadline() time.Duration {
	return time.Duration(c.Analysis.DeadlineMs) * time.Millisecond
}
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Analysis.ScanIntervalMs) * time.Millisecond
}
