package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
assets:
  - {symbol: WETH, decimals: 18}
  - {symbol: USDC, decimals: 6}
  - {symbol: DAI, decimals: 18}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30_000, cfg.Graph.CacheValidityMs)
	assert.Equal(t, 10_000.0, cfg.Graph.MinLiquidityUSD)
	assert.Equal(t, 4, cfg.Search.MaxHops)
	assert.Equal(t, 5, cfg.Search.BranchingFactor)
	assert.Equal(t, 0.1, cfg.Search.WeightFloor)
	assert.Equal(t, 20, cfg.Search.TopKCycles)
	assert.Equal(t, 10_000.0, cfg.Trade.MaxTradeUSD)
	assert.Equal(t, 20, cfg.Trade.SizeSteps)
	assert.Equal(t, 0.5, cfg.Trade.SlippageCeiling)
	assert.Equal(t, 1.0, cfg.Trade.PriceImpactCeiling)
	assert.Equal(t, 0.1, cfg.Risk.ViabilityThreshold)
	assert.Equal(t, 5000, cfg.Analysis.DeadlineMs)
	assert.Equal(t, 10, cfg.Analysis.TopKOpportunities)
	assert.Equal(t, 5*time.Second, cfg.AnalysisDeadline())
	assert.Equal(t, 30*time.Second, cfg.CacheValidity())

	// Seeds default to all configured assets.
	assert.Equal(t, []string{"WETH", "USDC", "DAI"}, cfg.Seeds)
}

func TestLoad_ExplicitValuesKept(t *testing.T) {
	path := writeConfig(t, `
assets:
  - {symbol: WETH}
  - {symbol: USDC}
  - {symbol: DAI}
seeds: [WETH]
search:
  max_hops: 5
  branching_factor: 3
graph:
  min_liquidity_usd: 25000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Search.MaxHops)
	assert.Equal(t, 3, cfg.Search.BranchingFactor)
	assert.Equal(t, 25_000.0, cfg.Graph.MinLiquidityUSD)
	assert.Equal(t, []string{"WETH"}, cfg.Seeds)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{Assets: []AssetCfg{{Symbol: "WETH"}, {Symbol: "USDC"}, {Symbol: "DAI"}}}
		c.applyDefaults()
		return c
	}

	assert.NoError(t, base().Validate())

	c := base()
	c.Search.MaxHops = 2
	assert.ErrorContains(t, c.Validate(), "max_hops")

	c = base()
	c.Assets = c.Assets[:2]
	c.Seeds = []string{"WETH"}
	assert.ErrorContains(t, c.Validate(), "at least 3 assets")

	c = base()
	c.Assets = append(c.Assets, AssetCfg{Symbol: "WETH"})
	assert.ErrorContains(t, c.Validate(), "duplicate")

	c = base()
	c.Seeds = []string{"WBTC"}
	assert.ErrorContains(t, c.Validate(), "not a configured asset")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
