package feed

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhokingg/abt-un-sub002/internal/config"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

func testReport() *types.Report {
	sizing := &types.SizingResult{OptimalSizeUSD: 2500, ExpectedNetProfitUSD: 31.4}
	return &types.Report{
		Opportunities: []types.ScoredOpportunity{
			{
				Cycle: types.Cycle{
					Path:   []string{"WETH", "USDC", "DAI", "WETH"},
					Hops:   3,
					Weight: 0.504,
				},
				Risk: types.RiskAssessment{
					Score:          42,
					Level:          types.RiskMedium,
					Recommendation: types.Proceed,
				},
				AdjustedScore: 0.29,
				Viable:        true,
				Sizing:        sizing,
			},
		},
		CyclesFound: 1,
		ViableCount: 1,
		Ts:          time.Now(),
	}
}

func TestPublishReport(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{Redis: config.RedisCfg{
		Addr:      mr.Addr(),
		Stream:    "opps:stream",
		ActiveKey: "opps:active",
	}}
	p := NewPublisher(cfg)
	defer p.Close()

	require.NoError(t, p.PublishReport(context.Background(), testReport()))

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	n, err := rdb.XLen(context.Background(), "opps:stream").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msgs, err := rdb.XRange(context.Background(), "opps:stream", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "DAI->WETH->USDC", msgs[0].Values["loop"])
	assert.Equal(t, "WETH->USDC->DAI->WETH", msgs[0].Values["path"])
	assert.Equal(t, "PROCEED", msgs[0].Values["recommendation"])

	// The active index tracks the canonical loop key.
	score, err := rdb.ZScore(context.Background(), "opps:active", "DAI->WETH->USDC").Result()
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)
}

func TestPublishReport_EmptyReportIsNoop(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{Redis: config.RedisCfg{
		Addr:      mr.Addr(),
		Stream:    "opps:stream",
		ActiveKey: "opps:active",
	}}
	p := NewPublisher(cfg)
	defer p.Close()

	require.NoError(t, p.PublishReport(context.Background(), &types.Report{Ts: time.Now()}))
	assert.False(t, mr.Exists("opps:stream"))
}
