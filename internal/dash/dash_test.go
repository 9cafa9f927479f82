package dash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

func report() *types.Report {
	return &types.Report{
		Opportunities: []types.ScoredOpportunity{
			{
				Cycle: types.Cycle{Path: []string{"WETH", "USDC", "DAI", "WETH"}, Hops: 3, Weight: 0.504},
				Risk: types.RiskAssessment{
					Score: 42, Level: types.RiskMedium, Recommendation: types.Proceed,
				},
				AdjustedScore: 0.29,
				Viable:        true,
				Sizing:        &types.SizingResult{OptimalSizeUSD: 2500, ExpectedNetProfitUSD: 31.4},
				Ts:            time.Now(),
			},
		},
		CyclesFound: 3,
		ViableCount: 1,
		Timings:     types.TimingReport{Total: 120 * time.Millisecond, TargetMet: true},
		Ts:          time.Now(),
	}
}

func TestStore_Update(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.snapshot().Rows)

	s.Update(report())
	v := s.snapshot()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "WETH->USDC->DAI->WETH", v.Rows[0].Path)
	assert.Equal(t, "PROCEED", v.Rows[0].Recommend)
	assert.Equal(t, 2500.0, v.Rows[0].OptimalSize)
	assert.Equal(t, 3, v.Cycles)
	assert.True(t, v.TargetMet)
}

func TestStore_SubscribersReceiveUpdates(t *testing.T) {
	s := NewStore()
	ch := s.subscribe()
	defer s.unsubscribe(ch)

	s.Update(report())

	select {
	case v := <-ch:
		assert.Len(t, v.Rows, 1)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the update")
	}
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	s := NewStore()
	ch := s.subscribe()
	defer s.unsubscribe(ch)

	// Fill the subscriber buffer and keep updating; Update must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			s.Update(report())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Update blocked on a slow subscriber")
	}
}
