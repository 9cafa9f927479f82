// Package feed hands scored opportunities off to downstream consumers
// (execution, telemetry) over Redis.
package feed

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/zhokingg/abt-un-sub002/internal/config"
	"github.com/zhokingg/abt-un-sub002/internal/cycles"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

type Publisher struct {
	rdb    *redis.Client
	stream string
	active string
}

func NewPublisher(cfg *config.Config) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	return &Publisher{
		rdb:    rdb,
		stream: cfg.Redis.Stream,
		active: cfg.Redis.ActiveKey,
	}
}

// PublishReport appends every returned opportunity to the stream and refreshes
// the active-loop index. Viability is published, not filtered: consumers
// decide what to act on.
func (p *Publisher) PublishReport(ctx context.Context, rep *types.Report) error {
	tsMs := rep.Ts.UnixMilli()
	for _, o := range rep.Opportunities {
		key := cycles.CanonicalKey(o.Path[:o.Hops])
		fields := map[string]interface{}{
			"loop":           key,
			"path":           strings.Join(o.Path, "->"),
			"hops":           o.Hops,
			"weight":         o.Weight,
			"risk_score":     o.Risk.Score,
			"risk_level":     string(o.Risk.Level),
			"recommendation": string(o.Risk.Recommendation),
			"adjusted_score": o.AdjustedScore,
			"viable":         o.Viable,
			"ts_ms":          tsMs,
		}
		if o.Sizing != nil {
			fields["optimal_size_usd"] = o.Sizing.OptimalSizeUSD
			fields["net_profit_usd"] = o.Sizing.ExpectedNetProfitUSD
		}
		if err := p.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: fields,
		}).Err(); err != nil {
			return err
		}
		if err := p.rdb.ZAdd(ctx, p.active, redis.Z{
			Score: float64(tsMs), Member: key,
		}).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying Redis client.
func (p *Publisher) Close() error { return p.rdb.Close() }
