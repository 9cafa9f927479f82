package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zhokingg/abt-un-sub002/internal/types"
	"go.uber.org/zap"
)

// RestOracle queries a liquidity aggregator over HTTP. The endpoint contract:
// GET {base}/v1/liquidity?from=SYM&to=SYM returns a LiquidityMetrics JSON body.
type RestOracle struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewRestOracle(baseURL string, log *zap.Logger) *RestOracle {
	return &RestOracle{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		log:     log,
	}
}

func (o *RestOracle) PairMetrics(ctx context.Context, from, to types.AssetDescriptor) (LiquidityMetrics, error) {
	q := url.Values{}
	q.Set("from", from.Symbol)
	q.Set("to", to.Symbol)
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/v1/liquidity?"+q.Encode(), nil)
	if err != nil {
		return LiquidityMetrics{}, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return LiquidityMetrics{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// Pair unknown to the aggregator: legitimate "no venue".
		return LiquidityMetrics{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return LiquidityMetrics{}, fmt.Errorf("liquidity oracle: status %d for %s-%s", resp.StatusCode, from.Symbol, to.Symbol)
	}
	var m LiquidityMetrics
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return LiquidityMetrics{}, fmt.Errorf("liquidity oracle: decode %s-%s: %w", from.Symbol, to.Symbol, err)
	}
	return m, nil
}
