package oracle

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ChainGasOracle reads the suggested gas price from an EVM node. The last
// good reading is cached so a flaky RPC degrades to stale data instead of
// stalling a pass.
type ChainGasOracle struct {
	ec  *ethclient.Client
	log *zap.Logger

	mu       sync.Mutex
	lastGwei float64
}

func NewChainGasOracle(rpcURL string, fallbackGwei float64, log *zap.Logger) (*ChainGasOracle, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return &ChainGasOracle{ec: ec, log: log, lastGwei: fallbackGwei}, nil
}

func (o *ChainGasOracle) GasPriceGwei(ctx context.Context) (float64, error) {
	gp, err := o.ec.SuggestGasPrice(ctx)
	if err != nil {
		o.mu.Lock()
		last := o.lastGwei
		o.mu.Unlock()
		o.log.Warn("gas oracle: SuggestGasPrice failed, using last value",
			zap.Float64("last_gwei", last), zap.Error(err))
		return last, nil
	}
	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(gp), big.NewFloat(1e9)).Float64()
	o.mu.Lock()
	o.lastGwei = gwei
	o.mu.Unlock()
	return gwei, nil
}

// FixedGasOracle returns a constant gwei value. Used in dry runs and tests.
type FixedGasOracle struct{ Gwei float64 }

func (o FixedGasOracle) GasPriceGwei(context.Context) (float64, error) { return o.Gwei, nil }
