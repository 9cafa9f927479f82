// Package assets turns configured asset entries into validated, immutable
// descriptors used everywhere else in the pipeline.
package assets

import (
	"fmt"

	"github.com/zhokingg/abt-un-sub002/internal/config"
	"github.com/zhokingg/abt-un-sub002/internal/types"
)

const maxDecimals = 36

// FromConfig validates the configured assets and returns descriptors with
// checksum-normalized addresses. Symbol uniqueness is enforced upstream by
// config.Validate; malformed addresses are a hard error here.
func FromConfig(entries []config.AssetCfg) ([]types.AssetDescriptor, error) {
	out := make([]types.AssetDescriptor, 0, len(entries))
	for _, e := range entries {
		if e.Symbol == "" {
			return nil, fmt.Errorf("assets: entry with empty symbol")
		}
		if e.Decimals > maxDecimals {
			return nil, fmt.Errorf("assets: %s: decimals %d out of range", e.Symbol, e.Decimals)
		}
		addr := e.Address
		if addr != "" {
			cs, err := ChecksumAddress(addr)
			if err != nil {
				return nil, fmt.Errorf("assets: %s: %w", e.Symbol, err)
			}
			addr = cs
		}
		dec := e.Decimals
		if dec == 0 {
			dec = 18
		}
		out = append(out, types.AssetDescriptor{
			Symbol:   e.Symbol,
			Address:  addr,
			Decimals: dec,
		})
	}
	return out, nil
}

// Symbols returns the symbols of the given descriptors in order.
func Symbols(descs []types.AssetDescriptor) []string {
	out := make([]string, len(descs))
	for i, d := range descs {
		out[i] = d.Symbol
	}
	return out
}
