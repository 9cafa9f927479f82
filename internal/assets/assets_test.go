package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhokingg/abt-un-sub002/internal/config"
)

func TestChecksumAddress(t *testing.T) {
	// WETH on Arbitrum One.
	got, err := ChecksumAddress("0x82af49447d8a07e3bd95bd0d56f35241523fbab1")
	require.NoError(t, err)
	assert.Equal(t, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", got)

	// Already-checksummed input is a fixed point.
	again, err := ChecksumAddress(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestChecksumAddress_Invalid(t *testing.T) {
	for _, bad := range []string{"", "0x1234", "0x" + string(make([]byte, 40)), "not-an-address"} {
		_, err := ChecksumAddress(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFromConfig(t *testing.T) {
	descs, err := FromConfig([]config.AssetCfg{
		{Symbol: "WETH", Address: "0x82af49447d8a07e3bd95bd0d56f35241523fbab1", Decimals: 18},
		{Symbol: "USDC", Decimals: 6},
		{Symbol: "DAI"},
	})
	require.NoError(t, err)
	require.Len(t, descs, 3)

	assert.Equal(t, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", descs[0].Address)
	assert.Equal(t, uint8(6), descs[1].Decimals)
	// Decimals default to 18 when unset.
	assert.Equal(t, uint8(18), descs[2].Decimals)

	assert.Equal(t, []string{"WETH", "USDC", "DAI"}, Symbols(descs))
}

func TestFromConfig_Rejects(t *testing.T) {
	_, err := FromConfig([]config.AssetCfg{{Symbol: "", Decimals: 18}})
	assert.Error(t, err)

	_, err = FromConfig([]config.AssetCfg{{Symbol: "X", Address: "0xzz", Decimals: 18}})
	assert.Error(t, err)

	_, err = FromConfig([]config.AssetCfg{{Symbol: "X", Decimals: 40}})
	assert.Error(t, err)
}
