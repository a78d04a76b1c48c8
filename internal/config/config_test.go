package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: test\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Name)
	assert.Equal(t, uint64(137), cfg.Chain.ChainID)
	assert.Equal(t, 2.0, cfg.Chain.SecondsPerBlock)
	assert.Equal(t, int64(31536000), cfg.Chain.SecondsPerYear)
	assert.Equal(t, 3.0, cfg.Chain.RewardRateScale)
	assert.Equal(t, "quickswap", cfg.Yield.SingleVaultAMM)
	assert.Equal(t, "dfyn", cfg.Yield.DualVaultAMM)
	assert.Equal(t, time.Minute, cfg.Yield.ScanInterval)
	assert.Equal(t, 720*time.Hour, cfg.Storage.Retention)
	assert.Equal(t, "https://api.thegraph.com/subgraphs/name/ss-sonic/dfyn-v5", cfg.Subgraph.Endpoints["dfyn"])

	fee, ok := cfg.Subgraph.LPFeeDecimal("QuickSwap")
	require.True(t, ok)
	assert.Equal(t, "0.0025", fee.String())
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
chain:
  seconds_per_block: 2.2
  reward_rate_scale: 1
presale:
  start_block: 100
  end_block: 200
  swap_block: 300
staking:
  pools:
    - address: "0xFf11555aedf0cDCA44cA587AeAf7FF4b7F7CD32D"
      active: true
      stake_token:
        address: "0xdab35042e63e93cc8556c9bae482e5415b5ac4b1"
        symbol: IRIS
        decimals: 18
      reward_token:
        address: "0x2791bca1f2de4661ed88a30c99a7a9449aa84174"
        symbol: USDC
        decimals: 6
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.2, cfg.Chain.SecondsPerBlock)
	assert.Equal(t, "1", cfg.Chain.RewardRateScaleDecimal().String())
	assert.True(t, cfg.Presale.Enabled())
	assert.Equal(t, uint64(300), cfg.Presale.SwapBlock)
	require.Len(t, cfg.Staking.Pools, 1)
	assert.Equal(t, uint8(6), cfg.Staking.Pools[0].RewardToken.Decimals)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HERMES_LOG_LEVEL", "debug")
	t.Setenv("HERMES_SUBGRAPH_DFYN", "http://localhost:8000/dfyn")

	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "http://localhost:8000/dfyn", cfg.Subgraph.Endpoints["dfyn"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero block time", "chain:\n  seconds_per_block: 0\n"},
		{"unknown amm", "yield:\n  single_vault_amm: sushiswap\n"},
		{"bad pool address", "staking:\n  pools:\n    - address: nope\n"},
		{"presale inverted", "presale:\n  start_block: 10\n  end_block: 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
