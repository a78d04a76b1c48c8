package staking

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stakingDI "github.com/fd1az/hermes-yield/business/staking/di"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/monolith"
)

const moduleSnapshot = `
staking_pools:
  - address: "0xFf11555aedf0cDCA44cA587AeAf7FF4b7F7CD32D"
    reward_token_price: 1
    stake_token_price: 1
    rewards_per_week: "700000000"
    total_staked: "10000000000000000000000"
`

func TestModule_DefaultPools(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(moduleSnapshot), 0o600))

	cfg := &config.Config{
		Chain: config.ChainConfig{ChainID: 137},
		Yield: config.YieldConfig{SnapshotPath: path},
	}
	mono := monolith.New(cfg, logger.NewNop())
	defer mono.Close()

	mod := &Module{}
	require.NoError(t, mono.RegisterModules(mod))
	require.NoError(t, mono.StartModules(context.Background(), mod))

	results, err := stakingDI.GetStakingService(mono.Services()).PoolAprs(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)

	last := results[5]
	assert.False(t, last.Missing)
	assert.InDelta(t, 7.0, last.Apr.Weekly.Or(-1), 1e-9)
}

func TestNewRegistry_ConfiguredPools(t *testing.T) {
	cfg := &config.Config{
		Chain: config.ChainConfig{ChainID: 80001},
		Staking: config.StakingConfig{Pools: []config.StakingPoolConfig{
			{
				Address:     "0x0000000000000000000000000000000000000001",
				Active:      true,
				StakeToken:  config.TokenRefConfig{Address: "0x0000000000000000000000000000000000000002", Symbol: "STK", Decimals: 18},
				RewardToken: config.TokenRefConfig{Address: "0x0000000000000000000000000000000000000003", Symbol: "RWD", Decimals: 6},
			},
			{
				Address:  "0x0000000000000000000000000000000000000004",
				Disabled: true,
			},
		}},
	}

	r := NewRegistry(cfg)
	assert.Equal(t, uint64(80001), r.ChainID())
	pools := r.Pools()
	require.Len(t, pools, 1)
	assert.Equal(t, common.HexToAddress("0x01"), pools[0].Address)
	assert.Equal(t, "RWD", pools[0].RewardToken.Symbol)
}

func TestNewRegistry_DefaultsFollowChain(t *testing.T) {
	assert.Len(t, NewRegistry(&config.Config{Chain: config.ChainConfig{ChainID: 137}}).Pools(), 6)
	assert.Empty(t, NewRegistry(&config.Config{Chain: config.ChainConfig{ChainID: 1}}).Pools())
}
