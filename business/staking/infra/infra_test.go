package infra

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/hermes-yield/business/staking/domain"
	yieldDomain "github.com/fd1az/hermes-yield/business/yield/domain"
)

const stakingDoc = `
block: 17969588
staking_pools:
  - address: "0xFE3583513Ba38B228C7A62B200F71a0ecF337Eb9"
    reward_token_price: 0.25
    stake_token_price: "1.1"
    rewards_per_week: "7000000000000000000000"
    total_staked: "100000000000000000000000"
`

func TestFileStateSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stakingDoc), 0o600))

	states, err := NewFileStateSource(path).PoolStates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(17969588), states.Block)
	require.Len(t, states.States, 1)
	st := states.States[0]
	assert.Equal(t, common.HexToAddress("0xfe3583513ba38b228c7a62b200f71a0ecf337eb9"), st.Address)
	assert.Equal(t, "0.25", st.RewardTokenPrice.String())
	assert.Equal(t, "7000000000000000000000", st.RewardsPerWeek.String())
}

func TestFileStateSource_MissingFile(t *testing.T) {
	_, err := NewFileStateSource(filepath.Join(t.TempDir(), "nope.yaml")).PoolStates(context.Background())
	assert.Error(t, err)
}

func TestRenderPoolAprs(t *testing.T) {
	pools := domain.PolygonPools()
	results := []domain.PoolAprResult{
		{
			Pool: pools[0],
			Apr: yieldDomain.PoolApr{
				Weekly: yieldDomain.NewRate(7),
				Daily:  yieldDomain.NewRate(1),
				Yearly: yieldDomain.NewRate(364),
			},
		},
		{Pool: pools[1], Missing: true},
	}

	var buf bytes.Buffer
	RenderPoolAprs(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "STAKING POOLS (2)")
	assert.Contains(t, out, "364.00%")
	assert.Contains(t, out, "KAVIAN (old)")
	assert.Contains(t, out, "no state")
	assert.Contains(t, out, "N/A")
}
