package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/hermes-yield/internal/apperror"
)

const validDoc = `
taken_at: 2026-10-18T00:00:00Z
block: 52000000
vaults:
  - name: IRIS-WMATIC
    pair: "0x86AD2A22d6C5D3B7E4dA8Fa8a3D5dC35A7e8A1f4"
    multiplier: 10
    token_per_block: "1000000000000000000"
    total_alloc_points: "100"
    deposit_fee: "0"
    performance_fee: "0.045"
    reward_token:
      address: "0xdab35042e63e93cc8556c9bae482e5415b5ac4b1"
      symbol: IRIS
      decimals: 18
      price: "1"
    stake_price: "1"
    total_staked: "1000000"
dual_vaults:
  - name: IRIS-USDC
    pair: "0x1C0a0927105140216425c1d2A3A8F7aC2a1C9f4e"
    performance_fee: 0.045
    stake_price: 2
    total_staked: 50000000
    rewards:
      - token: {address: "0xdab35042e63e93cc8556c9bae482e5415b5ac4b1", symbol: IRIS, decimals: 18, price: 1}
        reward_rate: "1000000000000000000"
      - token: {address: "0x2791bca1f2de4661ed88a30c99a7a9449aa84174", symbol: USDC, decimals: 6, price: 1}
        reward_rate: "1000000"
staking_pools:
  - address: "0xFf11555aedf0cDCA44cA587AeAf7FF4b7F7CD32D"
    reward_token_price: "2.5"
    stake_token_price: "0.8"
    rewards_per_week: "7000000000000000000000"
    total_staked: "100000000000000000000000"
`

func TestParse_Valid(t *testing.T) {
	f, err := Parse(strings.NewReader(validDoc))
	require.NoError(t, err)

	assert.Equal(t, uint64(52000000), f.Block)
	assert.Equal(t, 2026, f.TakenAt.Year())
	require.Len(t, f.Vaults, 1)
	assert.Equal(t, "10", f.Vaults[0].Multiplier.String())
	assert.Equal(t, "0.045", f.Vaults[0].PerformanceFee.String())
	assert.Equal(t, uint8(18), f.Vaults[0].RewardToken.Decimals)
	require.Len(t, f.DualVaults, 1)
	assert.Equal(t, "1000000", f.DualVaults[0].Rewards[1].RewardRate.String())
	require.Len(t, f.StakingPools, 1)
	assert.Equal(t, "2.5", f.StakingPools[0].RewardTokenPrice.String())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Vaults, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, apperror.CodeInvalidSnapshot, apperror.GetCode(err))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{"zero alloc points", [2]string{`total_alloc_points: "100"`, `total_alloc_points: "0"`}},
		{"fee above one", [2]string{`deposit_fee: "0"`, `deposit_fee: "1.2"`}},
		{"negative stake", [2]string{`total_staked: "1000000"`, `total_staked: "-1"`}},
		{"bad pair", [2]string{`pair: "0x86AD2A22d6C5D3B7E4dA8Fa8a3D5dC35A7e8A1f4"`, `pair: "nope"`}},
		{"not a number", [2]string{`stake_price: "1"`, `stake_price: "one"`}},
		{"unknown field", [2]string{`block: 52000000`, "block: 52000000\nextra: true"}},
		{"duplicate name", [2]string{`name: IRIS-USDC`, `name: IRIS-WMATIC`}},
		{"negative weekly rewards", [2]string{`rewards_per_week: "7000000000000000000000"`, `rewards_per_week: "-7"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(validDoc, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, validDoc, doc)

			_, err := Parse(strings.NewReader(doc))
			require.Error(t, err)
			assert.Equal(t, apperror.CodeInvalidSnapshot, apperror.GetCode(err))
		})
	}
}

func TestParse_DualVaultNeedsTwoRewards(t *testing.T) {
	doc := `
dual_vaults:
  - name: ONE
    pair: "0x1C0a0927105140216425c1d2A3A8F7aC2a1C9f4e"
    rewards:
      - token: {address: "0xdab35042e63e93cc8556c9bae482e5415b5ac4b1", price: 1}
        reward_rate: 1
`
	_, err := Parse(strings.NewReader(doc))
	assert.Equal(t, apperror.CodeInvalidSnapshot, apperror.GetCode(err))
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Vaults)
}
