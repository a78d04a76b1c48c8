// Package domain contains the staking pool registry and pool APR types.
package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	yieldDomain "github.com/fd1az/hermes-yield/business/yield/domain"
)

// TokenInfo identifies a token of a staking pool.
type TokenInfo struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
}

// StakePool is a single-sided staking pool: stake one token, earn another.
type StakePool struct {
	Address        common.Address
	PoolSite       string
	RewardEndBlock uint64 // 0 when open-ended
	Disabled       bool
	Active         bool
	Special        bool
	StakeToken     TokenInfo
	RewardToken    TokenInfo
}

// Ended reports whether rewards stopped before block.
func (p StakePool) Ended(block uint64) bool {
	return p.RewardEndBlock > 0 && block >= p.RewardEndBlock
}

// PoolState is the on-chain state of a pool. Token amounts are base units.
type PoolState struct {
	Address          common.Address
	RewardTokenPrice decimal.Decimal
	StakeTokenPrice  decimal.Decimal
	RewardsPerWeek   decimal.Decimal
	TotalStaked      decimal.Decimal
}

// PoolAprResult is a pool with its computed APR. Missing is set when the
// snapshot had no state for the pool; all APR figures are then unavailable.
type PoolAprResult struct {
	Pool    StakePool
	Apr     yieldDomain.PoolApr
	Missing bool
}
