package app

import (
	"context"

	"github.com/fd1az/hermes-yield/business/staking/domain"
)

// PoolStateSource provides the current on-chain state of staking pools.
type PoolStateSource interface {
	PoolStates(ctx context.Context) (*PoolStates, error)
}

// PoolStates is the pool state read at one block.
type PoolStates struct {
	Block  uint64
	States []domain.PoolState
}
