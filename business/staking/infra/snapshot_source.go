// Package infra contains infrastructure adapters for the staking context.
package infra

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/staking/app"
	"github.com/fd1az/hermes-yield/business/staking/domain"
	"github.com/fd1az/hermes-yield/internal/snapshot"
)

// FileStateSource reads staking pool state from the snapshot file.
type FileStateSource struct {
	path string
}

// NewFileStateSource creates a FileStateSource.
func NewFileStateSource(path string) *FileStateSource {
	return &FileStateSource{path: path}
}

// PoolStates loads the snapshot and returns its staking pools.
func (s *FileStateSource) PoolStates(ctx context.Context) (*app.PoolStates, error) {
	f, err := snapshot.Load(s.path)
	if err != nil {
		return nil, err
	}
	return ToPoolStates(f), nil
}

// ToPoolStates converts the staking section of a validated snapshot.
func ToPoolStates(f *snapshot.File) *app.PoolStates {
	out := &app.PoolStates{
		Block:  f.Block,
		States: make([]domain.PoolState, 0, len(f.StakingPools)),
	}
	for _, p := range f.StakingPools {
		out.States = append(out.States, domain.PoolState{
			Address:          common.HexToAddress(p.Address),
			RewardTokenPrice: p.RewardTokenPrice.Decimal,
			StakeTokenPrice:  p.StakeTokenPrice.Decimal,
			RewardsPerWeek:   p.RewardsPerWeek.Decimal,
			TotalStaked:      p.TotalStaked.Decimal,
		})
	}
	return out
}
