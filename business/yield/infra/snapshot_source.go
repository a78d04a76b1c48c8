package infra

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/snapshot"
)

// FileSnapshotSource reads vault state from a snapshot file on every call,
// so edits are picked up by the next scan.
type FileSnapshotSource struct {
	path string
}

// NewFileSnapshotSource creates a FileSnapshotSource.
func NewFileSnapshotSource(path string) *FileSnapshotSource {
	return &FileSnapshotSource{path: path}
}

// Snapshot loads and converts the file.
func (s *FileSnapshotSource) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	f, err := snapshot.Load(s.path)
	if err != nil {
		return nil, err
	}
	return ToDomainSnapshot(f), nil
}

// ToDomainSnapshot converts a validated snapshot file into vault parameters.
func ToDomainSnapshot(f *snapshot.File) *domain.Snapshot {
	snap := &domain.Snapshot{
		TakenAt:    f.TakenAt,
		Block:      f.Block,
		Vaults:     make([]domain.VaultParams, 0, len(f.Vaults)),
		DualVaults: make([]domain.DualVaultParams, 0, len(f.DualVaults)),
	}

	for _, v := range f.Vaults {
		snap.Vaults = append(snap.Vaults, domain.VaultParams{
			Name: v.Name,
			Pair: common.HexToAddress(v.Pair),
			Emission: domain.PoolEmissionParams{
				Multiplier:         v.Multiplier.Decimal,
				TokenPerBlock:      v.TokenPerBlock.Decimal,
				TotalAllocPoints:   v.TotalAllocPoints.Decimal,
				DepositFeeFraction: v.DepositFee.Decimal,
			},
			Fees:              domain.FeeParams{PerformanceFee: v.PerformanceFee.Decimal},
			RewardToken:       toQuote(v.RewardToken),
			StakePrice:        v.StakePrice.Decimal,
			TotalStakedInFarm: v.TotalStaked.Decimal,
		})
	}

	for _, v := range f.DualVaults {
		var streams [2]domain.RewardStream
		for i := range streams {
			streams[i] = domain.RewardStream{
				Token:      toQuote(v.Rewards[i].Token),
				RewardRate: v.Rewards[i].RewardRate.Decimal,
			}
		}
		snap.DualVaults = append(snap.DualVaults, domain.DualVaultParams{
			Name:              v.Name,
			Pair:              common.HexToAddress(v.Pair),
			Streams:           streams,
			Fees:              domain.FeeParams{PerformanceFee: v.PerformanceFee.Decimal},
			StakePrice:        v.StakePrice.Decimal,
			TotalStakedInFarm: v.TotalStaked.Decimal,
		})
	}

	return snap
}

func toQuote(t snapshot.Token) domain.TokenQuote {
	return domain.TokenQuote{
		Address:  common.HexToAddress(t.Address),
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Price:    t.Price.Decimal,
	}
}
