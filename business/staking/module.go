// Package staking implements the staking bounded context: the per-chain
// pool registry and single-sided pool APRs.
package staking

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/staking/app"
	stakingDI "github.com/fd1az/hermes-yield/business/staking/di"
	"github.com/fd1az/hermes-yield/business/staking/domain"
	"github.com/fd1az/hermes-yield/business/staking/infra"
	"github.com/fd1az/hermes-yield/internal/asset"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/di"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/monolith"
)

// Module implements the staking bounded context.
type Module struct{}

// RegisterServices registers staking services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, stakingDI.PoolRegistry, func(sr di.ServiceRegistry) *domain.Registry {
		cfg := sr.Get("config").(*config.Config)
		return NewRegistry(cfg)
	})

	di.RegisterToken(c, stakingDI.PoolStateSource, func(sr di.ServiceRegistry) app.PoolStateSource {
		cfg := sr.Get("config").(*config.Config)
		return infra.NewFileStateSource(cfg.Yield.SnapshotPath)
	})

	di.RegisterToken(c, stakingDI.StakingService, func(sr di.ServiceRegistry) *app.StakingService {
		log := sr.Get("logger").(logger.LoggerInterface)
		assets := sr.Get("assetRegistry").(*asset.Registry)
		return app.NewStakingService(
			stakingDI.GetPoolRegistry(sr),
			stakingDI.GetPoolStateSource(sr),
			assets,
			log,
		)
	})

	return nil
}

// Startup logs the selected pool list.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	registry := stakingDI.GetPoolRegistry(mono.Services())
	mono.Logger().Info(ctx, "staking module started",
		"chain_id", registry.ChainID(),
		"pools", len(registry.Pools()),
		"active", len(registry.ActivePools()))
	return nil
}

// NewRegistry selects the configured pool list, or the built-in lists when
// none is configured.
func NewRegistry(cfg *config.Config) *domain.Registry {
	if len(cfg.Staking.Pools) == 0 {
		return domain.DefaultRegistry(cfg.Chain.ChainID)
	}

	pools := make([]domain.StakePool, 0, len(cfg.Staking.Pools))
	for _, p := range cfg.Staking.Pools {
		pools = append(pools, domain.StakePool{
			Address:        common.HexToAddress(p.Address),
			PoolSite:       p.PoolSite,
			RewardEndBlock: p.RewardEndBlock,
			Disabled:       p.Disabled,
			Active:         p.Active,
			Special:        p.Special,
			StakeToken:     tokenInfo(p.StakeToken),
			RewardToken:    tokenInfo(p.RewardToken),
		})
	}
	return domain.NewRegistry(cfg.Chain.ChainID, map[uint64][]domain.StakePool{
		cfg.Chain.ChainID: pools,
	})
}

func tokenInfo(t config.TokenRefConfig) domain.TokenInfo {
	return domain.TokenInfo{
		Address:  common.HexToAddress(t.Address),
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
	}
}
