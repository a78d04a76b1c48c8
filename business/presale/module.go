// Package presale implements the pre-sale bounded context: phase and
// countdowns of the token pre-sale and redeem unlock.
package presale

import (
	"context"

	blockchainDI "github.com/fd1az/hermes-yield/business/blockchain/di"
	"github.com/fd1az/hermes-yield/business/presale/app"
	presaleDI "github.com/fd1az/hermes-yield/business/presale/di"
	"github.com/fd1az/hermes-yield/business/presale/domain"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/di"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/monolith"
)

// Module implements the presale bounded context. It depends on the
// blockchain module for the chain head.
type Module struct{}

// RegisterServices registers the presale service when a window is configured.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, presaleDI.PresaleService, func(sr di.ServiceRegistry) *app.PresaleService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		if !cfg.Presale.Enabled() {
			return nil
		}

		svc, err := app.NewPresaleService(
			domain.Schedule{
				StartBlock: cfg.Presale.StartBlock,
				EndBlock:   cfg.Presale.EndBlock,
				SwapBlock:  cfg.Presale.SwapBlock,
			},
			blockchainDI.GetBlockchainService(sr),
			cfg.Chain.SecondsPerBlockDecimal(),
			log,
		)
		if err != nil {
			panic("invalid presale schedule: " + err.Error())
		}
		return svc
	})

	return nil
}

// Startup logs the configured window.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := presaleDI.GetPresaleService(mono.Services())
	if svc == nil {
		mono.Logger().Info(ctx, "presale module started without schedule")
		return nil
	}

	s := svc.Schedule()
	mono.Logger().Info(ctx, "presale module started",
		"start_block", s.StartBlock,
		"end_block", s.EndBlock,
		"swap_block", s.SwapBlock)
	return nil
}
