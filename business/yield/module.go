// Package yield implements the yield bounded context: vault APR/APY and
// trading-fee APR evaluation.
package yield

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/hermes-yield/business/yield/app"
	yieldDI "github.com/fd1az/hermes-yield/business/yield/di"
	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/business/yield/infra"
	"github.com/fd1az/hermes-yield/business/yield/infra/storage"
	"github.com/fd1az/hermes-yield/business/yield/infra/subgraph"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/di"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/monolith"
)

// Module implements the yield bounded context.
type Module struct{}

// RegisterServices registers all yield services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register PairDayDataSource (private - subgraph client behind a TTL cache)
	di.RegisterToken(c, yieldDI.PairDayDataSource, func(sr di.ServiceRegistry) app.PairDayDataSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		endpoints := make(map[domain.AMM]string, len(cfg.Subgraph.Endpoints))
		for name, url := range cfg.Subgraph.Endpoints {
			amm, err := domain.ParseAMM(name)
			if err != nil {
				log.Warn(context.Background(), "ignoring subgraph endpoint for unknown amm", "amm", name)
				continue
			}
			endpoints[amm] = url
		}

		client, err := subgraph.NewClient(subgraph.Config{
			Endpoints:         endpoints,
			RequestTimeout:    cfg.Subgraph.RequestTimeout,
			RequestsPerMinute: cfg.Subgraph.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create subgraph client: " + err.Error())
		}

		if cfg.Subgraph.CacheTTL <= 0 {
			return client
		}
		cached, err := subgraph.NewCachedClient(client, cfg.Subgraph.CacheTTL, cfg.Subgraph.CacheMaxEntries, log)
		if err != nil {
			panic("failed to create subgraph cache: " + err.Error())
		}
		return cached
	})

	// Register TradingFeeService (public)
	di.RegisterToken(c, yieldDI.TradingFees, func(sr di.ServiceRegistry) *app.TradingFeeService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewTradingFeeService(yieldDI.GetPairDayDataSource(sr), LPFees(cfg), log)
	})

	// Register VaultCalculator (private)
	di.RegisterToken(c, yieldDI.Calculator, func(sr di.ServiceRegistry) *app.VaultCalculator {
		cfg := sr.Get("config").(*config.Config)

		calcCfg, err := CalculatorConfig(cfg)
		if err != nil {
			panic("invalid yield configuration: " + err.Error())
		}
		return app.NewVaultCalculator(calcCfg, yieldDI.GetTradingFees(sr))
	})

	// Register Recorder (private - nil when history is disabled)
	di.RegisterToken(c, yieldDI.Recorder, func(sr di.ServiceRegistry) app.Recorder {
		cfg := sr.Get("config").(*config.Config)
		if cfg.Storage.SQLitePath == "" {
			return nil
		}

		rec, err := storage.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			panic("failed to open yield history: " + err.Error())
		}
		return rec
	})

	// Register YieldService (public)
	di.RegisterToken(c, yieldDI.YieldService, func(sr di.ServiceRegistry) *app.YieldService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		svc, err := app.NewYieldService(yieldDI.GetCalculator(sr), yieldDI.GetRecorder(sr), cfg.Yield.MaxConcurrency, log)
		if err != nil {
			panic("failed to create yield service: " + err.Error())
		}
		return svc
	})

	di.RegisterToken(c, yieldDI.SnapshotSource, func(sr di.ServiceRegistry) app.SnapshotSource {
		cfg := sr.Get("config").(*config.Config)
		return infra.NewFileSnapshotSource(cfg.Yield.SnapshotPath)
	})

	di.RegisterToken(c, yieldDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		return infra.NewConsoleReporter()
	})

	// Register Scanner (public)
	di.RegisterToken(c, yieldDI.Scanner, func(sr di.ServiceRegistry) *app.Scanner {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewScanner(
			yieldDI.GetSnapshotSource(sr),
			yieldDI.GetYieldService(sr),
			yieldDI.GetReporter(sr),
			log,
		)
	})

	return nil
}

// Startup resolves the yield services, registers closers and prunes history.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	cfg := mono.Config()

	if cached, ok := yieldDI.GetPairDayDataSource(mono.Services()).(*subgraph.CachedClient); ok {
		mono.OnClose(closerFunc(func() error {
			cached.Close()
			return nil
		}))
	}

	if rec, ok := yieldDI.GetRecorder(mono.Services()).(*storage.SQLiteRecorder); ok {
		mono.OnClose(rec)
		if cfg.Storage.Retention > 0 {
			n, err := rec.Prune(ctx, cfg.Storage.Retention)
			if err != nil {
				log.Warn(ctx, "yield history prune failed", "error", err)
			} else if n > 0 {
				log.Info(ctx, "pruned yield history", "runs", n)
			}
		}
	}

	log.Info(ctx, "yield module started",
		"single_vault_amm", cfg.Yield.SingleVaultAMM,
		"dual_vault_amm", cfg.Yield.DualVaultAMM)
	return nil
}

// LPFees maps the configured LP fee fractions onto known AMMs. Entries for
// unsupported AMMs are skipped.
func LPFees(cfg *config.Config) map[domain.AMM]decimal.Decimal {
	fees := make(map[domain.AMM]decimal.Decimal, len(cfg.Subgraph.LPFees))
	for name, f := range cfg.Subgraph.LPFees {
		amm, err := domain.ParseAMM(name)
		if err != nil {
			continue
		}
		fees[amm] = decimal.NewFromFloat(f)
	}
	return fees
}

// CalculatorConfig builds the calculator settings from configuration.
func CalculatorConfig(cfg *config.Config) (app.CalculatorConfig, error) {
	single, err := domain.ParseAMM(cfg.Yield.SingleVaultAMM)
	if err != nil {
		return app.CalculatorConfig{}, err
	}
	dual, err := domain.ParseAMM(cfg.Yield.DualVaultAMM)
	if err != nil {
		return app.CalculatorConfig{}, err
	}

	chain := domain.ChainParams{
		SecondsPerBlock: cfg.Chain.SecondsPerBlockDecimal(),
		SecondsPerYear:  decimal.NewFromInt(cfg.Chain.SecondsPerYear),
		RewardRateScale: cfg.Chain.RewardRateScaleDecimal(),
	}
	if err := chain.Validate(); err != nil {
		return app.CalculatorConfig{}, err
	}

	return app.CalculatorConfig{
		Chain:            chain,
		SingleVaultAMM:   single,
		DualVaultAMM:     dual,
		CompoundsPerYear: domain.BaseCompoundsPerYear,
	}, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
