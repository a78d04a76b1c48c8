// Package blockchain implements the blockchain bounded context: chain head
// reads over JSON-RPC.
package blockchain

import (
	"context"

	"github.com/fd1az/hermes-yield/business/blockchain/app"
	blockchainDI "github.com/fd1az/hermes-yield/business/blockchain/di"
	"github.com/fd1az/hermes-yield/business/blockchain/infra/ethereum"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/di"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/monolith"
)

// Module implements the blockchain bounded context.
type Module struct{}

// RegisterServices registers all blockchain services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register HeadReader (private - nil when no RPC endpoint is configured)
	di.RegisterToken(c, blockchainDI.HeadReader, func(sr di.ServiceRegistry) app.HeadReader {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		if cfg.Ethereum.HTTPURL == "" {
			return nil
		}

		readerCfg := ethereum.DefaultHeadReaderConfig(cfg.Ethereum.HTTPURL)
		if cfg.Ethereum.RequestTimeout > 0 {
			readerCfg.RequestTimeout = cfg.Ethereum.RequestTimeout
		}
		reader, err := ethereum.NewHeadReader(readerCfg, log)
		if err != nil {
			panic("failed to create head reader: " + err.Error())
		}
		return reader
	})

	// Register BlockchainService (public - exposed to other modules)
	di.RegisterToken(c, blockchainDI.BlockchainService, func(sr di.ServiceRegistry) *app.BlockchainService {
		return app.NewBlockchainService(blockchainDI.GetHeadReader(sr))
	})

	return nil
}

// Startup connects the head reader when configured.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	reader, ok := blockchainDI.GetHeadReader(mono.Services()).(*ethereum.HeadReader)
	if !ok {
		log.Info(ctx, "blockchain module started without rpc endpoint")
		return nil
	}

	mono.OnClose(reader)
	if err := reader.Connect(ctx); err != nil {
		// Don't fail - LatestBlock dials again
		log.Error(ctx, "failed to connect rpc", "error", err)
	}

	log.Info(ctx, "blockchain module started")
	return nil
}
