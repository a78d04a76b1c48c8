// Package di contains dependency injection tokens for the blockchain context.
package di

import (
	"github.com/fd1az/hermes-yield/business/blockchain/app"
	"github.com/fd1az/hermes-yield/internal/di"
)

// Public service tokens - exposed to other modules
var (
	BlockchainService = di.NewToken[*app.BlockchainService]("blockchain.BlockchainService")
)

// Private dependency tokens - internal to blockchain module
var (
	HeadReader = di.NewToken[app.HeadReader]("blockchain:headReader")
)

// Helper functions for type-safe access
func GetBlockchainService(c di.ServiceRegistry) *app.BlockchainService {
	return di.GetToken(c, BlockchainService)
}

func GetHeadReader(c di.ServiceRegistry) app.HeadReader {
	return di.GetToken(c, HeadReader)
}
