package app

import (
	"context"

	"github.com/fd1az/hermes-yield/business/blockchain/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
)

// BlockchainService coordinates chain head reads.
type BlockchainService struct {
	head HeadReader
}

// NewBlockchainService creates a new BlockchainService. A nil head reader
// makes every read fail with a configuration error.
func NewBlockchainService(head HeadReader) *BlockchainService {
	return &BlockchainService{head: head}
}

// Enabled reports whether an RPC endpoint is configured.
func (s *BlockchainService) Enabled() bool {
	return s.head != nil
}

// LatestBlock retrieves the most recent block.
func (s *BlockchainService) LatestBlock(ctx context.Context) (*domain.Block, error) {
	if s.head == nil {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("ethereum.http_url is not set"))
	}
	return s.head.LatestBlock(ctx)
}

// LatestBlockNumber retrieves the most recent block number.
func (s *BlockchainService) LatestBlockNumber(ctx context.Context) (uint64, error) {
	block, err := s.LatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	return block.Number, nil
}
