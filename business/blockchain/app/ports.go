// Package app contains application services and port definitions for the blockchain context.
package app

import (
	"context"

	"github.com/fd1az/hermes-yield/business/blockchain/domain"
)

// HeadReader reads the current chain head.
type HeadReader interface {
	// LatestBlock retrieves the most recent block.
	LatestBlock(ctx context.Context) (*domain.Block, error)
}
