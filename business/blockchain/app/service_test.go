package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/hermes-yield/business/blockchain/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
)

type fixedHead struct{ n uint64 }

func (f fixedHead) LatestBlock(context.Context) (*domain.Block, error) {
	return &domain.Block{Number: f.n}, nil
}

func TestBlockchainService_LatestBlockNumber(t *testing.T) {
	svc := NewBlockchainService(fixedHead{n: 42})
	assert.True(t, svc.Enabled())

	n, err := svc.LatestBlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
}

func TestBlockchainService_NoReader(t *testing.T) {
	svc := NewBlockchainService(nil)
	assert.False(t, svc.Enabled())

	_, err := svc.LatestBlockNumber(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConfigurationError, apperror.GetCode(err))
}
