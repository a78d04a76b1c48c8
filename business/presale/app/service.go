// Package app contains the pre-sale status service.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/hermes-yield/business/presale/domain"
	"github.com/fd1az/hermes-yield/internal/logger"
)

// BlockNumberReader provides the current block height.
type BlockNumberReader interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
}

// PresaleService reports the pre-sale phase and countdowns at the chain head.
type PresaleService struct {
	schedule        domain.Schedule
	blocks          BlockNumberReader
	secondsPerBlock decimal.Decimal
	log             logger.LoggerInterface
}

// NewPresaleService creates a PresaleService.
func NewPresaleService(
	schedule domain.Schedule,
	blocks BlockNumberReader,
	secondsPerBlock decimal.Decimal,
	log logger.LoggerInterface,
) (*PresaleService, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return &PresaleService{
		schedule:        schedule,
		blocks:          blocks,
		secondsPerBlock: secondsPerBlock,
		log:             log,
	}, nil
}

// Schedule returns the configured schedule.
func (s *PresaleService) Schedule() domain.Schedule {
	return s.schedule
}

// Status evaluates the schedule at the latest block.
func (s *PresaleService) Status(ctx context.Context) (domain.Status, error) {
	block, err := s.blocks.LatestBlockNumber(ctx)
	if err != nil {
		return domain.Status{}, err
	}

	st := s.schedule.StatusAt(block, s.secondsPerBlock)
	s.log.Debug(ctx, "presale status",
		"block", block,
		"phase", string(st.Phase),
		"redeem_locked", st.RedeemLocked)
	return st, nil
}
