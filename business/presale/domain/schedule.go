// Package domain contains the pre-sale and redeem schedule.
package domain

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/hermes-yield/internal/apperror"
)

// Phase is the pre-sale window state at a block.
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseActive  Phase = "active"
	PhaseEnded   Phase = "ended"
)

// Schedule holds the block heights of the pre-sale window and of the swap
// that unlocks redeeming.
type Schedule struct {
	StartBlock uint64
	EndBlock   uint64
	SwapBlock  uint64
}

// Validate rejects an inverted window.
func (s Schedule) Validate() error {
	if s.StartBlock > s.EndBlock {
		return apperror.Validation(apperror.CodeInvalidInput, "presale start block after end block")
	}
	return nil
}

// Phase returns the window state at block.
func (s Schedule) Phase(block uint64) Phase {
	switch {
	case block < s.StartBlock:
		return PhasePending
	case block < s.EndBlock:
		return PhaseActive
	default:
		return PhaseEnded
	}
}

// RedeemLocked reports whether redeeming is still locked at block.
func (s Schedule) RedeemLocked(block uint64) bool {
	return s.SwapBlock > block
}

// Countdown converts the blocks left until target into wall time. Past
// targets yield zero.
func Countdown(target, current uint64, secondsPerBlock decimal.Decimal) time.Duration {
	if target <= current {
		return 0
	}
	blocks := decimal.NewFromBigInt(new(big.Int).SetUint64(target-current), 0)
	nanos := blocks.Mul(secondsPerBlock).Mul(decimal.NewFromInt(int64(time.Second)))
	// Saturates instead of wrapping for targets beyond ~292 years.
	if nanos.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(nanos.IntPart())
}

// Status is the schedule evaluated at one block.
type Status struct {
	Block        uint64
	Phase        Phase
	UntilStart   time.Duration
	UntilEnd     time.Duration
	UntilRedeem  time.Duration
	RedeemLocked bool
}

// StatusAt evaluates the schedule at block.
func (s Schedule) StatusAt(block uint64, secondsPerBlock decimal.Decimal) Status {
	return Status{
		Block:        block,
		Phase:        s.Phase(block),
		UntilStart:   Countdown(s.StartBlock, block, secondsPerBlock),
		UntilEnd:     Countdown(s.EndBlock, block, secondsPerBlock),
		UntilRedeem:  Countdown(s.SwapBlock, block, secondsPerBlock),
		RedeemLocked: s.RedeemLocked(block),
	}
}
