package app

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/fd1az/hermes-yield/internal/logger"
)

func TestTradingFeeService_TradingApr(t *testing.T) {
	src := stubPairSource{snap: &domain.TradingPairSnapshot{
		DailyVolumeUSD: d("1000"),
		ReserveUSD:     d("100000"),
	}}
	svc := NewTradingFeeService(src, nil, logger.NewNop())

	// 1000 * 0.0025 * 365 / 100000
	got := svc.TradingApr(context.Background(), domain.AMMQuickswap, common.Address{})
	assert.True(t, got.Available())
	assert.InDelta(t, 0.009125, got.Value, 1e-15)

	// 1000 * 0.003 * 365 / 100000
	got = svc.TradingApr(context.Background(), domain.AMMDfyn, common.Address{})
	assert.InDelta(t, 0.01095, got.Value, 1e-15)
}

func TestTradingFeeService_ConfiguredFeeWins(t *testing.T) {
	src := stubPairSource{snap: &domain.TradingPairSnapshot{
		DailyVolumeUSD: d("1000"),
		ReserveUSD:     d("365000"),
	}}
	svc := NewTradingFeeService(src, map[domain.AMM]decimal.Decimal{domain.AMMQuickswap: d("0.01")}, logger.NewNop())

	assert.Equal(t, "0.01", svc.LPFee(domain.AMMQuickswap).String())
	assert.Equal(t, "0.003", svc.LPFee(domain.AMMDfyn).String())

	got := svc.TradingApr(context.Background(), domain.AMMQuickswap, common.Address{})
	assert.InDelta(t, 0.01, got.Value, 1e-15)
}

func TestTradingFeeService_DegradesToZero(t *testing.T) {
	tests := []struct {
		name   string
		src    stubPairSource
		reason domain.UnavailableReason
	}{
		{
			name:   "network",
			src:    stubPairSource{err: apperror.New(apperror.CodeSubgraphRequestFailed)},
			reason: domain.ReasonNetwork,
		},
		{
			name:   "plain error",
			src:    stubPairSource{err: errors.New("dial tcp: refused")},
			reason: domain.ReasonNetwork,
		},
		{
			name:   "parse",
			src:    stubPairSource{err: apperror.New(apperror.CodeSubgraphInvalidResponse)},
			reason: domain.ReasonParse,
		},
		{
			name:   "empty",
			src:    stubPairSource{err: apperror.New(apperror.CodeSubgraphEmptyResult)},
			reason: domain.ReasonEmpty,
		},
		{
			name: "zero reserve",
			src: stubPairSource{snap: &domain.TradingPairSnapshot{
				DailyVolumeUSD: d("1000"),
				ReserveUSD:     decimal.Zero,
			}},
			reason: domain.ReasonParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTradingFeeService(tt.src, nil, logger.NewNop())

			got := svc.TradingApr(context.Background(), domain.AMMQuickswap, common.Address{})
			assert.False(t, got.Available())
			assert.Equal(t, tt.reason, got.Reason)
			assert.Equal(t, 0.0, got.Value)
		})
	}
}
