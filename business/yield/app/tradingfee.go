package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/fd1az/hermes-yield/internal/logger"
)

// TradingFeeService turns pair day data into a trading-fee APR. It never
// fails: missing data yields 0 with the reason attached.
type TradingFeeService struct {
	source PairDayDataSource
	lpFees map[domain.AMM]decimal.Decimal
	logger logger.LoggerInterface
}

// NewTradingFeeService creates a TradingFeeService. AMMs missing from lpFees
// use their default LP fee.
func NewTradingFeeService(source PairDayDataSource, lpFees map[domain.AMM]decimal.Decimal, log logger.LoggerInterface) *TradingFeeService {
	fees := make(map[domain.AMM]decimal.Decimal, len(lpFees))
	for amm, fee := range lpFees {
		fees[amm] = fee
	}
	return &TradingFeeService{
		source: source,
		lpFees: fees,
		logger: log,
	}
}

// LPFee returns the liquidity-provider fee used for amm.
func (s *TradingFeeService) LPFee(amm domain.AMM) decimal.Decimal {
	if fee, ok := s.lpFees[amm]; ok {
		return fee
	}
	return amm.DefaultLPFee()
}

// TradingApr returns dailyVolumeUSD * lpFee * 365 / reserveUSD for pair.
func (s *TradingFeeService) TradingApr(ctx context.Context, amm domain.AMM, pair common.Address) domain.TradingApr {
	snap, err := s.source.LatestPairDayData(ctx, amm, pair)
	if err != nil {
		reason := classify(err)
		s.logger.Warn(ctx, "trading apr unavailable",
			"amm", amm.String(),
			"pair", pair.Hex(),
			"reason", string(reason),
			"error", err)
		return domain.UnavailableTradingApr(reason)
	}

	v, ok := snap.Apr(s.LPFee(amm)).Float64()
	if !ok {
		s.logger.Warn(ctx, "trading apr unavailable",
			"amm", amm.String(),
			"pair", pair.Hex(),
			"reason", string(domain.ReasonParse),
			"reserve_usd", snap.ReserveUSD.String())
		return domain.UnavailableTradingApr(domain.ReasonParse)
	}
	return domain.NewTradingApr(v)
}

func classify(err error) domain.UnavailableReason {
	switch apperror.GetCode(err) {
	case apperror.CodeSubgraphEmptyResult:
		return domain.ReasonEmpty
	case apperror.CodeSubgraphInvalidResponse:
		return domain.ReasonParse
	default:
		return domain.ReasonNetwork
	}
}
