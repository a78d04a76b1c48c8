package domain

import (
	"strings"

	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/shopspring/decimal"
)

// AMM identifies the exchange whose subgraph provides trading statistics.
type AMM string

const (
	AMMQuickswap AMM = "quickswap"
	AMMDfyn      AMM = "dfyn"
)

// ParseAMM parses an AMM name case-insensitively.
func ParseAMM(s string) (AMM, error) {
	switch AMM(strings.ToLower(strings.TrimSpace(s))) {
	case AMMQuickswap:
		return AMMQuickswap, nil
	case AMMDfyn:
		return AMMDfyn, nil
	default:
		return "", apperror.Validation(apperror.CodeUnknownAMM, s)
	}
}

// DefaultLPFee returns the liquidity-provider fee of the AMM.
func (a AMM) DefaultLPFee() decimal.Decimal {
	switch a {
	case AMMQuickswap:
		return decimal.RequireFromString("0.0025")
	case AMMDfyn:
		return decimal.RequireFromString("0.003")
	default:
		return decimal.Zero
	}
}

func (a AMM) String() string {
	return string(a)
}

// TradingPairSnapshot is the latest daily statistics of a trading pair.
type TradingPairSnapshot struct {
	DailyVolumeUSD decimal.Decimal
	ReserveUSD     decimal.Decimal
}

// Apr annualizes the fees earned by liquidity providers:
// dailyVolumeUSD * lpFee * 365 / reserveUSD.
func (s TradingPairSnapshot) Apr(lpFee decimal.Decimal) Rate {
	return ratio(s.DailyVolumeUSD.Mul(lpFee).Mul(decimal.NewFromInt(DaysPerYear)), s.ReserveUSD)
}

// UnavailableReason says why a trading APR could not be obtained.
type UnavailableReason string

const (
	ReasonNone    UnavailableReason = ""
	ReasonNetwork UnavailableReason = "network"
	ReasonParse   UnavailableReason = "parse"
	ReasonEmpty   UnavailableReason = "empty"
)

// TradingApr is a trading-fee APR, or 0 with the reason it is missing.
type TradingApr struct {
	Value  float64
	Reason UnavailableReason
}

// NewTradingApr wraps an obtained APR.
func NewTradingApr(v float64) TradingApr {
	return TradingApr{Value: v}
}

// UnavailableTradingApr returns a zero APR tagged with reason.
func UnavailableTradingApr(reason UnavailableReason) TradingApr {
	return TradingApr{Reason: reason}
}

// Available reports whether the APR came from real data.
func (t TradingApr) Available() bool {
	return t.Reason == ReasonNone
}
