package domain

import (
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/shopspring/decimal"
)

var secondsPerDay = decimal.NewFromInt(86400)

// ChainParams holds the block timing used to annualize emissions.
type ChainParams struct {
	SecondsPerBlock decimal.Decimal
	SecondsPerYear  decimal.Decimal
	// RewardRateScale converts a dual-reward contract's reward rate into a
	// per-block amount. 3 on the Polygon deployment.
	RewardRateScale decimal.Decimal
}

// PolygonChainParams returns the Polygon PoS reference parameters.
func PolygonChainParams() ChainParams {
	return ChainParams{
		SecondsPerBlock: decimal.NewFromInt(2),
		SecondsPerYear:  decimal.NewFromInt(31536000),
		RewardRateScale: decimal.NewFromInt(3),
	}
}

// BlocksPerDay returns 86400 / SecondsPerBlock.
func (c ChainParams) BlocksPerDay() decimal.Decimal {
	if c.SecondsPerBlock.IsZero() {
		return decimal.Zero
	}
	return secondsPerDay.Div(c.SecondsPerBlock)
}

// Validate requires positive timing values.
func (c ChainParams) Validate() error {
	if !c.SecondsPerBlock.IsPositive() || !c.SecondsPerYear.IsPositive() || !c.RewardRateScale.IsPositive() {
		return apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("chain params must be positive"))
	}
	return nil
}
