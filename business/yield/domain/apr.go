package domain

import (
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/shopspring/decimal"
)

var (
	one         = decimal.NewFromInt(1)
	hundred     = decimal.NewFromInt(100)
	daysPerWeek = decimal.NewFromInt(7)
	weeksPerYr  = decimal.NewFromInt(52)
)

// PoolAprInput holds the inputs of a single-reward staking pool APR.
type PoolAprInput struct {
	RewardTokenPrice   decimal.Decimal
	PoolRewardsPerWeek decimal.Decimal // reward tokens, human units
	PoolTokenPrice     decimal.Decimal
	TotalStaked        decimal.Decimal // stake tokens, human units
}

// Validate rejects negative inputs.
func (in PoolAprInput) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"reward_token_price", in.RewardTokenPrice},
		{"pool_rewards_per_week", in.PoolRewardsPerWeek},
		{"pool_token_price", in.PoolTokenPrice},
		{"total_staked", in.TotalStaked},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return apperror.Validation(apperror.CodeInvalidPoolParams, f.name+" must not be negative")
		}
	}
	return nil
}

// PoolApr holds weekly, daily and yearly APR as percentages (7 means 7%).
type PoolApr struct {
	Weekly Rate
	Daily  Rate
	Yearly Rate
}

// CalculatePoolApr computes the staking pool APR. A zero staked value leaves
// all three figures unavailable.
func CalculatePoolApr(in PoolAprInput) PoolApr {
	stakedValue := in.TotalStaked.Mul(in.PoolTokenPrice)
	if stakedValue.IsZero() {
		return PoolApr{}
	}

	weekly := in.PoolRewardsPerWeek.Mul(in.RewardTokenPrice).Div(stakedValue).Mul(hundred)

	return PoolApr{
		Weekly: RateFromDecimal(weekly),
		Daily:  RateFromDecimal(weekly.Div(daysPerWeek)),
		Yearly: RateFromDecimal(weekly.Mul(weeksPerYr)),
	}
}
