package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/shopspring/decimal"
)

// VaultKind distinguishes single and dual reward vaults.
type VaultKind string

const (
	VaultSingle VaultKind = "single"
	VaultDual   VaultKind = "dual"
)

// TokenQuote is a token with its USD price.
type TokenQuote struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
	Price    decimal.Decimal
}

// PoolEmissionParams are the MasterChef emission figures of a farm.
type PoolEmissionParams struct {
	Multiplier         decimal.Decimal // pool alloc points
	TokenPerBlock      decimal.Decimal // reward token smallest units
	TotalAllocPoints   decimal.Decimal
	DepositFeeFraction decimal.Decimal
}

// FeeParams holds the vault performance fee as a fraction.
type FeeParams struct {
	PerformanceFee decimal.Decimal
}

// ShareAfterFee returns 1 - PerformanceFee.
func (f FeeParams) ShareAfterFee() decimal.Decimal {
	return one.Sub(f.PerformanceFee)
}

// VaultParams describes a single-reward vault.
type VaultParams struct {
	Name              string
	Pair              common.Address
	Emission          PoolEmissionParams
	Fees              FeeParams
	RewardToken       TokenQuote
	StakePrice        decimal.Decimal
	TotalStakedInFarm decimal.Decimal
}

// Validate rejects negative amounts and fractions outside [0, 1].
func (p VaultParams) Validate() error {
	if err := validateFraction(p.Name, "deposit_fee", p.Emission.DepositFeeFraction); err != nil {
		return err
	}
	if err := validateFraction(p.Name, "performance_fee", p.Fees.PerformanceFee); err != nil {
		return err
	}
	return validateNonNegative(p.Name, map[string]decimal.Decimal{
		"multiplier":           p.Emission.Multiplier,
		"token_per_block":      p.Emission.TokenPerBlock,
		"total_alloc_points":   p.Emission.TotalAllocPoints,
		"reward_price":         p.RewardToken.Price,
		"stake_price":          p.StakePrice,
		"total_staked_in_farm": p.TotalStakedInFarm,
	})
}

// RewardStream is one reward token of a dual-reward vault.
type RewardStream struct {
	Token      TokenQuote
	RewardRate decimal.Decimal // contract reward rate, smallest units
}

// DualVaultParams describes a vault emitting two reward tokens.
type DualVaultParams struct {
	Name              string
	Pair              common.Address
	Streams           [2]RewardStream
	Fees              FeeParams
	StakePrice        decimal.Decimal
	TotalStakedInFarm decimal.Decimal
}

// Validate rejects negative amounts and fees outside [0, 1].
func (p DualVaultParams) Validate() error {
	if err := validateFraction(p.Name, "performance_fee", p.Fees.PerformanceFee); err != nil {
		return err
	}
	return validateNonNegative(p.Name, map[string]decimal.Decimal{
		"token0_reward_rate":   p.Streams[0].RewardRate,
		"token0_price":         p.Streams[0].Token.Price,
		"token1_reward_rate":   p.Streams[1].RewardRate,
		"token1_price":         p.Streams[1].Token.Price,
		"stake_price":          p.StakePrice,
		"total_staked_in_farm": p.TotalStakedInFarm,
	})
}

// SimpleFarmApr annualizes the single-reward emissions of a vault and divides
// by the staked value. Unavailable when the staked value or alloc points are zero.
func SimpleFarmApr(p VaultParams, chain ChainParams) Rate {
	e := p.Emission
	if e.TotalAllocPoints.IsZero() || chain.SecondsPerBlock.IsZero() {
		return Unavailable()
	}

	poolBlockRewards := e.TokenPerBlock.
		Mul(e.Multiplier).
		Div(e.TotalAllocPoints).
		Mul(one.Sub(e.DepositFeeFraction))

	yearlyRewards := poolBlockRewards.Div(chain.SecondsPerBlock).Mul(chain.SecondsPerYear)
	yearlyRewardsUSD := yearlyRewards.Mul(p.RewardToken.Price).Shift(-int32(p.RewardToken.Decimals))

	return ratio(yearlyRewardsUSD, p.TotalStakedInFarm.Mul(p.StakePrice))
}

// DualFarmApr sums the yearly USD value of both reward streams and divides by
// the staked value.
func DualFarmApr(p DualVaultParams, chain ChainParams) Rate {
	blocksPerYear := chain.BlocksPerDay().Mul(decimal.NewFromInt(DaysPerYear))

	total := decimal.Zero
	for _, s := range p.Streams {
		yearly := s.RewardRate.Mul(chain.RewardRateScale).Mul(blocksPerYear)
		total = total.Add(yearly.Mul(s.Token.Price).Shift(-int32(s.Token.Decimals)))
	}

	return ratio(total, p.TotalStakedInFarm.Mul(p.StakePrice))
}

// YieldResult holds the figures reported for a vault. When SimpleApr is
// unavailable so are VaultApr, VaultApy and TotalApy; TradingApr is still set.
type YieldResult struct {
	SimpleApr  Rate
	TradingApr TradingApr
	VaultApr   Rate
	VaultApy   Rate
	TotalApy   Rate
}

// NewYieldResult derives vault APR, APY and total APY from the simple farm APR.
func NewYieldResult(simpleApr Rate, fees FeeParams, trading TradingApr, compoundsPerYear int) YieldResult {
	res := YieldResult{SimpleApr: simpleApr, TradingApr: trading}

	apr, ok := simpleApr.Float64()
	if !ok {
		return res
	}

	share, _ := fees.ShareAfterFee().Float64()
	res.VaultApr = NewRate(apr * share)
	res.VaultApy = NewRate(Compound(apr, compoundsPerYear, 1, share))
	res.TotalApy = NewRate(FarmWithTradingFeesApy(apr, trading.Value, compoundsPerYear, 1, share))
	return res
}

// PoolYield is a named vault with its result.
type PoolYield struct {
	Name   string
	Kind   VaultKind
	Pair   common.Address
	AMM    AMM
	Result YieldResult
}

func validateFraction(vault, field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(one) {
		return apperror.Validation(apperror.CodeInvalidPoolParams, vault+": "+field+" must be within [0, 1]")
	}
	return nil
}

func validateNonNegative(vault string, fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return apperror.Validation(apperror.CodeInvalidPoolParams, vault+": "+name+" must not be negative")
		}
	}
	return nil
}
