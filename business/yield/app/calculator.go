package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/yield/domain"
)

// TradingAprProvider supplies the trading-fee APR of a pair.
type TradingAprProvider interface {
	TradingApr(ctx context.Context, amm domain.AMM, pair common.Address) domain.TradingApr
}

// CalculatorConfig holds the chain timing and the AMM each vault kind trades on.
type CalculatorConfig struct {
	Chain            domain.ChainParams
	SingleVaultAMM   domain.AMM
	DualVaultAMM     domain.AMM
	CompoundsPerYear int
}

// DefaultCalculatorConfig returns the Polygon deployment settings.
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Chain:            domain.PolygonChainParams(),
		SingleVaultAMM:   domain.AMMQuickswap,
		DualVaultAMM:     domain.AMMDfyn,
		CompoundsPerYear: domain.BaseCompoundsPerYear,
	}
}

// VaultCalculator computes vault APR, APY and total APY.
type VaultCalculator struct {
	config  CalculatorConfig
	trading TradingAprProvider
}

// NewVaultCalculator creates a VaultCalculator.
func NewVaultCalculator(config CalculatorConfig, trading TradingAprProvider) *VaultCalculator {
	if config.CompoundsPerYear == 0 {
		config.CompoundsPerYear = domain.BaseCompoundsPerYear
	}
	return &VaultCalculator{
		config:  config,
		trading: trading,
	}
}

// VaultApy evaluates a single-reward vault.
func (c *VaultCalculator) VaultApy(ctx context.Context, p domain.VaultParams) domain.PoolYield {
	simple := domain.SimpleFarmApr(p, c.config.Chain)
	trading := c.trading.TradingApr(ctx, c.config.SingleVaultAMM, p.Pair)

	return domain.PoolYield{
		Name:   p.Name,
		Kind:   domain.VaultSingle,
		Pair:   p.Pair,
		AMM:    c.config.SingleVaultAMM,
		Result: domain.NewYieldResult(simple, p.Fees, trading, c.config.CompoundsPerYear),
	}
}

// VaultDualApy evaluates a dual-reward vault.
func (c *VaultCalculator) VaultDualApy(ctx context.Context, p domain.DualVaultParams) domain.PoolYield {
	simple := domain.DualFarmApr(p, c.config.Chain)
	trading := c.trading.TradingApr(ctx, c.config.DualVaultAMM, p.Pair)

	return domain.PoolYield{
		Name:   p.Name,
		Kind:   domain.VaultDual,
		Pair:   p.Pair,
		AMM:    c.config.DualVaultAMM,
		Result: domain.NewYieldResult(simple, p.Fees, trading, c.config.CompoundsPerYear),
	}
}
