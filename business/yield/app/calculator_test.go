package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/hermes-yield/business/yield/domain"
)

func TestVaultCalculator_VaultApy(t *testing.T) {
	trading := &stubTrading{apr: domain.NewTradingApr(0.1)}
	calc := NewVaultCalculator(DefaultCalculatorConfig(), trading)

	p := singleVault("IRIS-WMATIC")
	got := calc.VaultApy(context.Background(), p)

	simple, ok := domain.SimpleFarmApr(p, domain.PolygonChainParams()).Float64()
	require.True(t, ok)
	share := 0.955

	assert.Equal(t, domain.VaultSingle, got.Kind)
	assert.Equal(t, domain.AMMQuickswap, got.AMM)
	assert.Equal(t, 1, trading.calls[domain.AMMQuickswap])

	vaultApr, _ := got.Result.VaultApr.Float64()
	vaultApy, _ := got.Result.VaultApy.Float64()
	totalApy, _ := got.Result.TotalApy.Float64()
	assert.InDelta(t, simple*share, vaultApr, 1e-12)
	assert.InDelta(t, domain.Compound(simple, domain.BaseCompoundsPerYear, 1, share), vaultApy, 1e-9)
	assert.InDelta(t, domain.FarmWithTradingFeesApy(simple, 0.1, domain.BaseCompoundsPerYear, 1, share), totalApy, 1e-9)
	assert.Greater(t, totalApy, vaultApy)
}

func TestVaultCalculator_VaultDualApy(t *testing.T) {
	trading := &stubTrading{apr: domain.NewTradingApr(0.05)}
	calc := NewVaultCalculator(DefaultCalculatorConfig(), trading)

	got := calc.VaultDualApy(context.Background(), dualVault("IRIS-USDC"))

	assert.Equal(t, domain.VaultDual, got.Kind)
	assert.Equal(t, domain.AMMDfyn, got.AMM)
	assert.Equal(t, 1, trading.calls[domain.AMMDfyn])

	simple, ok := got.Result.SimpleApr.Float64()
	require.True(t, ok)
	assert.InDelta(t, 0.94608, simple, 1e-12)
	assert.Equal(t, 0.05, got.Result.TradingApr.Value)
}

func TestVaultCalculator_ZeroStakeKeepsTradingApr(t *testing.T) {
	trading := &stubTrading{apr: domain.NewTradingApr(0.2)}
	calc := NewVaultCalculator(DefaultCalculatorConfig(), trading)

	p := singleVault("empty")
	p.TotalStakedInFarm = d("0")
	got := calc.VaultApy(context.Background(), p)

	assert.False(t, got.Result.SimpleApr.Available())
	assert.False(t, got.Result.VaultApr.Available())
	assert.False(t, got.Result.VaultApy.Available())
	assert.False(t, got.Result.TotalApy.Available())
	assert.Equal(t, 0.2, got.Result.TradingApr.Value)
}

func TestVaultCalculator_TradingFailureStillComposes(t *testing.T) {
	trading := &stubTrading{apr: domain.UnavailableTradingApr(domain.ReasonNetwork)}
	calc := NewVaultCalculator(DefaultCalculatorConfig(), trading)

	got := calc.VaultApy(context.Background(), singleVault("IRIS-WMATIC"))

	vaultApy, ok := got.Result.VaultApy.Float64()
	require.True(t, ok)
	totalApy, ok := got.Result.TotalApy.Float64()
	require.True(t, ok)
	assert.InDelta(t, vaultApy, totalApy, 1e-12)
	assert.Equal(t, domain.ReasonNetwork, got.Result.TradingApr.Reason)
}
