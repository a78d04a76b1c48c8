package infra

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fd1az/hermes-yield/business/yield/domain"
)

func TestConsoleReporter_ReportYields(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)

	r.ReportYields(context.Background(), time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), []domain.PoolYield{
		{
			Name: "IRIS-WMATIC",
			Kind: domain.VaultSingle,
			AMM:  domain.AMMQuickswap,
			Result: domain.YieldResult{
				SimpleApr:  domain.NewRate(1.5),
				TradingApr: domain.NewTradingApr(0.009125),
				VaultApr:   domain.NewRate(1.4325),
				VaultApy:   domain.NewRate(3.25),
				TotalApy:   domain.NewRate(3.3),
			},
		},
		{
			Name:   "KAVIAN-USDC",
			Kind:   domain.VaultDual,
			AMM:    domain.AMMDfyn,
			Result: domain.YieldResult{TradingApr: domain.UnavailableTradingApr(domain.ReasonEmpty)},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "2026-10-18T00:00:00Z")
	assert.Contains(t, out, "150.00%")
	assert.Contains(t, out, "325.00%")
	assert.Contains(t, out, "0.91%")
	assert.Contains(t, out, "0.00% (empty)")
	assert.GreaterOrEqual(t, strings.Count(out, "N/A"), 4)
}

func TestFormatTradingApr(t *testing.T) {
	assert.Equal(t, "10.00%", FormatTradingApr(domain.NewTradingApr(0.1)))
	assert.Equal(t, "0.00% (network)", FormatTradingApr(domain.UnavailableTradingApr(domain.ReasonNetwork)))
}
