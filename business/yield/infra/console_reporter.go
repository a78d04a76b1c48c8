// Package infra contains infrastructure adapters for the yield context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/pkg/ui"
)

const percentPrecision = 2

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return NewConsoleReporterTo(os.Stdout)
}

// NewConsoleReporterTo creates a ConsoleReporter writing to out.
func NewConsoleReporterTo(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Start prints the banner.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, ui.TitleStyle.Render("Hermes Yield Scanner"))
	return nil
}

// ReportYields prints one table row per vault.
func (r *ConsoleReporter) ReportYields(_ context.Context, runAt time.Time, yields []domain.PoolYield) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, ui.HeaderStyle.Render(fmt.Sprintf("VAULTS @ %s (%d)", runAt.UTC().Format(time.RFC3339), len(yields))))

	rows := make([][]string, 0, len(yields))
	for _, y := range yields {
		res := y.Result
		rows = append(rows, []string{
			y.Name,
			string(y.Kind),
			y.AMM.String(),
			res.SimpleApr.Percent(percentPrecision),
			FormatTradingApr(res.TradingApr),
			res.VaultApr.Percent(percentPrecision),
			res.VaultApy.Percent(percentPrecision),
			res.TotalApy.Percent(percentPrecision),
		})
	}

	ui.RenderTable(r.out,
		[]string{"Vault", "Kind", "AMM", "Farm APR", "Trading APR", "Vault APR", "Vault APY", "Total APY"},
		rows)
}

// Stop prints the shutdown line.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, ui.MutedValue.Render("Hermes Yield Scanner stopped"))
	return nil
}

// FormatTradingApr renders a trading APR as a percentage, naming the reason
// when it fell back to 0.
func FormatTradingApr(t domain.TradingApr) string {
	pct := strconv.FormatFloat(t.Value*100, 'f', percentPrecision, 64) + "%"
	if !t.Available() {
		return pct + " (" + string(t.Reason) + ")"
	}
	return pct
}
