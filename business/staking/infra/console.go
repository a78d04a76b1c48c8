package infra

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fd1az/hermes-yield/business/staking/domain"
	yieldDomain "github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/pkg/ui"
)

// RenderPoolAprs writes a staking pool table to w.
func RenderPoolAprs(w io.Writer, results []domain.PoolAprResult) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, ui.HeaderStyle.Render(fmt.Sprintf("STAKING POOLS (%d)", len(results))))

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "inactive"
		if r.Pool.Active {
			status = "active"
		}
		if r.Missing {
			status += ", no state"
		}
		rows = append(rows, []string{
			r.Pool.Address.Hex(),
			r.Pool.StakeToken.Symbol,
			r.Pool.RewardToken.Symbol,
			status,
			percent(r.Apr.Daily),
			percent(r.Apr.Weekly),
			percent(r.Apr.Yearly),
		})
	}

	ui.RenderTable(w,
		[]string{"Pool", "Stake", "Reward", "Status", "Daily APR", "Weekly APR", "Yearly APR"},
		rows)
}

// percent renders a pool APR, which is already a percentage.
func percent(r yieldDomain.Rate) string {
	v, ok := r.Float64()
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
