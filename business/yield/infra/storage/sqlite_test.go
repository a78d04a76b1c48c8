package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/business/yield/infra/storage"
)

func openRecorder(t *testing.T) *storage.SQLiteRecorder {
	t.Helper()
	rec, err := storage.NewSQLiteRecorder(filepath.Join(t.TempDir(), "yields.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func sampleYields() []domain.PoolYield {
	return []domain.PoolYield{
		{
			Name: "IRIS-WMATIC",
			Kind: domain.VaultSingle,
			Pair: common.HexToAddress("0x86AD2A22d6C5D3B7E4dA8Fa8a3D5dC35A7e8A1f4"),
			AMM:  domain.AMMQuickswap,
			Result: domain.YieldResult{
				SimpleApr:  domain.NewRate(1.5),
				TradingApr: domain.NewTradingApr(0.1),
				VaultApr:   domain.NewRate(1.4325),
				VaultApy:   domain.NewRate(3.1),
				TotalApy:   domain.NewRate(3.4),
			},
		},
		{
			Name:   "KAVIAN-USDC",
			Kind:   domain.VaultDual,
			AMM:    domain.AMMDfyn,
			Result: domain.YieldResult{TradingApr: domain.UnavailableTradingApr(domain.ReasonEmpty)},
		},
	}
}

func TestSQLiteRecorder_RecordAndRead(t *testing.T) {
	rec := openRecorder(t)
	ctx := context.Background()
	runAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	runID, err := rec.Record(ctx, runAt, sampleYields())
	require.NoError(t, err)
	assert.Len(t, runID, 36)

	runs, err := rec.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.True(t, runAt.Equal(runs[0].RunAt))
	assert.Equal(t, 2, runs[0].Vaults)

	rows, err := rec.RunYields(ctx, runID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	iris := rows[0]
	assert.Equal(t, "IRIS-WMATIC", iris.Name)
	require.NotNil(t, iris.TotalApy)
	assert.InDelta(t, 3.4, *iris.TotalApy, 1e-12)
	assert.Equal(t, domain.ReasonNone, iris.TradingReason)

	kavian := rows[1]
	assert.Equal(t, domain.VaultDual, kavian.Kind)
	assert.Nil(t, kavian.SimpleApr)
	assert.Nil(t, kavian.VaultApy)
	assert.Equal(t, 0.0, kavian.TradingApr)
	assert.Equal(t, domain.ReasonEmpty, kavian.TradingReason)
}

func TestSQLiteRecorder_Prune(t *testing.T) {
	rec := openRecorder(t)
	ctx := context.Background()

	_, err := rec.Record(ctx, time.Now().Add(-48*time.Hour), sampleYields())
	require.NoError(t, err)
	recent, err := rec.Record(ctx, time.Now(), sampleYields())
	require.NoError(t, err)

	n, err := rec.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	runs, err := rec.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recent, runs[0].ID)
}
