// Package app contains application services and port definitions for the yield context.
package app

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/hermes-yield/business/yield/domain"
)

// PairDayDataSource provides the latest daily statistics of an AMM pair.
type PairDayDataSource interface {
	// LatestPairDayData returns the most recent day of volume and reserve.
	LatestPairDayData(ctx context.Context, amm domain.AMM, pair common.Address) (*domain.TradingPairSnapshot, error)
}

// SnapshotSource loads the vault state to evaluate.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Recorder persists evaluated yields.
type Recorder interface {
	// Record stores one evaluation run and returns its id.
	Record(ctx context.Context, runAt time.Time, yields []domain.PoolYield) (string, error)
}

// Reporter displays evaluation runs.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// ReportYields outputs one run of vault yields.
	ReportYields(ctx context.Context, runAt time.Time, yields []domain.PoolYield)

	// Stop flushes and shuts down the reporter.
	Stop() error
}
