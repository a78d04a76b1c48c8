package app

import (
	"context"
	"time"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/logger"
)

// Scanner loads snapshots, evaluates them and hands the results to a Reporter.
type Scanner struct {
	snapshots SnapshotSource
	yields    *YieldService
	reporter  Reporter
	logger    logger.LoggerInterface
}

// NewScanner creates a Scanner.
func NewScanner(snapshots SnapshotSource, yields *YieldService, reporter Reporter, log logger.LoggerInterface) *Scanner {
	return &Scanner{
		snapshots: snapshots,
		yields:    yields,
		reporter:  reporter,
		logger:    log,
	}
}

// RunOnce evaluates the current snapshot and reports it.
func (s *Scanner) RunOnce(ctx context.Context) ([]domain.PoolYield, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	yields, err := s.yields.Evaluate(ctx, snap)
	if err != nil {
		return nil, err
	}

	runAt := snap.TakenAt
	if runAt.IsZero() {
		runAt = time.Now().UTC()
	}
	s.reporter.ReportYields(ctx, runAt, yields)
	return yields, nil
}

// Watch runs RunOnce immediately and then every interval until ctx is done.
// Failed runs are logged and retried on the next tick.
func (s *Scanner) Watch(ctx context.Context, interval time.Duration) error {
	s.logger.Info(ctx, "starting yield scanner", "interval", interval.String())

	if err := s.reporter.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.reporter.Stop(); err != nil {
			s.logger.Warn(ctx, "reporter stop", "error", err)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error(ctx, "yield scan failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "yield scanner stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}
