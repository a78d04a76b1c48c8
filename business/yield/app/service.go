package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apm"
	"github.com/fd1az/hermes-yield/internal/logger"
)

const (
	meterName  = "yield"
	tracerName = "yield"
)

// yieldMetrics holds OTEL metric instruments.
type yieldMetrics struct {
	vaultApy    metric.Float64Gauge
	totalApy    metric.Float64Gauge
	tradingApr  metric.Float64Gauge
	evaluations metric.Int64Counter
}

func newYieldMetrics(meter metric.Meter) (*yieldMetrics, error) {
	var (
		m   yieldMetrics
		err error
	)

	m.vaultApy, err = meter.Float64Gauge("yield_vault_apy",
		metric.WithDescription("Vault APY after performance fee, as a fraction"))
	if err != nil {
		return nil, err
	}
	m.totalApy, err = meter.Float64Gauge("yield_total_apy",
		metric.WithDescription("Vault APY combined with trading fees, as a fraction"))
	if err != nil {
		return nil, err
	}
	m.tradingApr, err = meter.Float64Gauge("yield_trading_apr",
		metric.WithDescription("Trading-fee APR of the vault pair, as a fraction"))
	if err != nil {
		return nil, err
	}
	m.evaluations, err = meter.Int64Counter("yield_evaluations_total",
		metric.WithDescription("Vault evaluations"),
		metric.WithUnit("{vault}"))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// YieldService evaluates every vault of a snapshot.
type YieldService struct {
	calculator     *VaultCalculator
	recorder       Recorder
	maxConcurrency int
	logger         logger.LoggerInterface
	tracer         apm.Tracer
	metrics        *yieldMetrics
}

// NewYieldService creates a YieldService. recorder may be nil.
func NewYieldService(calculator *VaultCalculator, recorder Recorder, maxConcurrency int, log logger.LoggerInterface) (*YieldService, error) {
	m, err := newYieldMetrics(otel.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	return &YieldService{
		calculator:     calculator,
		recorder:       recorder,
		maxConcurrency: maxConcurrency,
		logger:         log,
		tracer:         apm.NewTracer(tracerName),
		metrics:        m,
	}, nil
}

// Evaluate computes the yield of every vault in snap. Results keep snapshot
// order: single vaults first, then dual vaults.
func (s *YieldService) Evaluate(ctx context.Context, snap *domain.Snapshot) ([]domain.PoolYield, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "yield.evaluate")
	defer span.End()
	span.SetAttributes(attribute.Int("vaults", snap.Len()))

	if err := snap.Validate(); err != nil {
		span.NoticeError(err)
		return nil, err
	}

	yields := make([]domain.PoolYield, snap.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, v := range snap.Vaults {
		g.Go(func() error {
			yields[i] = s.calculator.VaultApy(gctx, v)
			return nil
		})
	}
	offset := len(snap.Vaults)
	for i, v := range snap.DualVaults {
		g.Go(func() error {
			yields[offset+i] = s.calculator.VaultDualApy(gctx, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.NoticeError(err)
		return nil, err
	}

	for _, y := range yields {
		s.publish(ctx, y)
	}

	runAt := snap.TakenAt
	if runAt.IsZero() {
		runAt = time.Now().UTC()
	}
	if s.recorder != nil {
		runID, err := s.recorder.Record(ctx, runAt, yields)
		if err != nil {
			span.NoticeError(err)
			s.logger.Error(ctx, "failed to record yields", "error", err)
		} else {
			span.SetAttributes(attribute.String("run_id", runID))
			s.logger.Debug(ctx, "yields recorded", "run_id", runID, "vaults", len(yields))
		}
	}

	return yields, nil
}

func (s *YieldService) publish(ctx context.Context, y domain.PoolYield) {
	set := metric.WithAttributes(
		attribute.String("vault", y.Name),
		attribute.String("kind", string(y.Kind)),
		attribute.String("amm", y.AMM.String()),
	)

	s.metrics.evaluations.Add(ctx, 1, set)
	if y.Result.TradingApr.Available() {
		s.metrics.tradingApr.Record(ctx, y.Result.TradingApr.Value, set)
	}
	if v, ok := y.Result.VaultApy.Float64(); ok {
		s.metrics.vaultApy.Record(ctx, v, set)
	}
	if v, ok := y.Result.TotalApy.Float64(); ok {
		s.metrics.totalApy.Record(ctx, v, set)
	}
}
