// Package main is the entry point for the Hermes yield scanner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fd1az/hermes-yield/business/blockchain"
	blockchainDI "github.com/fd1az/hermes-yield/business/blockchain/di"
	"github.com/fd1az/hermes-yield/business/presale"
	presaleDI "github.com/fd1az/hermes-yield/business/presale/di"
	presaleDomain "github.com/fd1az/hermes-yield/business/presale/domain"
	"github.com/fd1az/hermes-yield/business/staking"
	stakingDI "github.com/fd1az/hermes-yield/business/staking/di"
	stakingInfra "github.com/fd1az/hermes-yield/business/staking/infra"
	"github.com/fd1az/hermes-yield/business/yield"
	yieldDI "github.com/fd1az/hermes-yield/business/yield/di"
	"github.com/fd1az/hermes-yield/business/yield/infra/storage"
	"github.com/fd1az/hermes-yield/internal/apm"
	"github.com/fd1az/hermes-yield/internal/config"
	"github.com/fd1az/hermes-yield/internal/health"
	"github.com/fd1az/hermes-yield/internal/logger"
	"github.com/fd1az/hermes-yield/internal/metrics"
	"github.com/fd1az/hermes-yield/internal/monolith"
	"github.com/fd1az/hermes-yield/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type options struct {
	configPath   string
	snapshotPath string
	watch        time.Duration
	presale      bool
	history      int
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.snapshotPath, "snapshot", "", "Path to pool snapshot file (overrides yield.snapshot_path)")
	flag.DurationVar(&opts.watch, "watch", 0, "Re-scan at this interval until interrupted (0 = run once)")
	flag.BoolVar(&opts.presale, "presale", false, "Print the pre-sale status at the chain head")
	flag.IntVar(&opts.history, "history", 0, "Print the last N recorded runs and exit")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("yieldscan %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.snapshotPath != "" {
		cfg.Yield.SnapshotPath = opts.snapshotPath
	}

	// Tables go to stdout, logs to stderr
	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting Hermes yield scanner",
		"version", version,
		"environment", cfg.App.Environment,
	)

	stopTelemetry, err := setupTelemetry(ctx, cfg, log, opts.watch > 0)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	mono := monolith.New(cfg, log)
	defer func() {
		if err := mono.Close(); err != nil {
			log.Warn(ctx, "shutdown", "error", err)
		}
	}()

	// Define modules in dependency order
	modules := []monolith.Module{
		&blockchain.Module{}, // Must precede presale - provides the chain head
		&yield.Module{},
		&staking.Module{},
		&presale.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	if opts.history > 0 {
		return printHistory(ctx, mono, opts.history)
	}

	if opts.watch > 0 {
		return runWatch(ctx, cfg, mono, log, opts.watch)
	}

	if _, err := yieldDI.GetScanner(mono.Services()).RunOnce(ctx); err != nil {
		return fmt.Errorf("yield scan: %w", err)
	}

	if err := printStaking(ctx, mono); err != nil {
		log.Warn(ctx, "staking pools unavailable", "error", err)
	}

	if opts.presale {
		return printPresale(ctx, mono)
	}
	return nil
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *logger.Logger, serve bool) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}

	tp, err := apm.NewTraceProvider(log, apm.Provider(cfg.Telemetry.TraceProvider), apm.ExporterConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Headers:     cfg.Telemetry.OTLPHeaders,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	log.Info(ctx, "tracing initialized", "provider", cfg.Telemetry.TraceProvider)

	metricOpts := []metrics.OptionFn{
		metrics.WithServiceName(cfg.Telemetry.ServiceName),
		metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
	}
	if cfg.Telemetry.OTLPEndpoint != "" && apm.Provider(cfg.Telemetry.TraceProvider) == apm.OTLPGRPCProvider {
		metricOpts = append(metricOpts, metrics.WithProviderConfig(metrics.NewOtelCollectorConfig(
			cfg.Telemetry.OTLPEndpoint,
			apm.ParseHeaders(cfg.Telemetry.OTLPHeaders),
			strings.HasPrefix(cfg.Telemetry.OTLPEndpoint, "http://"),
		)))
	}
	mp, err := metrics.NewMetricProvider(metricOpts...)
	if err != nil {
		_ = tp.Stop()
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	var promServer *metrics.PrometheusServer
	if serve {
		promServer = metrics.NewPrometheusServer(metrics.WithPort(cfg.Telemetry.PrometheusPort))
		promServer.Start()
		log.Info(ctx, "prometheus metrics server started", "port", cfg.Telemetry.PrometheusPort)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if promServer != nil {
			_ = promServer.Stop(shutdownCtx)
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "metric provider shutdown", "error", err)
		}
		if err := tp.Stop(); err != nil {
			log.Warn(shutdownCtx, "trace provider shutdown", "error", err)
		}
	}, nil
}

func runWatch(ctx context.Context, cfg *config.Config, mono monolith.Monolith, log *logger.Logger, interval time.Duration) error {
	healthServer := health.NewServer(cfg.Telemetry.HealthPort, version, log)
	registerHealthChecks(healthServer, mono)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", cfg.Telemetry.HealthPort)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = healthServer.Stop(shutdownCtx)
	}()

	return yieldDI.GetScanner(mono.Services()).Watch(ctx, interval)
}

func registerHealthChecks(s *health.Server, mono monolith.Monolith) {
	cfg := mono.Config()

	s.RegisterCheck("snapshot", func(ctx context.Context) error {
		_, err := yieldDI.GetSnapshotSource(mono.Services()).Snapshot(ctx)
		return err
	})

	if p, ok := yieldDI.GetPairDayDataSource(mono.Services()).(interface{ Ping(context.Context) error }); ok {
		s.RegisterCheck("subgraph", p.Ping)
	}

	if p, ok := yieldDI.GetRecorder(mono.Services()).(interface{ Ping(context.Context) error }); ok {
		s.RegisterCheck("history", p.Ping)
	}

	if cfg.Ethereum.HTTPURL != "" {
		chain := blockchainDI.GetBlockchainService(mono.Services())
		s.RegisterCheck("rpc", func(ctx context.Context) error {
			_, err := chain.LatestBlockNumber(ctx)
			return err
		})
	}
}

func printStaking(ctx context.Context, mono monolith.Monolith) error {
	results, err := stakingDI.GetStakingService(mono.Services()).PoolAprs(ctx)
	if err != nil {
		return err
	}
	stakingInfra.RenderPoolAprs(os.Stdout, results)
	return nil
}

func printPresale(ctx context.Context, mono monolith.Monolith) error {
	svc := presaleDI.GetPresaleService(mono.Services())
	if svc == nil {
		return fmt.Errorf("presale schedule is not configured")
	}

	st, err := svc.Status(ctx)
	if err != nil {
		return fmt.Errorf("presale status: %w", err)
	}

	phase := string(st.Phase)
	switch st.Phase {
	case presaleDomain.PhaseActive:
		phase = ui.PositiveValue.Render(phase)
	case presaleDomain.PhasePending:
		phase = ui.WarningValue.Render(phase)
	default:
		phase = ui.MutedValue.Render(phase)
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("PRE-SALE @ BLOCK %d", st.Block)))
	fmt.Printf("  phase      %s\n", phase)
	if st.UntilStart > 0 {
		fmt.Printf("  starts in  %s\n", st.UntilStart.Round(time.Second))
	}
	if st.UntilEnd > 0 {
		fmt.Printf("  ends in    %s\n", st.UntilEnd.Round(time.Second))
	}
	if st.RedeemLocked {
		fmt.Printf("  redeem     %s (unlocks in %s)\n", ui.NegativeValue.Render("locked"), st.UntilRedeem.Round(time.Second))
	} else {
		fmt.Printf("  redeem     %s\n", ui.PositiveValue.Render("unlocked"))
	}
	return nil
}

func printHistory(ctx context.Context, mono monolith.Monolith, limit int) error {
	rec, ok := yieldDI.GetRecorder(mono.Services()).(*storage.SQLiteRecorder)
	if !ok {
		return fmt.Errorf("yield history is disabled (storage.sqlite_path is empty)")
	}

	runs, err := rec.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{r.ID, r.RunAt.UTC().Format(time.RFC3339), fmt.Sprint(r.Vaults)})
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("RECENT RUNS (%d)", len(runs))))
	ui.RenderTable(os.Stdout, []string{"Run", "At", "Vaults"}, rows)
	return nil
}
