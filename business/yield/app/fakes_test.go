package app

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/hermes-yield/business/yield/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type stubPairSource struct {
	snap *domain.TradingPairSnapshot
	err  error
}

func (s stubPairSource) LatestPairDayData(context.Context, domain.AMM, common.Address) (*domain.TradingPairSnapshot, error) {
	return s.snap, s.err
}

type stubTrading struct {
	mu    sync.Mutex
	apr   domain.TradingApr
	calls map[domain.AMM]int
}

func (s *stubTrading) TradingApr(_ context.Context, amm domain.AMM, _ common.Address) domain.TradingApr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[domain.AMM]int)
	}
	s.calls[amm]++
	return s.apr
}

type memRecorder struct {
	runs [][]domain.PoolYield
	err  error
}

func (r *memRecorder) Record(_ context.Context, _ time.Time, yields []domain.PoolYield) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.runs = append(r.runs, yields)
	return "run-1", nil
}

type staticSnapshots struct {
	snap *domain.Snapshot
	err  error
}

func (s staticSnapshots) Snapshot(context.Context) (*domain.Snapshot, error) {
	return s.snap, s.err
}

type captureReporter struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	reports  [][]domain.PoolYield
	onReport func()
}

func (r *captureReporter) Start(context.Context) error {
	r.started = true
	return nil
}

func (r *captureReporter) ReportYields(_ context.Context, _ time.Time, yields []domain.PoolYield) {
	r.mu.Lock()
	r.reports = append(r.reports, yields)
	r.mu.Unlock()
	if r.onReport != nil {
		r.onReport()
	}
}

func (r *captureReporter) Stop() error {
	r.stopped = true
	return nil
}

func singleVault(name string) domain.VaultParams {
	return domain.VaultParams{
		Name: name,
		Pair: common.HexToAddress("0x86AD2A22d6C5D3B7E4dA8Fa8a3D5dC35A7e8A1f4"),
		Emission: domain.PoolEmissionParams{
			Multiplier:         d("10"),
			TokenPerBlock:      d("1000000000000000000"),
			TotalAllocPoints:   d("100"),
			DepositFeeFraction: d("0"),
		},
		Fees:              domain.FeeParams{PerformanceFee: d("0.045")},
		RewardToken:       domain.TokenQuote{Symbol: "IRIS", Decimals: 18, Price: d("1")},
		StakePrice:        d("1"),
		TotalStakedInFarm: d("1000000"),
	}
}

func dualVault(name string) domain.DualVaultParams {
	return domain.DualVaultParams{
		Name: name,
		Pair: common.HexToAddress("0x1C0a0927105140216425c1d2A3A8F7aC2a1C9f4e"),
		Streams: [2]domain.RewardStream{
			{Token: domain.TokenQuote{Symbol: "IRIS", Decimals: 18, Price: d("1")}, RewardRate: d("1000000000000000000")},
			{Token: domain.TokenQuote{Symbol: "USDC", Decimals: 6, Price: d("1")}, RewardRate: d("1000000")},
		},
		Fees:              domain.FeeParams{PerformanceFee: d("0.045")},
		StakePrice:        d("2"),
		TotalStakedInFarm: d("50000000"),
	}
}
