// Package di contains dependency injection tokens for the yield context.
package di

import (
	"github.com/fd1az/hermes-yield/business/yield/app"
	"github.com/fd1az/hermes-yield/internal/di"
)

// Public service tokens - exposed to other modules
var (
	YieldService = di.NewToken[*app.YieldService]("yield.YieldService")
	Scanner      = di.NewToken[*app.Scanner]("yield.Scanner")
	TradingFees  = di.NewToken[*app.TradingFeeService]("yield.TradingFeeService")
)

// Private dependency tokens - internal to yield module
var (
	PairDayDataSource = di.NewToken[app.PairDayDataSource]("yield:pairDayDataSource")
	Calculator        = di.NewToken[*app.VaultCalculator]("yield:calculator")
	Recorder          = di.NewToken[app.Recorder]("yield:recorder")
	SnapshotSource    = di.NewToken[app.SnapshotSource]("yield:snapshotSource")
	Reporter          = di.NewToken[app.Reporter]("yield:reporter")
)

// Helper functions for type-safe access
func GetYieldService(c di.ServiceRegistry) *app.YieldService {
	return di.GetToken(c, YieldService)
}

func GetScanner(c di.ServiceRegistry) *app.Scanner {
	return di.GetToken(c, Scanner)
}

func GetTradingFees(c di.ServiceRegistry) *app.TradingFeeService {
	return di.GetToken(c, TradingFees)
}

func GetPairDayDataSource(c di.ServiceRegistry) app.PairDayDataSource {
	return di.GetToken(c, PairDayDataSource)
}

func GetCalculator(c di.ServiceRegistry) *app.VaultCalculator {
	return di.GetToken(c, Calculator)
}

func GetRecorder(c di.ServiceRegistry) app.Recorder {
	return di.GetToken(c, Recorder)
}

func GetSnapshotSource(c di.ServiceRegistry) app.SnapshotSource {
	return di.GetToken(c, SnapshotSource)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}
