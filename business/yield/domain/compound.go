// Package domain contains the yield math: compounding, simple APR and vault
// APR/APY composition. Everything here is pure.
package domain

import (
	"fmt"
	"math"
)

// BaseCompoundsPerYear is the assumed auto-compound frequency of the vaults.
const BaseCompoundsPerYear = 4890

// DaysPerYear is the compounding frequency used for daily compounding.
const DaysPerYear = 365

// Compound returns the compounded return of a simple periodic rate r after t
// periods compounded n times per period, keeping share c of each compound:
//
//	(1 + r*c/n)^(n*t) - 1
//
// n must be positive.
func Compound(r float64, n int, t, c float64) float64 {
	if n <= 0 {
		panic(fmt.Sprintf("domain: compound frequency must be positive, got %d", n))
	}
	return math.Pow(1+r*c/float64(n), float64(n)*t) - 1
}

// CompoundDaily compounds r once a day for a year at full share.
func CompoundDaily(r float64) float64 {
	return Compound(r, DaysPerYear, 1, 1)
}

// FarmWithTradingFeesApy combines farm and trading APRs into one compounded
// return. The farm side compounds net of share; trading fees keep 100%.
func FarmWithTradingFeesApy(farmApr, tradingApr float64, n int, t, share float64) float64 {
	farmApy := Compound(farmApr, n, t, share)
	tradingApy := Compound(tradingApr, n, t, 1)
	return (1+farmApy)*(1+tradingApy) - 1
}
