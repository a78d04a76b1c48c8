package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		n    int
		tm   float64
		c    float64
		want float64
	}{
		{name: "zero_rate", r: 0, n: BaseCompoundsPerYear, tm: 1, c: 1, want: 0},
		{name: "single_compound_is_simple", r: 0.5, n: 1, tm: 1, c: 1, want: 0.5},
		{name: "single_compound_with_share", r: 0.5, n: 1, tm: 1, c: 0.9, want: 0.45},
		{name: "daily_ten_percent", r: 0.1, n: 365, tm: 1, c: 1, want: math.Pow(1+0.1/365, 365) - 1},
		{name: "two_years", r: 0.2, n: 12, tm: 2, c: 1, want: math.Pow(1+0.2/12, 24) - 1},
		{name: "zero_share", r: 0.8, n: BaseCompoundsPerYear, tm: 1, c: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compound(tt.r, tt.n, tt.tm, tt.c)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCompound_NonDecreasingInShare(t *testing.T) {
	for _, r := range []float64{0, 0.05, 0.5, 3} {
		prev := Compound(r, BaseCompoundsPerYear, 1, 0)
		for c := 0.1; c <= 1.0001; c += 0.1 {
			got := Compound(r, BaseCompoundsPerYear, 1, c)
			if got < prev {
				t.Fatalf("r=%v: Compound decreased from %v to %v at c=%v", r, prev, got, c)
			}
			prev = got
		}
	}
}

func TestCompound_ContinuousLimit(t *testing.T) {
	for _, r := range []float64{0.1, 0.5, 1.2} {
		got := Compound(r, 1_000_000, 1, 1)
		assert.InDelta(t, math.Exp(r)-1, got, 1e-5, "r=%v", r)
	}
}

func TestCompound_PanicsOnNonPositiveFrequency(t *testing.T) {
	for _, n := range []int{0, -1} {
		assert.Panics(t, func() { Compound(0.1, n, 1, 1) }, "n=%d", n)
	}
}

func TestCompoundDaily(t *testing.T) {
	assert.InDelta(t, Compound(0.365, 365, 1, 1), CompoundDaily(0.365), 0)
	assert.InDelta(t, math.Pow(1.001, 365)-1, CompoundDaily(0.365), 1e-12)
}

func TestFarmWithTradingFeesApy(t *testing.T) {
	const farm, trading, share = 0.8, 0.09125, 0.955

	got := FarmWithTradingFeesApy(farm, trading, BaseCompoundsPerYear, 1, share)
	want := (1+Compound(farm, BaseCompoundsPerYear, 1, share))*(1+Compound(trading, BaseCompoundsPerYear, 1, 1)) - 1
	assert.InDelta(t, want, got, 1e-12)

	// No trading fees: total equals the farm APY alone.
	assert.InDelta(t,
		Compound(farm, BaseCompoundsPerYear, 1, share),
		FarmWithTradingFeesApy(farm, 0, BaseCompoundsPerYear, 1, share),
		1e-12)

	// Trading fees always add yield.
	assert.Greater(t, got, Compound(farm, BaseCompoundsPerYear, 1, share))
}
