package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradingPairSnapshot_Apr(t *testing.T) {
	snap := TradingPairSnapshot{DailyVolumeUSD: d("1000000"), ReserveUSD: d("10000000")}

	got, ok := snap.Apr(AMMQuickswap.DefaultLPFee()).Float64()
	require.True(t, ok)
	assert.InDelta(t, 0.09125, got, 1e-15)

	got, ok = snap.Apr(AMMDfyn.DefaultLPFee()).Float64()
	require.True(t, ok)
	assert.InDelta(t, 0.1095, got, 1e-15)
}

func TestTradingPairSnapshot_ZeroReserve(t *testing.T) {
	snap := TradingPairSnapshot{DailyVolumeUSD: d("1000"), ReserveUSD: d("0")}
	assert.False(t, snap.Apr(d("0.003")).Available())
}

func TestParseAMM(t *testing.T) {
	tests := []struct {
		in      string
		want    AMM
		wantErr bool
	}{
		{in: "quickswap", want: AMMQuickswap},
		{in: " DFYN ", want: AMMDfyn},
		{in: "sushiswap", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAMM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTradingApr(t *testing.T) {
	assert.True(t, NewTradingApr(0.05).Available())

	missing := UnavailableTradingApr(ReasonEmpty)
	assert.False(t, missing.Available())
	assert.Equal(t, 0.0, missing.Value)
}
