package domain

import (
	"math"
	"testing"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name        string
		rate        Rate
		wantOK      bool
		wantPercent string
	}{
		{"finite", NewRate(0.1236), true, "12.36%"},
		{"zero", NewRate(0), true, "0.00%"},
		{"nan", NewRate(math.NaN()), false, "N/A"},
		{"inf", NewRate(math.Inf(1)), false, "N/A"},
		{"zero_value", Rate{}, false, "N/A"},
		{"decimal", RateFromDecimal(d("0.5")), true, "50.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rate.Available() != tt.wantOK {
				t.Errorf("Available() = %v, want %v", tt.rate.Available(), tt.wantOK)
			}
			if got := tt.rate.Percent(2); got != tt.wantPercent {
				t.Errorf("Percent(2) = %q, want %q", got, tt.wantPercent)
			}
		})
	}
}

func TestRate_Or(t *testing.T) {
	if got := Unavailable().Or(-1); got != -1 {
		t.Errorf("Or on unavailable = %v", got)
	}
	if got := NewRate(0.3).Or(-1); got != 0.3 {
		t.Errorf("Or on available = %v", got)
	}
}
