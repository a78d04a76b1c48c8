package domain

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Rate is a yield fraction that may be unavailable, e.g. when the staked
// value is zero. The zero value is unavailable.
type Rate struct {
	value float64
	ok    bool
}

// NewRate wraps v. Non-finite values become unavailable.
func NewRate(v float64) Rate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable()
	}
	return Rate{value: v, ok: true}
}

// RateFromDecimal converts d to a Rate.
func RateFromDecimal(d decimal.Decimal) Rate {
	f, _ := d.Float64()
	return NewRate(f)
}

// Unavailable returns a Rate with no value.
func Unavailable() Rate {
	return Rate{}
}

// Float64 returns the value and whether it is available.
func (r Rate) Float64() (float64, bool) {
	return r.value, r.ok
}

// Available reports whether r holds a value.
func (r Rate) Available() bool {
	return r.ok
}

// Or returns the value, or def when unavailable.
func (r Rate) Or(def float64) float64 {
	if !r.ok {
		return def
	}
	return r.value
}

// Percent formats r as a percentage with the given precision, or "N/A".
func (r Rate) Percent(prec int) string {
	if !r.ok {
		return "N/A"
	}
	return strconv.FormatFloat(r.value*100, 'f', prec, 64) + "%"
}

func (r Rate) String() string {
	if !r.ok {
		return "N/A"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// ratio divides num by den, unavailable on a zero denominator.
func ratio(num, den decimal.Decimal) Rate {
	if den.IsZero() {
		return Unavailable()
	}
	return RateFromDecimal(num.Div(den))
}
