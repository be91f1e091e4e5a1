// Package indicator computes the numerically stable Wilder-ATR and
// Supertrend pipeline, plus the volatility-median filter, that the
// engine evaluates on every closed candle.
package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// undefined is the NaN sentinel used for every ATR/Supertrend entry that
// has no defined value yet. Arithmetic against it must propagate it;
// every consumer in this package checks math.IsNaN before using a value.
var undefined = math.NaN()

// TrueRange computes the true-range series for a candle set of equal
// length high/low/close slices.
func TrueRange(high, low, close []float64) []float64 {
	n := len(close)
	tr := make([]float64, n)
	if n == 0 {
		return tr
	}

	tr[0] = high[0] - low[0]
	for i := 1; i < n; i++ {
		tr[i] = math.Max(high[i]-low[i], math.Max(
			math.Abs(high[i]-close[i-1]),
			math.Abs(low[i]-close[i-1]),
		))
	}
	return tr
}

// WilderATR computes the Wilder-smoothed Average True Range for the
// given period. Entries before index period-1 are NaN (undefined);
// ATR[period-1] seeds as the arithmetic mean of the first `period` true
// ranges, and every subsequent entry is the Wilder recurrence
// (ATR[i-1]*(period-1) + TR[i]) / period.
func WilderATR(high, low, close []float64, period int) []float64 {
	n := len(close)
	atr := make([]float64, n)
	for i := range atr {
		atr[i] = undefined
	}
	if n < period || period < 1 {
		return atr
	}

	tr := TrueRange(high, low, close)
	atr[period-1] = stat.Mean(tr[:period], nil)

	for i := period; i < n; i++ {
		atr[i] = (atr[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return atr
}

// IsDefined reports whether an ATR/Supertrend sentinel slot holds a real
// value rather than the NaN undefined sentinel.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}
