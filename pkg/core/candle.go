package core

import "math"

// Candle represents one closed bar of OHLCV data for a fixed timeframe.
// The core never operates on a still-forming candle; callers are
// responsible for only ever appending closed bars.
type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Tuple is the positional (o, h, l, c, v) form accepted at the edge of
// the system, for callers that carry candles as plain float64 tuples
// instead of records.
type Tuple [5]float64

// Valid reports whether the candle satisfies the OHLC invariant
// low <= min(open, close) <= max(open, close) <= high, with every field
// non-negative and finite.
func (c Candle) Valid() bool {
	for _, v := range [...]float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}

	lo := math.Min(c.Open, c.Close)
	hi := math.Max(c.Open, c.Close)
	return c.Low <= lo && hi <= c.High
}

// CandlesFromTuples converts positional tuples into Candle records,
// pushing the record/tuple normalization to the edge of the system as
// recommended for a typed, single-shape core.
func CandlesFromTuples(tuples []Tuple) []Candle {
	out := make([]Candle, len(tuples))
	for i, t := range tuples {
		out[i] = Candle{Open: t[0], High: t[1], Low: t[2], Close: t[3], Volume: t[4]}
	}
	return out
}

// Arrays splits a chronologically ordered candle series into parallel
// open/high/low/close/volume slices, the single normalized shape the
// indicator pipeline operates on.
func Arrays(candles []Candle) (open, high, low, close, volume []float64) {
	n := len(candles)
	open = make([]float64, n)
	high = make([]float64, n)
	low = make([]float64, n)
	close = make([]float64, n)
	volume = make([]float64, n)

	for i, c := range candles {
		open[i] = c.Open
		high[i] = c.High
		low[i] = c.Low
		close[i] = c.Close
		volume[i] = c.Volume
	}
	return
}
