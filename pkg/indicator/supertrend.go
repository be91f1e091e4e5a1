package indicator

import "math"

// Supertrend computes the path-dependent Supertrend level and regime
// direction for a candle series, given a precomputed ATR series and band
// factor. Direction is +1 (bullish) or -1 (bearish); index 0 and any run
// of indices before ATR first becomes defined carry direction 0
// (undefined — never read by callers, since DetectFlip only compares
// indices where both sides of the pair are already-processed bars).
//
// The band-tightening and direction rules are sequential and cannot be
// vectorized: this is a single forward pass carrying (upperPrev,
// lowerPrev, stPrev, dirPrev).
func Supertrend(high, low, close, atr []float64, factor float64) (st []float64, dir []int) {
	n := len(close)
	st = make([]float64, n)
	dir = make([]int, n)
	if n == 0 {
		return
	}

	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		if !IsDefined(atr[i]) {
			upper[i] = undefined
			lower[i] = undefined
			continue
		}
		mid := (high[i] + low[i]) / 2
		upper[i] = mid + factor*atr[i]
		lower[i] = mid - factor*atr[i]
	}

	st[0] = undefined

	for i := 1; i < n; i++ {
		if !IsDefined(atr[i]) || atr[i] <= 0 {
			// ATR undefined or non-positive: propagate the prior
			// st/direction rather than compute a new regime.
			if IsDefined(st[i-1]) {
				st[i] = st[i-1]
			} else {
				st[i] = close[i]
			}
			dir[i] = dir[i-1]
			continue
		}

		// Band tightening, applied only against a defined prior band.
		if IsDefined(upper[i-1]) && close[i-1] <= upper[i-1] {
			upper[i] = math.Min(upper[i], upper[i-1])
		}
		if IsDefined(lower[i-1]) && close[i-1] >= lower[i-1] {
			lower[i] = math.Max(lower[i], lower[i-1])
		}

		switch {
		case dir[i-1] == 0:
			// First bar with a defined ATR: seed bullish.
			dir[i] = 1
		case IsDefined(st[i-1]) && st[i-1] == upper[i-1]:
			// Previously bearish (st tracked the upper band).
			if close[i] > upper[i] {
				dir[i] = 1
			} else {
				dir[i] = -1
			}
		default:
			// Previously bullish (st tracked the lower band).
			if close[i] < lower[i] {
				dir[i] = -1
			} else {
				dir[i] = 1
			}
		}

		if dir[i] > 0 {
			st[i] = lower[i]
		} else {
			st[i] = upper[i]
		}
	}

	return
}
