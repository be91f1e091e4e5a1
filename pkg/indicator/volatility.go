package indicator

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/raykavin/strategycore/pkg/core"
)

// AtrAboveMedian reports whether ATR[idx] is strictly greater than the
// median of the trailing window ATR[idx-window .. idx-1] (inclusive of
// the left edge, exclusive of idx itself). It fails open — returns true
// — when there isn't enough history, or the window contains any
// undefined (NaN) entry.
func AtrAboveMedian(atr []float64, idx, window int) bool {
	if idx < window {
		return true
	}

	trailing := core.Series[float64](atr[:idx]).LastValues(window)
	sorted := make([]float64, len(trailing))
	copy(sorted, trailing)

	for _, v := range sorted {
		if !IsDefined(v) {
			return true
		}
	}

	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.LinInterp, sorted, nil)

	return atr[idx] > median
}
