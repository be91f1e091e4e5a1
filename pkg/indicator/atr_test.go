package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrueRange(t *testing.T) {
	high := []float64{10, 12, 11}
	low := []float64{8, 9, 8}
	close := []float64{9, 11, 9.5}

	tr := TrueRange(high, low, close)

	assert.Equal(t, []float64{2, 3, 3}, tr)
}

func TestTrueRangeEmpty(t *testing.T) {
	assert.Equal(t, []float64{}, TrueRange(nil, nil, nil))
}

func TestWilderATR(t *testing.T) {
	high := []float64{10, 12, 11}
	low := []float64{8, 9, 8}
	close := []float64{9, 11, 9.5}

	atr := WilderATR(high, low, close, 2)

	assert.True(t, math.IsNaN(atr[0]))
	assert.InDelta(t, 2.5, atr[1], 1e-9)  // seed: mean(tr[0],tr[1]) = mean(2,3)
	assert.InDelta(t, 2.75, atr[2], 1e-9) // (2.5*1 + 3) / 2
}

func TestWilderATRInsufficientData(t *testing.T) {
	high := []float64{10, 12}
	low := []float64{8, 9}
	close := []float64{9, 11}

	atr := WilderATR(high, low, close, 5)

	for _, v := range atr {
		assert.True(t, math.IsNaN(v))
	}
}

func TestIsDefined(t *testing.T) {
	assert.False(t, IsDefined(undefined))
	assert.False(t, IsDefined(math.NaN()))
	assert.True(t, IsDefined(0))
	assert.True(t, IsDefined(-1.5))
}

func TestAtrAboveMedianFailsOpenOnShortHistory(t *testing.T) {
	atr := []float64{1, 1, 1}
	assert.True(t, AtrAboveMedian(atr, 1, 5))
}

func TestAtrAboveMedianFailsOpenOnUndefinedWindow(t *testing.T) {
	atr := []float64{undefined, 1, 1, 1, 1, 1}
	assert.True(t, AtrAboveMedian(atr, 5, 5))
}

func TestAtrAboveMedian(t *testing.T) {
	atr := []float64{1, 1, 1, 1, 1, 5}

	assert.True(t, AtrAboveMedian(atr, 5, 5))
	assert.False(t, AtrAboveMedian(atr, 4, 4))
}
