package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/strategycore/pkg/core"
)

func TestPositionSize(t *testing.T) {
	spec := core.ContractSpec{MinQuantity: 0.01, QuantityStep: 0.001}

	t.Run("floors to the quantity step", func(t *testing.T) {
		// notional = 1000 * 0.15 * 5 = 750; raw = 750/100 = 7.5 -> unchanged, already a step multiple
		qty := PositionSize(1000, 0.15, 100, 5, spec)
		assert.InDelta(t, 7.5, qty, 1e-9)
	})

	t.Run("rejects below min quantity", func(t *testing.T) {
		qty := PositionSize(10, 0.01, 50000, 1, spec)
		assert.Equal(t, 0.0, qty)
	})

	t.Run("rejects non-positive equity", func(t *testing.T) {
		assert.Equal(t, 0.0, PositionSize(0, 0.15, 100, 5, spec))
		assert.Equal(t, 0.0, PositionSize(-5, 0.15, 100, 5, spec))
	})

	t.Run("rejects non-positive entry or margin", func(t *testing.T) {
		assert.Equal(t, 0.0, PositionSize(1000, 0.15, 0, 5, spec))
		assert.Equal(t, 0.0, PositionSize(1000, 0, 100, 5, spec))
	})

	t.Run("truncates a non-step-aligned raw quantity", func(t *testing.T) {
		// raw = (1000*0.2*3)/777 = 0.7722... -> floored to nearest 0.001 -> 0.772
		qty := PositionSize(1000, 0.2, 777, 3, spec)
		assert.InDelta(t, 0.772, qty, 1e-9)
	})
}

func TestComputeLeverage(t *testing.T) {
	assert.Equal(t, 5, ComputeLeverage(5, 1, 20))
	assert.Equal(t, 1, ComputeLeverage(0, 1, 20))
	assert.Equal(t, 20, ComputeLeverage(50, 1, 20))
}
