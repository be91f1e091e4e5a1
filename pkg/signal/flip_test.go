package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/strategycore/pkg/core"
)

func TestDetectFlip(t *testing.T) {
	t.Run("bearish to bullish is LONG", func(t *testing.T) {
		dir := []int{0, -1, 1}
		assert.Equal(t, core.SignalLong, DetectFlip(dir, 2))
	})

	t.Run("bullish to bearish is SHORT", func(t *testing.T) {
		dir := []int{0, 1, -1}
		assert.Equal(t, core.SignalShort, DetectFlip(dir, 2))
	})

	t.Run("no change is HOLD", func(t *testing.T) {
		dir := []int{0, 1, 1}
		assert.Equal(t, core.SignalHold, DetectFlip(dir, 2))
	})

	t.Run("index 0 never flips", func(t *testing.T) {
		dir := []int{1}
		assert.Equal(t, core.SignalHold, DetectFlip(dir, 0))
	})
}

func TestConfirmFlip(t *testing.T) {
	t.Run("zero buffer passes with close at the Supertrend level", func(t *testing.T) {
		assert.True(t, ConfirmFlip(core.SignalLong, 100, 100, 5, 0))
		assert.True(t, ConfirmFlip(core.SignalShort, 100, 100, 5, 0))
	})

	t.Run("LONG requires close to clear st by the buffer", func(t *testing.T) {
		assert.True(t, ConfirmFlip(core.SignalLong, 106, 100, 5, 1.0))
		assert.False(t, ConfirmFlip(core.SignalLong, 104, 100, 5, 1.0))
	})

	t.Run("SHORT requires close to clear st by the buffer on the way down", func(t *testing.T) {
		assert.True(t, ConfirmFlip(core.SignalShort, 94, 100, 5, 1.0))
		assert.False(t, ConfirmFlip(core.SignalShort, 96, 100, 5, 1.0))
	})

	t.Run("HOLD never confirms", func(t *testing.T) {
		assert.False(t, ConfirmFlip(core.SignalHold, 100, 100, 5, 0))
	})
}
