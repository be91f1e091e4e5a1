package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/strategycore/pkg/config"
	"github.com/raykavin/strategycore/pkg/core"
)

func flatCandle(o, h, l, c, v float64) core.Candle {
	return core.Candle{Open: o, High: h, Low: l, Close: c, Volume: v}
}

// S1: insufficient data.
func TestProcessCandle_InsufficientData(t *testing.T) {
	cfg := config.Default()
	cfg.ATRPeriod = 10
	e := New(cfg)

	candles := make([]core.Candle, 5)
	for i := range candles {
		candles[i] = flatCandle(100, 101, 99, 100, 10)
	}

	out, state := e.ProcessCandle(candles, 1000, core.ContractSpec{}, core.FlatState())
	assert.Equal(t, core.SignalHold, out.Signal)
	assert.Equal(t, core.ReasonInsufficientData, out.Reason)
	assert.Equal(t, core.FlatState(), state)
}

// S3: stop hit beats tp hit.
func TestProcessOpenPosition_StopBeatsTarget(t *testing.T) {
	cfg := config.Default()
	e := New(cfg)

	prev := core.TradeState{
		Side:         core.Long,
		EntryPrice:   100,
		InitialStop:  95,
		StopLoss:     95,
		TakeProfit:   110,
		ExtremePrice: 100,
	}

	out, state := e.processOpenPosition(prev, 112, 94, 108, 2.0)
	assert.Equal(t, core.SignalExit, out.Signal)
	assert.Equal(t, core.ReasonStopHit, out.Reason)
	assert.Equal(t, core.FlatState(), state)
}

// S4: trailing activation at 1R profit.
func TestProcessOpenPosition_TrailingActivation(t *testing.T) {
	cfg := config.Default()
	cfg.TSLATRMult = 2.5
	e := New(cfg)

	prev := core.TradeState{
		Side:         core.Long,
		EntryPrice:   100,
		InitialStop:  95,
		StopLoss:     95,
		TakeProfit:   130,
		ExtremePrice: 100,
	}

	out, state := e.processOpenPosition(prev, 107, 105, 106, 2.0)
	assert.Equal(t, core.SignalHold, out.Signal)
	assert.Equal(t, core.ReasonPositionOpen, out.Reason)
	require.NotNil(t, state.TrailingStop)
	assert.InDelta(t, 102.0, *state.TrailingStop, 1e-9)
	assert.Equal(t, 102.0, state.StopLoss)
}

// S5: trailing ratchet never loosens.
func TestProcessOpenPosition_TrailingRatchet(t *testing.T) {
	cfg := config.Default()
	cfg.TSLATRMult = 2.5
	e := New(cfg)

	activated := 102.0
	afterS4 := core.TradeState{
		Side:         core.Long,
		EntryPrice:   100,
		InitialStop:  95,
		StopLoss:     102,
		TrailingStop: &activated,
		TakeProfit:   130,
		ExtremePrice: 107,
		BarsInTrade:  1,
	}

	out, state := e.processOpenPosition(afterS4, 109, 107, 108, 2.0)
	require.Equal(t, core.ReasonPositionOpen, out.Reason)
	require.NotNil(t, state.TrailingStop)
	assert.InDelta(t, 104.0, *state.TrailingStop, 1e-9)

	out2, state2 := e.processOpenPosition(state, 108, 106, 107, 2.0)
	require.Equal(t, core.ReasonPositionOpen, out2.Reason)
	require.NotNil(t, state2.TrailingStop)
	assert.InDelta(t, 104.0, *state2.TrailingStop, 1e-9)
}

// S6: time exit.
func TestProcessOpenPosition_TimeExit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxBarsInTrade = 3
	e := New(cfg)

	prev := core.TradeState{
		Side:         core.Long,
		EntryPrice:   100,
		InitialStop:  95,
		StopLoss:     95,
		TakeProfit:   130,
		ExtremePrice: 100,
		BarsInTrade:  2,
	}

	out, state := e.processOpenPosition(prev, 101, 99, 100, 2.0)
	assert.Equal(t, core.SignalExit, out.Signal)
	assert.Equal(t, core.ReasonTimeExit, out.Reason)
	assert.Equal(t, core.FlatState(), state)
}

// S7: below-min-quantity sizing rejects the proposal even on a confirmed flip.
func TestProcessFlat_BelowMinQuantity(t *testing.T) {
	cfg := config.Default()
	cfg.MarginPct = 0.02
	cfg.Leverage, cfg.LeverageMin, cfg.LeverageMax = 5, 1, 20
	e := New(cfg)

	dir := []int{-1, 1}
	spec := core.ContractSpec{MinQuantity: 0.001, QuantityStep: 0.001}

	out, state := e.processFlat(core.FlatState(), dir, 1, 49000, []float64{2, 2}, 50000, 1, spec)
	assert.Equal(t, core.SignalHold, out.Signal)
	assert.Equal(t, core.ReasonBelowMinQty, out.Reason)
	assert.Equal(t, core.FlatState(), state)
}

func TestProcessFlat_NoFlipHolds(t *testing.T) {
	cfg := config.Default()
	e := New(cfg)

	dir := []int{1, 1}
	spec := core.ContractSpec{MinQuantity: 0.001, QuantityStep: 0.001}

	out, state := e.processFlat(core.FlatState(), dir, 1, 98, []float64{2, 2}, 100, 1000, spec)
	assert.Equal(t, core.ReasonNoFlip, out.Reason)
	assert.Equal(t, core.FlatState(), state)
}

// S2: a 24-bar downtrend at a constant 2.0 true range (so Wilder ATR
// holds flat at 2.0). Supertrend seeds bullish on the first defined ATR
// bar, turns bearish once the close breaks the support band, and then
// stays bearish while the resistance band ratchets down bar over bar.
// One explosive reversal bar then breaks back above the ratcheted
// resistance band, flipping direction bullish and opening a LONG
// through the full ProcessCandle path.
func TestProcessCandle_DowntrendReversalEntersLong(t *testing.T) {
	cfg := config.Default()
	e := New(cfg)

	candles := make([]core.Candle, 25)
	for i := 0; i < 24; i++ {
		fi := float64(i)
		candles[i] = flatCandle(151-fi, 151.5-fi, 149.5-fi, 150-fi, 10)
	}
	candles[24] = flatCandle(127, 305, 126, 300, 50)

	out, state := e.ProcessCandle(candles, 100000, core.ContractSpec{}, core.FlatState())

	require.Equal(t, core.SignalLong, out.Signal)
	assert.Equal(t, core.ReasonSupertrendFlip, out.Reason)
	require.NotNil(t, out.ProposedPosition)
	assert.Equal(t, core.Long, out.ProposedPosition.Side)
	assert.InDelta(t, 300, out.ProposedPosition.EntryPrice, 1e-9)
	assert.InDelta(t, 250, out.ProposedPosition.Quantity, 1e-6)
	assert.Less(t, out.ProposedPosition.StopLoss, 300.0)
	assert.Greater(t, out.ProposedPosition.TakeProfit, 300.0)

	require.True(t, state.IsOpen())
	assert.Equal(t, core.Long, state.Side)
	assert.InDelta(t, 300, state.EntryPrice, 1e-9)
}
