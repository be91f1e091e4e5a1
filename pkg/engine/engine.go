// Package engine orchestrates the indicator, signal, and risk packages
// into the single decision point an outer loop calls on every closed
// candle.
package engine

import (
	"math"

	"github.com/raykavin/strategycore/pkg/config"
	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/indicator"
	"github.com/raykavin/strategycore/pkg/risk"
	"github.com/raykavin/strategycore/pkg/signal"
)

// Engine holds the immutable parameter bundle process_candle runs
// against. It carries no mutable state of its own: every TradeState is
// passed in and returned by value.
type Engine struct {
	Config config.StrategyConfig
}

// New builds an Engine from a validated config. The caller is expected
// to have called cfg.Validate() already; New does not re-validate so
// that a deliberately invalid config used in a test does not panic.
func New(cfg config.StrategyConfig) Engine {
	return Engine{Config: cfg}
}

// ProcessCandle is the single entry point described by the strategy
// core: given the candle history for one instrument, current account
// equity, its contract spec, and the last-emitted TradeState, it
// returns the decision for the most recent closed candle and the
// TradeState the caller should persist in its place. The function is
// pure and allocates fresh slices on every call; it holds no state and
// performs no I/O.
func (e Engine) ProcessCandle(
	candles []core.Candle,
	equity float64,
	spec core.ContractSpec,
	prevState core.TradeState,
) (core.StrategyOutput, core.TradeState) {
	spec = spec.Normalize()

	if len(candles) == 0 {
		return core.Hold(core.ReasonInsufficientData), prevState
	}
	for _, cd := range candles {
		if !cd.Valid() {
			return core.Hold(core.ReasonInvalidInput), prevState
		}
	}

	_, high, low, close, _ := core.Arrays(candles)

	n := len(close)
	if n < e.Config.ATRPeriod+1 {
		return core.Hold(core.ReasonInsufficientData), prevState
	}

	idx := n - 1
	atr := indicator.WilderATR(high, low, close, e.Config.ATRPeriod)
	st, dir := indicator.Supertrend(high, low, close, atr, e.Config.SupertrendFactor)

	atrVal := atr[idx]
	if !indicator.IsDefined(atrVal) || atrVal <= 0 {
		return core.Hold(core.ReasonInvalidATR), prevState
	}

	closeVal, highVal, lowVal := close[idx], high[idx], low[idx]

	if prevState.IsOpen() {
		return e.processOpenPosition(prevState, highVal, lowVal, closeVal, atrVal)
	}
	return e.processFlat(prevState, dir, idx, st[idx], atr, closeVal, equity, spec)
}

// processOpenPosition advances an already-open TradeState by one bar:
// bump bars-in-trade, extend the running extreme, check exits in
// priority order, and otherwise recompute the trailing-stop ratchet.
func (e Engine) processOpenPosition(
	prevState core.TradeState,
	high, low, closeVal, atrVal float64,
) (core.StrategyOutput, core.TradeState) {
	inFlight := prevState
	inFlight.BarsInTrade = prevState.BarsInTrade + 1

	switch prevState.Side {
	case core.Long:
		if prevState.ExtremePrice == 0 {
			inFlight.ExtremePrice = high
		} else {
			inFlight.ExtremePrice = math.Max(prevState.ExtremePrice, high)
		}
	case core.Short:
		if prevState.ExtremePrice == 0 {
			inFlight.ExtremePrice = low
		} else {
			inFlight.ExtremePrice = math.Min(prevState.ExtremePrice, low)
		}
	}

	reason := signal.EvaluateExit(inFlight, high, low, e.Config.MaxBarsInTrade)
	if reason != core.ReasonPositionOpen {
		return core.Exit(reason), core.FlatState()
	}

	newTrailing := signal.UpdateTrailing(inFlight, high, low, atrVal, e.Config.TSLATRMult)
	inFlight.TrailingStop = newTrailing
	if newTrailing != nil {
		inFlight.StopLoss = *newTrailing
	}

	return core.Hold(core.ReasonPositionOpen), inFlight
}

// processFlat looks for a confirmed, filtered Supertrend flip and, if
// one sizes to a valid order, opens the corresponding TradeState.
func (e Engine) processFlat(
	prevState core.TradeState,
	dir []int,
	idx int,
	stVal float64,
	atr []float64,
	closeVal, equity float64,
	spec core.ContractSpec,
) (core.StrategyOutput, core.TradeState) {
	atrVal := atr[idx]

	flip := signal.DetectFlip(dir, idx)
	if flip == core.SignalHold {
		return core.Hold(core.ReasonNoFlip), prevState
	}
	if !signal.ConfirmFlip(flip, closeVal, stVal, atrVal, e.Config.FlipConfirmATRPct) {
		return core.Hold(core.ReasonNoFlip), prevState
	}

	if e.Config.VolatilityFilterEnabled && !indicator.AtrAboveMedian(atr, idx, e.Config.VolatilityMedianWindow) {
		return core.Hold(core.ReasonVolatilityFilter), prevState
	}

	entry := closeVal
	stopDistance := e.Config.RiskATRMult * atrVal

	var stopLoss, takeProfit float64
	if flip == core.SignalLong {
		stopLoss = entry - stopDistance
		takeProfit = entry + stopDistance*e.Config.TPRiskRatio
	} else {
		stopLoss = entry + stopDistance
		takeProfit = entry - stopDistance*e.Config.TPRiskRatio
	}

	leverage := risk.ComputeLeverage(e.Config.Leverage, e.Config.LeverageMin, e.Config.LeverageMax)
	qty := risk.PositionSize(equity, e.Config.MarginPct, entry, leverage, spec)
	if qty <= 0 {
		return core.Hold(core.ReasonBelowMinQty), prevState
	}

	side := core.Long
	if flip == core.SignalShort {
		side = core.Short
	}

	newState := core.TradeState{
		Side:         side,
		EntryPrice:   entry,
		InitialStop:  stopLoss,
		TakeProfit:   takeProfit,
		StopLoss:     stopLoss,
		BarsInTrade:  0,
		ExtremePrice: entry,
	}

	return core.StrategyOutput{
		Signal: flip,
		Reason: core.ReasonSupertrendFlip,
		ProposedPosition: &core.ProposedPosition{
			Side:       side,
			Quantity:   qty,
			Leverage:   leverage,
			EntryPrice: entry,
			StopLoss:   stopLoss,
			TakeProfit: takeProfit,
		},
	}, newState
}

