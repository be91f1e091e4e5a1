package signal

import "github.com/raykavin/strategycore/pkg/core"

// UpdateTrailing computes the next trailing-stop level for an open
// position, given the bar's high/low and the current ATR. It returns
// nil if the trailing stop has not yet activated (profit has not
// reached the 1R distance fixed at entry). Once activated, the level
// only ever ratchets toward the position (never loosens): the result
// is always compared against the previous trailing level, or the
// initial stop if trailing has not activated before, and clamped to
// the more favorable of the two.
func UpdateTrailing(state core.TradeState, high, low, atr, tslATRMult float64) *float64 {
	stopDistance := absf(state.EntryPrice - state.InitialStop)

	switch state.Side {
	case core.Long:
		extreme := maxf(state.ExtremePrice, high)
		if extreme < state.EntryPrice+stopDistance {
			return state.TrailingStop
		}
		candidate := extreme - tslATRMult*atr
		floor := state.StopLoss
		if state.TrailingStop != nil {
			floor = *state.TrailingStop
		}
		level := maxf(floor, candidate)
		return &level

	case core.Short:
		extreme := minf(state.ExtremePrice, low)
		if extreme > state.EntryPrice-stopDistance {
			return state.TrailingStop
		}
		candidate := extreme + tslATRMult*atr
		ceiling := state.StopLoss
		if state.TrailingStop != nil {
			ceiling = *state.TrailingStop
		}
		level := minf(ceiling, candidate)
		return &level

	default:
		return nil
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
