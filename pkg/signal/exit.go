package signal

import "github.com/raykavin/strategycore/pkg/core"

// EvaluateExit checks the four exit predicates against an open
// position in fixed priority order (stop, target, trailing, time) and
// returns the first that fires, or ReasonPositionOpen if none do.
// Priority encodes a conservative worst-case intra-bar assumption: if
// both the stop and the target were touched within the same bar, the
// stop is assumed to have fired first.
func EvaluateExit(state core.TradeState, high, low float64, maxBarsInTrade int) core.Reason {
	switch state.Side {
	case core.Long:
		if low <= state.StopLoss {
			return core.ReasonStopHit
		}
		if high >= state.TakeProfit {
			return core.ReasonTPHit
		}
		if state.TrailingStop != nil && low <= *state.TrailingStop {
			return core.ReasonTrailingStop
		}
	case core.Short:
		if high >= state.StopLoss {
			return core.ReasonStopHit
		}
		if low <= state.TakeProfit {
			return core.ReasonTPHit
		}
		if state.TrailingStop != nil && high >= *state.TrailingStop {
			return core.ReasonTrailingStop
		}
	default:
		return core.ReasonPositionOpen
	}

	if state.BarsInTrade >= maxBarsInTrade {
		return core.ReasonTimeExit
	}
	return core.ReasonPositionOpen
}
