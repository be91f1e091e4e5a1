// Package signal detects Supertrend regime flips, evaluates exit
// predicates in priority order, and computes the trailing-stop ratchet
// for an open position.
package signal

import "github.com/raykavin/strategycore/pkg/core"

// DetectFlip reports a regime flip at index i given the Supertrend
// direction series: LONG on -1 -> +1, SHORT on +1 -> -1, HOLD
// otherwise. idx < 1 never flips.
func DetectFlip(dir []int, idx int) core.Signal {
	if idx < 1 {
		return core.SignalHold
	}
	prev, curr := dir[idx-1], dir[idx]
	switch {
	case prev == -1 && curr == 1:
		return core.SignalLong
	case prev == 1 && curr == -1:
		return core.SignalShort
	default:
		return core.SignalHold
	}
}

// ConfirmFlip applies the flip-confirmation buffer: the close must
// clear the Supertrend level by flipConfirmATRPct * atr before the
// flip is accepted. With a zero buffer the close only has to reach the
// Supertrend level (close >= st for LONG, close <= st for SHORT). Any
// signal other than LONG or SHORT never confirms.
func ConfirmFlip(signal core.Signal, close, st, atr, flipConfirmATRPct float64) bool {
	buf := flipConfirmATRPct * atr
	switch signal {
	case core.SignalLong:
		return close >= st+buf
	case core.SignalShort:
		return close <= st-buf
	default:
		return false
	}
}
