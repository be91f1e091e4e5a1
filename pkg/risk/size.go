// Package risk computes position size and effective leverage from
// account equity, entry price, and an instrument's contract spec.
package risk

import "github.com/raykavin/strategycore/pkg/core"

// PositionSize computes the order quantity for a proposed entry.
// Quantity is floored to the contract's quantity step (the exchange
// tick) the same way exchange.binance rounds order quantities down to
// StepSize before submission. A quantity under MinQuantity, or any
// non-positive equity/entry/marginPct, is rejected by returning 0 —
// the caller must HOLD.
func PositionSize(equity, marginPct, entry float64, leverage int, spec core.ContractSpec) float64 {
	if equity <= 0 || entry <= 0 || marginPct <= 0 {
		return 0
	}

	notional := equity * marginPct * float64(leverage)
	raw := notional / entry

	quantity := raw
	if spec.QuantityStep > 0 {
		steps := float64(int(raw / spec.QuantityStep))
		quantity = steps * spec.QuantityStep
	}

	if quantity < spec.MinQuantity {
		return 0
	}
	return quantity
}

// ComputeLeverage clamps a requested base leverage to [min, max].
func ComputeLeverage(base, min, max int) int {
	if base < min {
		return min
	}
	if base > max {
		return max
	}
	return base
}
