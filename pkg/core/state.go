package core

// Side is the position side of a trade, or Flat when no position is open.
type Side string

const (
	Flat  Side = "FLAT"
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// TradeState is the per-instrument trade state carried between calls to
// Engine.ProcessCandle. The core never mutates a TradeState in place; it
// always returns a new value for the caller to persist.
type TradeState struct {
	Side Side

	// EntryPrice is the close of the bar on which the position was opened.
	EntryPrice float64

	// InitialStop and TakeProfit are immutable targets fixed at entry.
	InitialStop float64
	TakeProfit  float64

	// StopLoss is the current effective stop: equal to InitialStop until
	// the trailing stop activates, after which it equals TrailingStop.
	StopLoss float64

	// TrailingStop is nil until activation; once set it ratchets
	// monotonically (up for Long, down for Short) and is never unset.
	TrailingStop *float64

	// BarsInTrade counts closed bars elapsed since entry; the entry bar
	// counts as 0.
	BarsInTrade int

	// ExtremePrice is the running maximum high (Long) or minimum low
	// (Short) since entry, inclusive of the entry bar.
	ExtremePrice float64
}

// FlatState returns the zero-value trade state for an instrument with no
// open position, the state every tracked instrument begins in.
func FlatState() TradeState {
	return TradeState{Side: Flat}
}

// IsOpen reports whether the state represents a live position.
func (s TradeState) IsOpen() bool {
	return s.Side != Flat
}
