package indicator

import "github.com/markcheno/go-talib"

// ADX and RSI are diagnostic-only wrappers around go-talib, used by the
// backtest report (cmd/strategycore), which averages them over the bars
// where an entry was proposed. Neither feeds ProcessCandle: the Wilder-ATR
// and Supertrend math above is hand-rolled because the engine needs
// exact NaN-sentinel propagation and warm-up semantics that go-talib's
// own ATR/Supertrend implementations do not expose.
func ADX(high, low, close []float64, period int) []float64 {
	return talib.Adx(high, low, close, period)
}

// RSI computes the Relative Strength Index over the close series.
func RSI(close []float64, period int) []float64 {
	return talib.Rsi(close, period)
}
