package core

import "errors"

var (
	ErrInvalidCandle       = errors.New("candle violates the OHLC invariant")
	ErrEmptyCandles        = errors.New("candle series is empty")
	ErrInvalidContractSpec = errors.New("contract spec has a non-positive step or minimum")
)
