// Package config holds the immutable strategy parameter bundle consumed
// by pkg/engine, and the surrounding runtime configuration loaded from
// the environment.
package config

import "fmt"

// StrategyConfig is the immutable bundle of strategy parameters the
// engine evaluates on every candle. A zero-value StrategyConfig is
// never valid; callers must build one via Default() or their own
// literal and call Validate().
type StrategyConfig struct {
	ATRPeriod        int
	SupertrendFactor float64

	RiskATRMult float64
	TSLATRMult  float64
	TPRiskRatio float64

	MarginPct    float64
	Leverage     int
	LeverageMin  int
	LeverageMax  int

	MaxBarsInTrade int

	VolatilityFilterEnabled bool
	VolatilityMedianWindow  int

	FlipConfirmATRPct float64
}

// Default returns the reference parameter set used throughout the test
// suite.
func Default() StrategyConfig {
	return StrategyConfig{
		ATRPeriod:               10,
		SupertrendFactor:        3.0,
		RiskATRMult:             2.0,
		TSLATRMult:              2.0,
		TPRiskRatio:             2.0,
		MarginPct:               0.15,
		Leverage:                5,
		LeverageMin:             1,
		LeverageMax:             20,
		MaxBarsInTrade:          48,
		VolatilityFilterEnabled: true,
		VolatilityMedianWindow:  20,
		FlipConfirmATRPct:       0,
	}
}

// Validate enforces every sanity constraint a StrategyConfig must
// satisfy for the engine to run against it, returning the first
// violation found.
func (c StrategyConfig) Validate() error {
	switch {
	case c.ATRPeriod < 2:
		return fmt.Errorf("atr_period must be >= 2, got %d", c.ATRPeriod)
	case c.SupertrendFactor <= 0:
		return fmt.Errorf("supertrend_factor must be > 0, got %v", c.SupertrendFactor)
	case c.RiskATRMult <= 0:
		return fmt.Errorf("risk_atr_mult must be > 0, got %v", c.RiskATRMult)
	case c.TSLATRMult <= 0:
		return fmt.Errorf("tsl_atr_mult must be > 0, got %v", c.TSLATRMult)
	case c.TPRiskRatio <= 0:
		return fmt.Errorf("tp_rr must be > 0, got %v", c.TPRiskRatio)
	case c.MarginPct <= 0 || c.MarginPct > 1:
		return fmt.Errorf("margin_pct must be in (0, 1], got %v", c.MarginPct)
	case !(1 <= c.LeverageMin && c.LeverageMin <= c.Leverage && c.Leverage <= c.LeverageMax):
		return fmt.Errorf("leverage bounds must satisfy 1 <= leverage_min (%d) <= leverage (%d) <= leverage_max (%d)",
			c.LeverageMin, c.Leverage, c.LeverageMax)
	case c.MaxBarsInTrade < 1:
		return fmt.Errorf("max_bars_in_trade must be >= 1, got %d", c.MaxBarsInTrade)
	case c.VolatilityMedianWindow < 2:
		return fmt.Errorf("volatility_median_window must be >= 2, got %d", c.VolatilityMedianWindow)
	case c.FlipConfirmATRPct < 0:
		return fmt.Errorf("flip_confirm_atr_pct must be >= 0, got %v", c.FlipConfirmATRPct)
	}
	return nil
}
