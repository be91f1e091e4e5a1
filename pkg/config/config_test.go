package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsEachConstraint(t *testing.T) {
	base := Default()

	t.Run("atr_period", func(t *testing.T) {
		cfg := base
		cfg.ATRPeriod = 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("supertrend_factor", func(t *testing.T) {
		cfg := base
		cfg.SupertrendFactor = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("risk_atr_mult", func(t *testing.T) {
		cfg := base
		cfg.RiskATRMult = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("tsl_atr_mult", func(t *testing.T) {
		cfg := base
		cfg.TSLATRMult = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("tp_rr", func(t *testing.T) {
		cfg := base
		cfg.TPRiskRatio = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("margin_pct out of range", func(t *testing.T) {
		cfg := base
		cfg.MarginPct = 0
		assert.Error(t, cfg.Validate())

		cfg.MarginPct = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("leverage bounds", func(t *testing.T) {
		cfg := base
		cfg.Leverage = 0
		assert.Error(t, cfg.Validate())

		cfg = base
		cfg.LeverageMin = 10
		cfg.Leverage = 5
		assert.Error(t, cfg.Validate())

		cfg = base
		cfg.Leverage = 100
		cfg.LeverageMax = 20
		assert.Error(t, cfg.Validate())
	})

	t.Run("max_bars_in_trade", func(t *testing.T) {
		cfg := base
		cfg.MaxBarsInTrade = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("volatility_median_window", func(t *testing.T) {
		cfg := base
		cfg.VolatilityMedianWindow = 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("flip_confirm_atr_pct", func(t *testing.T) {
		cfg := base
		cfg.FlipConfirmATRPct = -0.1
		assert.Error(t, cfg.Validate())
	})
}
