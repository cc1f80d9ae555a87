package config

import (
	"errors"

	"github.com/rustyeddy/rtracker/pkg/validate"
)

// Settings are the strategy parameters and capital baseline. A Settings value
// is an immutable snapshot; trades keep the figures computed from the snapshot
// that was current when they were recorded.
type Settings struct {
	InitialCapital     float64 `json:"initial_capital" yaml:"initial_capital" toml:"initial_capital"`
	TargetGrowthPct    float64 `json:"target_growth_pct" yaml:"target_growth_pct" toml:"target_growth_pct"`
	RiskPerTradePct    float64 `json:"risk_per_trade_pct" yaml:"risk_per_trade_pct" toml:"risk_per_trade_pct"`
	TargetRiskMultiple float64 `json:"target_risk_multiple" yaml:"target_risk_multiple" toml:"target_risk_multiple"`
	TargetLockPct      float64 `json:"target_lock_pct" yaml:"target_lock_pct" toml:"target_lock_pct"`
}

// Bounds accepted by Settings.Validate.
const (
	MinInitialCapital = 1000
	MinTargetGrowth   = 1
	MaxTargetGrowth   = 100
	MinRiskPerTrade   = 0.1
	MaxRiskPerTrade   = 5
)

// DefaultSettings returns the baseline strategy: 50k capital, 8% growth target,
// 0.5% risk per trade, first close at 1.2R locking 70% of the position.
func DefaultSettings() Settings {
	return Settings{
		InitialCapital:     50000,
		TargetGrowthPct:    8,
		RiskPerTradePct:    0.5,
		TargetRiskMultiple: 1.2,
		TargetLockPct:      70,
	}
}

// Validate returns every out-of-range field joined into one error. Each
// element is a *validate.Error.
func (s Settings) Validate() error {
	return errors.Join(
		validate.Min("initial_capital", s.InitialCapital, MinInitialCapital),
		validate.Range("target_growth_pct", s.TargetGrowthPct, MinTargetGrowth, MaxTargetGrowth),
		validate.Range("risk_per_trade_pct", s.RiskPerTradePct, MinRiskPerTrade, MaxRiskPerTrade),
		validate.Positive("target_risk_multiple", s.TargetRiskMultiple),
		validate.Range("target_lock_pct", s.TargetLockPct, 0, 100),
	)
}
