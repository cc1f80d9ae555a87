package risk

import (
	"math"

	"github.com/rustyeddy/rtracker/config"
)

// FixedRiskAmount is the cash put at risk on every trade (1R).
func FixedRiskAmount(s config.Settings) float64 {
	return s.InitialCapital * s.RiskPerTradePct / 100
}

// TargetProfit is the cash profit that completes the growth target.
func TargetProfit(s config.Settings) float64 {
	return s.InitialCapital * s.TargetGrowthPct / 100
}

// RemainingProfit is what is still missing to reach the target. It goes
// negative once the target is exceeded.
func RemainingProfit(s config.Settings, netProfit float64) float64 {
	return TargetProfit(s) - netProfit
}

// LossesOffset is how many full 1R losses a profit pays for.
func LossesOffset(profit, riskAmount float64) int {
	if riskAmount <= 0 {
		return 0
	}
	return int(math.Floor(profit / riskAmount))
}

// Multiple expresses cash as a multiple of riskAmount.
func Multiple(cash, riskAmount float64) float64 {
	if riskAmount == 0 {
		return 0
	}
	return cash / riskAmount
}
