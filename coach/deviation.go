// Package coach compares executed trades with the configured strategy and
// picks the single most relevant piece of feedback after each trade.
package coach

import (
	"math"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/risk"
	"github.com/rustyeddy/rtracker/trade"
)

// Severity grades a deviation or feedback item.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DeviationKind names a way the first close strayed from the target strategy.
type DeviationKind string

const (
	EarlyClose   DeviationKind = "early_close"
	Aggressive   DeviationKind = "aggressive"
	RunnerUpside DeviationKind = "runner_upside"
	ExtraSafety  DeviationKind = "extra_safety"
)

// Tolerances beyond which a first close counts as a deviation.
const (
	RiskMultipleTolerance = 0.2
	PctTolerance          = 10.0
)

// Tolerances within which a first close counts as strategy compliant.
const (
	CompliantRiskMultiple = 0.1
	CompliantPct          = 5.0
)

// Deviation is one finding of AnalyzeDeviation. Realized/Target are R values
// for EarlyClose and Aggressive and percentages for RunnerUpside and
// ExtraSafety. The locked-profit fields are only set for EarlyClose.
type Deviation struct {
	Kind     DeviationKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Realized float64       `json:"realized"`
	Target   float64       `json:"target"`
	Delta    float64       `json:"delta"`

	RiskAmount      float64 `json:"risk_amount,omitempty"`
	ActualLocked    float64 `json:"actual_locked,omitempty"`
	TargetLocked    float64 `json:"target_locked,omitempty"`
	OpportunityCost float64 `json:"opportunity_cost,omitempty"`
}

// NetAfterNextLoss is what the locked profit leaves if the next trade is a
// full loss, for the actual and the target first close.
func (d Deviation) NetAfterNextLoss() (actual, target float64) {
	return d.ActualLocked - d.RiskAmount, d.TargetLocked - d.RiskAmount
}

type findings []Deviation

func (f *findings) add(d Deviation) {
	*f = append(*f, d)
}

// AnalyzeDeviation checks a break-even or standard-win first close against the
// target R and lock percentage. The R check comes first, the percentage check
// second. Losses and multi-close wins have no single first close and yield nil.
func AnalyzeDeviation(s config.Settings, b trade.Breakdown) []Deviation {
	realizedR, realizedPct, ok := trade.FirstClose(b)
	if !ok {
		return nil
	}

	var out findings

	dR := realizedR - s.TargetRiskMultiple
	if math.Abs(dR) > RiskMultipleTolerance {
		if dR < 0 {
			riskAmt := risk.FixedRiskAmount(s)
			actual := realizedPct / 100 * realizedR * riskAmt
			target := s.TargetLockPct / 100 * s.TargetRiskMultiple * riskAmt
			out.add(Deviation{
				Kind:            EarlyClose,
				Severity:        SeverityHigh,
				Realized:        realizedR,
				Target:          s.TargetRiskMultiple,
				Delta:           dR,
				RiskAmount:      riskAmt,
				ActualLocked:    actual,
				TargetLocked:    target,
				OpportunityCost: target - actual,
			})
		} else {
			out.add(Deviation{
				Kind:     Aggressive,
				Severity: SeverityMedium,
				Realized: realizedR,
				Target:   s.TargetRiskMultiple,
				Delta:    dR,
			})
		}
	}

	dPct := realizedPct - s.TargetLockPct
	if math.Abs(dPct) > PctTolerance {
		kind := ExtraSafety
		if dPct < 0 {
			kind = RunnerUpside
		}
		out.add(Deviation{
			Kind:     kind,
			Severity: SeverityInfo,
			Realized: realizedPct,
			Target:   s.TargetLockPct,
			Delta:    dPct,
		})
	}

	return out
}

// Compliant reports whether a first close sits within the compliance band of
// the target strategy. The second return is false for trades without a first
// close, which carry no compliance badge.
func Compliant(s config.Settings, b trade.Breakdown) (compliant, applicable bool) {
	r, pct, ok := trade.FirstClose(b)
	if !ok {
		return false, false
	}
	return math.Abs(r-s.TargetRiskMultiple) <= CompliantRiskMultiple &&
		math.Abs(pct-s.TargetLockPct) <= CompliantPct, true
}
