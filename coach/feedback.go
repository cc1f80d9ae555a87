package coach

import (
	"fmt"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/risk"
	"github.com/rustyeddy/rtracker/stats"
	"github.com/rustyeddy/rtracker/trade"
)

// FeedbackKind identifies which rule produced a Feedback.
type FeedbackKind string

const (
	TargetReached      FeedbackKind = "target_reached"
	StrategyDeviation  FeedbackKind = "strategy_deviation"
	BigRunner          FeedbackKind = "big_runner"
	LossStreak         FeedbackKind = "loss_streak"
	LowRunnerPotential FeedbackKind = "low_runner_potential"
	GoodWin            FeedbackKind = "good_win"
)

// Feedback is a typed, parameterized coaching message. Only the fields the
// producing rule needs are filled in; rendering to text happens elsewhere.
type Feedback struct {
	Kind     FeedbackKind `json:"kind"`
	Severity Severity     `json:"severity"`

	ProfitLoss      float64 `json:"profit_loss"`
	NetProfit       float64 `json:"net_profit"`
	TargetProfit    float64 `json:"target_profit"`
	TargetGrowthPct float64 `json:"target_growth_pct"`
	RemainingProfit float64 `json:"remaining_profit"`

	RiskMultiple        float64 `json:"risk_multiple,omitempty"`
	LossesOffset        int     `json:"losses_offset,omitempty"`
	ConsecutiveLosses   int     `json:"consecutive_losses,omitempty"`
	BreakEvens          int     `json:"break_evens,omitempty"`
	AverageRiskMultiple float64 `json:"average_risk_multiple,omitempty"`

	Deviation *Deviation `json:"deviation,omitempty"`
}

// Input is what the rules look at: the newest trade and the ledger it was
// recorded into.
type Input struct {
	Settings config.Settings
	Trade    trade.Trade
	Ledger   stats.Ledger
}

// Rule is one predicate/producer pair of the cascade.
type Rule struct {
	Name FeedbackKind
	Eval func(in Input, a *stats.Aggregator) (Feedback, bool)
}

// Engine evaluates its rules in order and stops at the first match.
type Engine struct {
	rules []Rule
}

// NewEngine returns an Engine over a copy of rules.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// ForProfile returns the engine for a configured coach profile.
func ForProfile(profile string) (*Engine, error) {
	switch profile {
	case config.ProfileStandard:
		return NewEngine(StandardRules), nil
	case config.ProfileMultiClose, "":
		return NewEngine(MultiCloseRules), nil
	}
	return nil, fmt.Errorf("unknown coach profile %q", profile)
}

// Rules lists rule names in evaluation order.
func (e *Engine) Rules() []FeedbackKind {
	out := make([]FeedbackKind, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Name
	}
	return out
}

// Evaluate returns the feedback of the first matching rule.
func (e *Engine) Evaluate(in Input) (Feedback, bool) {
	a := stats.New(in.Settings, in.Ledger)
	for _, r := range e.rules {
		if fb, ok := r.Eval(in, a); ok {
			fb.Kind = r.Name
			fb.ProfitLoss = in.Trade.ProfitLoss
			fb.NetProfit = in.Ledger.NetProfit()
			fb.TargetProfit = risk.TargetProfit(in.Settings)
			fb.TargetGrowthPct = in.Settings.TargetGrowthPct
			fb.RemainingProfit = a.RemainingProfit()
			return fb, true
		}
	}
	return Feedback{}, false
}
