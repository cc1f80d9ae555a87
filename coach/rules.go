package coach

import (
	"github.com/rustyeddy/rtracker/risk"
	"github.com/rustyeddy/rtracker/stats"
	"github.com/rustyeddy/rtracker/trade"
)

// Rule thresholds.
const (
	BigRunnerR     = 4.0
	LossStreakMin  = 3
	BreakEvenMin   = 3
	LowAverageR    = 2.5
	GoodWinRunnerR = 2.0
)

var (
	RuleTargetReached = Rule{Name: TargetReached, Eval: targetReached}
	RuleDeviation     = Rule{Name: StrategyDeviation, Eval: strategyDeviation}
	RuleBigRunner     = Rule{Name: BigRunner, Eval: bigRunner}
	RuleLossStreak    = Rule{Name: LossStreak, Eval: lossStreak}
	RuleLowRunner     = Rule{Name: LowRunnerPotential, Eval: lowRunnerPotential}
	RuleGoodWin       = Rule{Name: GoodWin, Eval: goodWin}
)

// StandardRules is the cascade for journals of two-part exits only. It ends
// with the good-win encouragement.
var StandardRules = []Rule{
	RuleTargetReached,
	RuleDeviation,
	RuleBigRunner,
	RuleLossStreak,
	RuleLowRunner,
	RuleGoodWin,
}

// MultiCloseRules is the cascade for journals that also record multi-close
// wins. It has no good-win rule.
var MultiCloseRules = []Rule{
	RuleTargetReached,
	RuleDeviation,
	RuleBigRunner,
	RuleLossStreak,
	RuleLowRunner,
}

func targetReached(in Input, a *stats.Aggregator) (Feedback, bool) {
	if !a.TargetReached() {
		return Feedback{}, false
	}
	return Feedback{Severity: SeveritySuccess}, true
}

func strategyDeviation(in Input, _ *stats.Aggregator) (Feedback, bool) {
	devs := AnalyzeDeviation(in.Settings, in.Trade.Breakdown)
	if len(devs) == 0 {
		return Feedback{}, false
	}
	d := devs[0]
	return Feedback{Severity: d.Severity, Deviation: &d}, true
}

func bigRunner(in Input, _ *stats.Aggregator) (Feedback, bool) {
	if in.Trade.Result != trade.Win {
		return Feedback{}, false
	}
	r := trade.MaxR(in.Trade.Breakdown)
	if r < BigRunnerR {
		return Feedback{}, false
	}
	return Feedback{
		Severity:     SeveritySuccess,
		RiskMultiple: r,
		LossesOffset: risk.LossesOffset(in.Trade.ProfitLoss, risk.FixedRiskAmount(in.Settings)),
	}, true
}

func lossStreak(_ Input, a *stats.Aggregator) (Feedback, bool) {
	n := a.ConsecutiveLosses()
	if n < LossStreakMin {
		return Feedback{}, false
	}
	return Feedback{Severity: SeverityWarning, ConsecutiveLosses: n}, true
}

func lowRunnerPotential(_ Input, a *stats.Aggregator) (Feedback, bool) {
	n := a.RecentBreakEvens(stats.RecentWindow)
	if n < BreakEvenMin {
		return Feedback{}, false
	}
	avg := a.AverageRiskMultiple()
	if avg >= LowAverageR {
		return Feedback{}, false
	}
	return Feedback{Severity: SeverityInfo, BreakEvens: n, AverageRiskMultiple: avg}, true
}

func goodWin(in Input, _ *stats.Aggregator) (Feedback, bool) {
	w, ok := in.Trade.Breakdown.(trade.WinBreakdown)
	if !ok || in.Trade.Result != trade.Win || w.RunnerCloseR < GoodWinRunnerR {
		return Feedback{}, false
	}
	return Feedback{Severity: SeveritySuccess, RiskMultiple: w.RunnerCloseR}, true
}
