// Package stats derives performance statistics from the trade ledger. Every
// figure is a fresh linear pass over the trades; nothing is cached.
package stats

import (
	"math"
	"time"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/ledger"
	"github.com/rustyeddy/rtracker/risk"
	"github.com/rustyeddy/rtracker/trade"
)

// RecentWindow is how many of the latest trades RecentBreakEvens looks at by default.
const RecentWindow = 10

// Ledger is the read side of ledger.Ledger.
type Ledger interface {
	Trades() []trade.Trade
	NetProfit() float64
	CurrentBalance() float64
}

// Aggregator computes statistics for a settings snapshot over a ledger.
type Aggregator struct {
	settings config.Settings
	ledger   Ledger
}

// New returns an Aggregator over l using s for capital and target figures.
func New(s config.Settings, l Ledger) *Aggregator {
	return &Aggregator{settings: s, ledger: l}
}

// Summary is the statistics block shown on the dashboard.
type Summary struct {
	Trades                   int     `json:"trades"`
	Wins                     int     `json:"wins"`
	WinRate                  float64 `json:"win_rate"`
	AverageRiskMultiple      float64 `json:"average_risk_multiple"`
	MaxDrawdown              float64 `json:"max_drawdown"`
	ProgressPct              float64 `json:"progress_pct"`
	TargetReached            bool    `json:"target_reached"`
	EstimatedTradesRemaining int     `json:"estimated_trades_remaining"`
	NetProfit                float64 `json:"net_profit"`
	CurrentBalance           float64 `json:"current_balance"`
	TargetProfit             float64 `json:"target_profit"`
	RemainingProfit          float64 `json:"remaining_profit"`
	AverageTradeProfit       float64 `json:"average_trade_profit"`
}

// Summary computes every statistic.
func (a *Aggregator) Summary() Summary {
	trades := a.ledger.Trades()
	return Summary{
		Trades:                   len(trades),
		Wins:                     a.Wins(),
		WinRate:                  a.WinRate(),
		AverageRiskMultiple:      a.AverageRiskMultiple(),
		MaxDrawdown:              a.MaxDrawdown(),
		ProgressPct:              a.ProgressPct(),
		TargetReached:            a.TargetReached(),
		EstimatedTradesRemaining: a.EstimatedTradesRemaining(),
		NetProfit:                a.ledger.NetProfit(),
		CurrentBalance:           a.ledger.CurrentBalance(),
		TargetProfit:             risk.TargetProfit(a.settings),
		RemainingProfit:          a.RemainingProfit(),
		AverageTradeProfit:       a.AverageTradeProfit(),
	}
}

// Wins counts trades whose result is Win.
func (a *Aggregator) Wins() int {
	var n int
	for _, t := range a.ledger.Trades() {
		if t.Result == trade.Win {
			n++
		}
	}
	return n
}

// WinRate is wins / total * 100, or 0 with no trades.
func (a *Aggregator) WinRate() float64 {
	total := len(a.ledger.Trades())
	if total == 0 {
		return 0
	}
	return float64(a.Wins()) / float64(total) * 100
}

// AverageRiskMultiple is the mean realized R over winning trades, or 0 when
// there are none.
func (a *Aggregator) AverageRiskMultiple() float64 {
	var sum float64
	var n int
	for _, t := range a.ledger.Trades() {
		if t.Result != trade.Win {
			continue
		}
		sum += trade.RealizedR(t.Breakdown)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MaxDrawdown is the largest percentage drop of a stored trade balance below
// the running peak, walking trades by CreatedAt. The peak starts at initial
// capital and only moves up.
func (a *Aggregator) MaxDrawdown() float64 {
	return MaxDrawdown(a.settings.InitialCapital, a.ledger.Trades())
}

// MaxDrawdown is the free-standing form of Aggregator.MaxDrawdown.
func MaxDrawdown(initialCapital float64, trades []trade.Trade) float64 {
	peak := initialCapital
	var maxDD float64

	for _, t := range ledger.Chronological(trades) {
		if t.Balance > peak {
			peak = t.Balance
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - t.Balance) / peak * 100; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// ProgressPct is net profit as a percentage of the target, clamped to [0, 100].
func (a *Aggregator) ProgressPct() float64 {
	target := risk.TargetProfit(a.settings)
	if target <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, a.ledger.NetProfit()/target*100))
}

// TargetReached compares unclamped net profit against the target.
func (a *Aggregator) TargetReached() bool {
	return a.ledger.NetProfit() >= risk.TargetProfit(a.settings)
}

// RemainingProfit is target minus net profit; negative once exceeded.
func (a *Aggregator) RemainingProfit() float64 {
	return risk.RemainingProfit(a.settings, a.ledger.NetProfit())
}

// AverageTradeProfit is the all-time mean profit/loss per trade.
func (a *Aggregator) AverageTradeProfit() float64 {
	trades := a.ledger.Trades()
	if len(trades) == 0 {
		return 0
	}
	return a.ledger.NetProfit() / float64(len(trades))
}

// moneyEpsilon is half a cent. Averages below it are float residue of trades
// that net to zero.
const moneyEpsilon = 0.005

// EstimatedTradesRemaining projects how many more average trades reach the
// target. It is 0 when the average is not positive (no projection possible)
// or the target is already reached. Use TargetReached to tell the two apart.
func (a *Aggregator) EstimatedTradesRemaining() int {
	avg := a.AverageTradeProfit()
	if avg < moneyEpsilon {
		return 0
	}
	remaining := a.RemainingProfit()
	if remaining <= 0 {
		return 0
	}
	n := math.Ceil(remaining / avg)
	if n >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// ConsecutiveLosses counts the trailing run of losses in insertion order.
func (a *Aggregator) ConsecutiveLosses() int {
	trades := a.ledger.Trades()
	var n int
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].Result != trade.Loss {
			break
		}
		n++
	}
	return n
}

// RecentBreakEvens counts break-evens among the last window trades.
func (a *Aggregator) RecentBreakEvens(window int) int {
	trades := a.ledger.Trades()
	if window < len(trades) {
		trades = trades[len(trades)-window:]
	}
	var n int
	for _, t := range trades {
		if t.Result == trade.BreakEven {
			n++
		}
	}
	return n
}

// Point is one sample of the equity curve.
type Point struct {
	Index   int       `json:"index"`
	Time    time.Time `json:"time"`
	Balance float64   `json:"balance"`
}

// EquityCurve starts at initial capital and adds the stored balance of every
// trade in chronological order.
func (a *Aggregator) EquityCurve() []Point {
	trades := ledger.Chronological(a.ledger.Trades())
	out := make([]Point, 0, len(trades)+1)
	start := Point{Index: 0, Balance: a.settings.InitialCapital}
	if len(trades) > 0 {
		start.Time = trades[0].CreatedAt
	}
	out = append(out, start)
	for i, t := range trades {
		out = append(out, Point{Index: i + 1, Time: t.CreatedAt, Balance: t.Balance})
	}
	return out
}
