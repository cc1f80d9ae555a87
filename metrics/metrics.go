// Package metrics exposes journal statistics and activity counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rustyeddy/rtracker/stats"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "rtracker"

// Source provides the statistics snapshot read on every scrape.
type Source interface {
	Statistics() stats.Summary
}

// Collector turns a statistics summary into gauges at scrape time.
type Collector struct {
	src Source

	trades          *prometheus.Desc
	wins            *prometheus.Desc
	winRate         *prometheus.Desc
	averageR        *prometheus.Desc
	maxDrawdown     *prometheus.Desc
	progress        *prometheus.Desc
	targetReached   *prometheus.Desc
	tradesRemaining *prometheus.Desc
	netProfit       *prometheus.Desc
	balance         *prometheus.Desc
	remainingProfit *prometheus.Desc
}

// NewCollector returns a Collector reading from src.
func NewCollector(namespace string, src Source) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "journal", name), help, nil, nil)
	}
	return &Collector{
		src:             src,
		trades:          desc("trades", "Number of recorded trades"),
		wins:            desc("wins", "Number of winning trades"),
		winRate:         desc("win_rate_pct", "Winning trades as a percentage of all trades"),
		averageR:        desc("average_risk_multiple", "Mean realized R over winning trades"),
		maxDrawdown:     desc("max_drawdown_pct", "Largest peak-to-trough balance decline in percent"),
		progress:        desc("progress_pct", "Net profit as a percentage of the target profit, clamped to [0,100]"),
		targetReached:   desc("target_reached", "1 when net profit has reached the target profit"),
		tradesRemaining: desc("estimated_trades_remaining", "Estimated number of trades until the target is reached"),
		netProfit:       desc("net_profit", "Sum of trade profit and loss"),
		balance:         desc("balance", "Initial capital plus net profit"),
		remainingProfit: desc("remaining_profit", "Target profit minus net profit"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.trades
	ch <- c.wins
	ch <- c.winRate
	ch <- c.averageR
	ch <- c.maxDrawdown
	ch <- c.progress
	ch <- c.targetReached
	ch <- c.tradesRemaining
	ch <- c.netProfit
	ch <- c.balance
	ch <- c.remainingProfit
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Statistics()

	var reached float64
	if s.TargetReached {
		reached = 1
	}

	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}
	gauge(c.trades, float64(s.Trades))
	gauge(c.wins, float64(s.Wins))
	gauge(c.winRate, s.WinRate)
	gauge(c.averageR, s.AverageRiskMultiple)
	gauge(c.maxDrawdown, s.MaxDrawdown)
	gauge(c.progress, s.ProgressPct)
	gauge(c.targetReached, reached)
	gauge(c.tradesRemaining, float64(s.EstimatedTradesRemaining))
	gauge(c.netProfit, s.NetProfit)
	gauge(c.balance, s.CurrentBalance)
	gauge(c.remainingProfit, s.RemainingProfit)
}

// Metrics holds the activity counters updated by the tracker.
type Metrics struct {
	TradesRecorded *prometheus.CounterVec
	TradesRemoved  prometheus.Counter
	Feedback       *prometheus.CounterVec
	StoreErrors    *prometheus.CounterVec
	Reloads        prometheus.Counter
}

// New creates the counters and registers them on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		TradesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "trades_recorded_total",
			Help:      "Trades recorded, by result",
		}, []string{"result"}),
		TradesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "trades_removed_total",
			Help:      "Trades removed from the journal",
		}),
		Feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "feedback_total",
			Help:      "Feedback items produced, by kind",
		}, []string{"kind"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "store_errors_total",
			Help:      "Failed store operations, by operation",
		}, []string{"op"}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "reloads_total",
			Help:      "Successful reloads of the journal from the store",
		}),
	}
	reg.MustRegister(m.TradesRecorded, m.TradesRemoved, m.Feedback, m.StoreErrors, m.Reloads)
	return m
}

// TradeRecorded counts a recorded trade. A nil Metrics is a no-op.
func (m *Metrics) TradeRecorded(result string) {
	if m == nil {
		return
	}
	m.TradesRecorded.WithLabelValues(result).Inc()
}

// TradeRemoved counts a removed trade.
func (m *Metrics) TradeRemoved() {
	if m == nil {
		return
	}
	m.TradesRemoved.Inc()
}

// FeedbackGiven counts a produced feedback item.
func (m *Metrics) FeedbackGiven(kind string) {
	if m == nil {
		return
	}
	m.Feedback.WithLabelValues(kind).Inc()
}

// StoreError counts a failed store operation.
func (m *Metrics) StoreError(op string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(op).Inc()
}

// Reloaded counts a successful reload.
func (m *Metrics) Reloaded() {
	if m == nil {
		return
	}
	m.Reloads.Inc()
}

// Handler serves reg in the Prometheus text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
