// Package tracker is the journal engine: it owns the strategy settings and the
// trade ledger, persists both through a journal.Store, and answers the
// statistics, deviation and feedback queries of the presentation layer.
package tracker

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/phuslu/log"

	"github.com/rustyeddy/rtracker/coach"
	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/internal/logging"
	"github.com/rustyeddy/rtracker/journal"
	"github.com/rustyeddy/rtracker/ledger"
	"github.com/rustyeddy/rtracker/metrics"
	"github.com/rustyeddy/rtracker/risk"
	"github.com/rustyeddy/rtracker/stats"
	"github.com/rustyeddy/rtracker/trade"
)

// DefaultPageSize is the History page size used when none is given.
const DefaultPageSize = 5

// Tracker serializes every method so a metrics scrape may run concurrently
// with the command that owns it.
type Tracker struct {
	mu sync.Mutex

	store    journal.Store
	settings config.Settings
	defaults config.Settings
	ledger   *ledger.Ledger
	engine   *coach.Engine

	log        *log.Logger
	metrics    *metrics.Metrics
	ledgerOpts []ledger.Option
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used to stamp trades.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.ledgerOpts = append(t.ledgerOpts, ledger.WithClock(now)) }
}

// WithIDs overrides the trade id generator.
func WithIDs(fn func(time.Time) string) Option {
	return func(t *Tracker) { t.ledgerOpts = append(t.ledgerOpts, ledger.WithIDs(fn)) }
}

// WithDefaults sets the settings used when the store has none, and by
// ResetSettings and Reset.
func WithDefaults(s config.Settings) Option {
	return func(t *Tracker) { t.defaults = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithEngine sets the feedback engine. The default is the multi-close profile.
func WithEngine(e *coach.Engine) Option {
	return func(t *Tracker) { t.engine = e }
}

// WithMetrics enables activity counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// New loads settings and trades from store. Missing settings fall back to the
// defaults (config.DefaultSettings unless WithDefaults is given); they are
// written on the first update.
func New(store journal.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:    store,
		defaults: config.DefaultSettings(),
		engine:   coach.NewEngine(coach.MultiCloseRules),
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	settings, trades, err := t.load()
	if err != nil {
		return nil, err
	}
	t.settings = settings
	t.ledger = ledger.New(settings.InitialCapital, trades, store, t.ledgerOpts...)

	t.log.Debug().
		Int("trades", len(trades)).
		Float64("initial_capital", settings.InitialCapital).
		Msg("tracker loaded")

	return t, nil
}

// Reload rereads settings and trades from the store, picking up writes made
// by another process sharing it. On error the current state is kept.
func (t *Tracker) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	settings, trades, err := t.load()
	if err != nil {
		return err
	}
	t.settings = settings
	t.ledger = ledger.New(settings.InitialCapital, trades, t.store, t.ledgerOpts...)
	t.metrics.Reloaded()

	t.log.Debug().Int("trades", len(trades)).Msg("tracker reloaded")
	return nil
}

func (t *Tracker) load() (config.Settings, []trade.Trade, error) {
	settings, ok, err := t.store.LoadSettings()
	if err != nil {
		t.metrics.StoreError("load_settings")
		return config.Settings{}, nil, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		settings = t.defaults
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, nil, fmt.Errorf("invalid settings: %w", err)
	}

	trades, err := t.store.LoadTrades()
	if err != nil {
		t.metrics.StoreError("load_trades")
		return config.Settings{}, nil, fmt.Errorf("load trades: %w", err)
	}
	return settings, trades, nil
}

// Close closes the underlying store.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Close()
}

// AddTrade prices a trade from its execution parameters using the current
// risk amount and records it.
func (t *Tracker) AddTrade(result trade.Result, p trade.Params, notes string) (trade.Trade, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pl, b, err := trade.Compute(result, p, risk.FixedRiskAmount(t.settings))
	if err != nil {
		return trade.Trade{}, err
	}

	tr, err := t.ledger.Add(pl, b, result, notes)
	if err != nil {
		t.metrics.StoreError("save_trades")
		t.log.Error().Err(err).Str("result", result.String()).Msg("trade not recorded")
		return trade.Trade{}, err
	}

	t.metrics.TradeRecorded(result.String())
	t.log.Info().
		Str("trade_id", tr.ID).
		Str("result", result.String()).
		Str("kind", string(b.Kind())).
		Float64("profit_loss", tr.ProfitLoss).
		Float64("balance", tr.Balance).
		Msg("trade recorded")

	return tr, nil
}

// RemoveTrade deletes a trade. An unknown id is a no-op reporting false.
func (t *Tracker) RemoveTrade(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ok, err := t.ledger.Remove(id)
	if err != nil {
		t.metrics.StoreError("save_trades")
		t.log.Error().Err(err).Str("trade_id", id).Msg("trade not removed")
		return false, err
	}
	if !ok {
		t.log.Debug().Str("trade_id", id).Msg("remove: no such trade")
		return false, nil
	}

	t.metrics.TradeRemoved()
	t.log.Info().Str("trade_id", id).Msg("trade removed")
	return true, nil
}

// ClearTrades removes every trade and keeps the settings.
func (t *Tracker) ClearTrades() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clearTrades()
}

func (t *Tracker) clearTrades() error {
	n := t.ledger.Len()
	if err := t.ledger.Clear(); err != nil {
		t.metrics.StoreError("save_trades")
		return err
	}
	t.log.Info().Int("trades", n).Msg("trades cleared")
	return nil
}

// Trade returns the trade with the given id.
func (t *Tracker) Trade(id string) (trade.Trade, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Get(id)
}

// Trades returns every trade in insertion order.
func (t *Tracker) Trades() []trade.Trade {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Trades()
}

// Settings returns the current settings snapshot.
func (t *Tracker) Settings() config.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// UpdateSettings validates and persists s. Existing trades keep the figures
// they were priced with; only later trades and the statistics see s.
func (t *Tracker) UpdateSettings(s config.Settings) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateSettings(s)
}

func (t *Tracker) updateSettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := t.store.SaveSettings(s); err != nil {
		t.metrics.StoreError("save_settings")
		return fmt.Errorf("save settings: %w", err)
	}

	if s.InitialCapital != t.settings.InitialCapital && t.ledger.Len() > 0 {
		t.log.Warn().
			Float64("old_capital", t.settings.InitialCapital).
			Float64("new_capital", s.InitialCapital).
			Int("trades", t.ledger.Len()).
			Msg("initial capital changed with recorded trades; stored balances keep the old baseline")
	}

	t.settings = s
	t.ledger.SetInitialCapital(s.InitialCapital)
	t.log.Info().
		Float64("initial_capital", s.InitialCapital).
		Float64("target_growth_pct", s.TargetGrowthPct).
		Float64("risk_per_trade_pct", s.RiskPerTradePct).
		Float64("target_risk_multiple", s.TargetRiskMultiple).
		Float64("target_lock_pct", s.TargetLockPct).
		Msg("settings updated")
	return nil
}

// ResetSettings restores the default settings.
func (t *Tracker) ResetSettings() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateSettings(t.defaults)
}

// Reset clears every trade and restores the default settings.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.clearTrades(); err != nil {
		return err
	}
	return t.updateSettings(t.defaults)
}

// Statistics computes the dashboard summary.
func (t *Tracker) Statistics() stats.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.New(t.settings, t.ledger).Summary()
}

// EquityCurve is the start balance followed by each trade's balance in
// chronological order.
func (t *Tracker) EquityCurve() []stats.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.New(t.settings, t.ledger).EquityCurve()
}

// AnalyzeDeviation compares tr with the current strategy settings.
func (t *Tracker) AnalyzeDeviation(tr trade.Trade) []coach.Deviation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return coach.AnalyzeDeviation(t.settings, tr.Breakdown)
}

// Compliant reports the strategy compliance badge for tr. The second value
// is false when tr has no first close.
func (t *Tracker) Compliant(tr trade.Trade) (compliant, applicable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return coach.Compliant(t.settings, tr.Breakdown)
}

// FeedbackFor runs the feedback cascade for tr against the current ledger.
// It is meant for the trade just added.
func (t *Tracker) FeedbackFor(tr trade.Trade) (coach.Feedback, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fb, ok := t.engine.Evaluate(coach.Input{
		Settings: t.settings,
		Trade:    tr,
		Ledger:   t.ledger,
	})
	if ok {
		t.metrics.FeedbackGiven(string(fb.Kind))
		t.log.Debug().Str("trade_id", tr.ID).Str("feedback", string(fb.Kind)).Msg("feedback")
	}
	return fb, ok
}

// Page is one page of the trade history.
type Page struct {
	Trades []trade.Trade `json:"trades"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
	Total  int           `json:"total"`
}

// History returns trades newest first, size per page. page is 1-based and
// clamped into [1, Pages]; an empty ledger has one empty page.
func (t *Tracker) History(page, size int) Page {
	t.mu.Lock()
	defer t.mu.Unlock()

	if size <= 0 {
		size = DefaultPageSize
	}

	trades := t.ledger.Chronological()
	total := len(trades)
	pages := int(math.Max(1, math.Ceil(float64(total)/float64(size))))
	page = min(max(page, 1), pages)

	start := total - (page-1)*size
	end := max(start-size, 0)

	out := make([]trade.Trade, 0, start-end)
	for i := start - 1; i >= end; i-- {
		out = append(out, trades[i])
	}
	return Page{Trades: out, Page: page, Pages: pages, Total: total}
}
