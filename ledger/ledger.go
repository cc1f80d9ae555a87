// Package ledger keeps the ordered list of recorded trades and the running
// balance they produce.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/rtracker/pkg/id"
	"github.com/rustyeddy/rtracker/trade"
)

// Store persists the full trade list after every mutation.
type Store interface {
	SaveTrades([]trade.Trade) error
}

// Ledger is insertion ordered. Aggregates are recomputed from the trade list
// on every call; the per-trade Balance is a snapshot taken at insertion.
type Ledger struct {
	initialCapital float64
	trades         []trade.Trade
	store          Store
	now            func() time.Time
	newID          func(time.Time) string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used to stamp trades.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(fn func(time.Time) string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// New returns a ledger seeded with previously persisted trades. store may be
// nil, in which case nothing is persisted.
func New(initialCapital float64, trades []trade.Trade, store Store, opts ...Option) *Ledger {
	l := &Ledger{
		initialCapital: initialCapital,
		trades:         append([]trade.Trade(nil), trades...),
		store:          store,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          id.At,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetInitialCapital changes the baseline used by CurrentBalance. Stored trade
// balances are left untouched.
func (l *Ledger) SetInitialCapital(c float64) {
	l.initialCapital = c
}

// InitialCapital returns the balance baseline.
func (l *Ledger) InitialCapital() float64 {
	return l.initialCapital
}

// Add stamps and appends a trade, then persists the list. On a store failure
// the trade is not kept.
func (l *Ledger) Add(profitLoss float64, b trade.Breakdown, result trade.Result, notes string) (trade.Trade, error) {
	now := l.now()
	t := trade.Trade{
		ID:         l.newID(now),
		CreatedAt:  now,
		Result:     result,
		ProfitLoss: profitLoss,
		Breakdown:  b,
		Balance:    l.CurrentBalance() + profitLoss,
		Notes:      notes,
	}

	l.trades = append(l.trades, t)
	if err := l.persist(); err != nil {
		l.trades = l.trades[:len(l.trades)-1]
		return trade.Trade{}, err
	}
	return t, nil
}

// Remove deletes the trade with the given id. Removing an unknown id is a
// no-op and reports false.
func (l *Ledger) Remove(tradeID string) (bool, error) {
	idx := l.index(tradeID)
	if idx < 0 {
		return false, nil
	}

	prev := l.trades
	l.trades = make([]trade.Trade, 0, len(prev)-1)
	l.trades = append(l.trades, prev[:idx]...)
	l.trades = append(l.trades, prev[idx+1:]...)

	if err := l.persist(); err != nil {
		l.trades = prev
		return false, err
	}
	return true, nil
}

// Clear drops every trade.
func (l *Ledger) Clear() error {
	prev := l.trades
	l.trades = nil
	if err := l.persist(); err != nil {
		l.trades = prev
		return err
	}
	return nil
}

// Get returns the trade with the given id.
func (l *Ledger) Get(tradeID string) (trade.Trade, bool) {
	idx := l.index(tradeID)
	if idx < 0 {
		return trade.Trade{}, false
	}
	return l.trades[idx], true
}

// Len is the number of recorded trades.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns a copy of the trades in insertion order.
func (l *Ledger) Trades() []trade.Trade {
	return append([]trade.Trade(nil), l.trades...)
}

// Chronological returns a copy sorted by CreatedAt; ties keep insertion order.
func (l *Ledger) Chronological() []trade.Trade {
	return Chronological(l.trades)
}

// Last returns the most recently inserted trade.
func (l *Ledger) Last() (trade.Trade, bool) {
	if len(l.trades) == 0 {
		return trade.Trade{}, false
	}
	return l.trades[len(l.trades)-1], true
}

// NetProfit is the sum of every trade's profit/loss.
func (l *Ledger) NetProfit() float64 {
	var sum float64
	for _, t := range l.trades {
		sum += t.ProfitLoss
	}
	return sum
}

// CurrentBalance is initial capital plus net profit.
func (l *Ledger) CurrentBalance() float64 {
	return l.initialCapital + l.NetProfit()
}

func (l *Ledger) index(tradeID string) int {
	for i, t := range l.trades {
		if t.ID == tradeID {
			return i
		}
	}
	return -1
}

func (l *Ledger) persist() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveTrades(l.Trades()); err != nil {
		return fmt.Errorf("save trades: %w", err)
	}
	return nil
}

// Chronological returns a copy of trades sorted by CreatedAt, stable on ties.
func Chronological(trades []trade.Trade) []trade.Trade {
	out := append([]trade.Trade(nil), trades...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
