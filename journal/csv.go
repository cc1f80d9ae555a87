package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/rtracker/stats"
	"github.com/rustyeddy/rtracker/trade"
)

// CSVJournal writes trades and the equity curve to two CSV files.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

var (
	tradesHeader = []string{"trade_id", "created_at", "result", "kind", "profit_loss", "balance", "first_close_r", "first_close_pct", "runner_close_r", "total_pct", "notes"}
	equityHeader = []string{"index", "time", "balance"}
)

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := writeHeader(tw, tradesHeader); err != nil {
		_ = tf.Close()
		_ = ef.Close()
		return nil, err
	}
	if err := writeHeader(ew, equityHeader); err != nil {
		_ = tf.Close()
		_ = ef.Close()
		return nil, err
	}

	return &CSVJournal{tw, ew, tf, ef}, nil
}

func writeHeader(w *csv.Writer, header []string) error {
	if err := w.Write(header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordTrade(t trade.Trade) error {
	var firstR, firstPct, runnerR, totalPct string
	var kind trade.Kind
	if t.Breakdown != nil {
		kind = t.Breakdown.Kind()
	}

	switch b := t.Breakdown.(type) {
	case trade.WinBreakdown:
		firstR, firstPct, runnerR = f(b.FirstCloseR), f(b.FirstClosePct), f(b.RunnerCloseR)
	case trade.BreakEvenBreakdown:
		firstR, firstPct = f(b.FirstCloseR), f(b.FirstClosePct)
	case trade.MultiCloseBreakdown:
		totalPct = f(b.TotalPct)
	case trade.LossBreakdown:
	}

	if err := j.trades.Write([]string{
		t.ID,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.Result.String(),
		string(kind),
		f(t.ProfitLoss),
		f(t.Balance),
		firstR,
		firstPct,
		runnerR,
		totalPct,
		t.Notes,
	}); err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(p stats.Point) error {
	ts := ""
	if !p.Time.IsZero() {
		ts = p.Time.UTC().Format(time.RFC3339)
	}
	err := j.equity.Write([]string{
		strconv.Itoa(p.Index),
		ts,
		f(p.Balance),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	if err := j.ef.Close(); err != nil {
		return err
	}
	return nil
}

// ExportCSV writes trades and curve in one go.
func ExportCSV(tradesPath, equityPath string, trades []trade.Trade, curve []stats.Point) error {
	j, err := NewCSV(tradesPath, equityPath)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := j.RecordTrade(t); err != nil {
			_ = j.Close()
			return err
		}
	}
	for _, p := range curve {
		if err := j.RecordEquity(p); err != nil {
			_ = j.Close()
			return err
		}
	}
	return j.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
