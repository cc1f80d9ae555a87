package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/rtracker/stats"
)

type fixedSource stats.Summary

func (f fixedSource) Statistics() stats.Summary { return stats.Summary(f) }

func sampleSummary() stats.Summary {
	return stats.Summary{
		Trades:                   4,
		Wins:                     2,
		WinRate:                  50,
		AverageRiskMultiple:      2.375,
		MaxDrawdown:              1,
		ProgressPct:              12.5,
		EstimatedTradesRemaining: 42,
		NetProfit:                500,
		CurrentBalance:           50500,
		RemainingProfit:          3500,
	}
}

func TestCollectorCount(t *testing.T) {
	t.Parallel()

	c := NewCollector("", fixedSource(sampleSummary()))
	assert.Equal(t, 11, testutil.CollectAndCount(c))
}

func TestCollectorValues(t *testing.T) {
	t.Parallel()

	c := NewCollector("test", fixedSource(sampleSummary()))

	expected := `
# HELP test_journal_trades Number of recorded trades
# TYPE test_journal_trades gauge
test_journal_trades 4
# HELP test_journal_win_rate_pct Winning trades as a percentage of all trades
# TYPE test_journal_win_rate_pct gauge
test_journal_win_rate_pct 50
# HELP test_journal_target_reached 1 when net profit has reached the target profit
# TYPE test_journal_target_reached gauge
test_journal_target_reached 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_journal_trades", "test_journal_win_rate_pct", "test_journal_target_reached")
	require.NoError(t, err)
}

func TestCollectorReadsOnEveryScrape(t *testing.T) {
	t.Parallel()

	src := &mutableSource{}
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector("", src))

	src.s.Trades = 1
	assert.Equal(t, 1.0, gatherValue(t, reg, "rtracker_journal_trades"))

	src.s.Trades = 3
	src.s.TargetReached = true
	assert.Equal(t, 3.0, gatherValue(t, reg, "rtracker_journal_trades"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "rtracker_journal_target_reached"))
}

type mutableSource struct{ s stats.Summary }

func (m *mutableSource) Statistics() stats.Summary { return m.s }

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New("", reg)

	m.TradeRecorded("win")
	m.TradeRecorded("win")
	m.TradeRecorded("loss")
	m.TradeRemoved()
	m.FeedbackGiven("big_runner")
	m.StoreError("save_trades")
	m.Reloaded()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TradesRecorded.WithLabelValues("win")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesRecorded.WithLabelValues("loss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Feedback.WithLabelValues("big_runner")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("save_trades")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.TradeRecorded("win")
	m.TradeRemoved()
	m.FeedbackGiven("good_win")
	m.StoreError("load")
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector("", fixedSource(sampleSummary())))

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rtracker_journal_balance 50500")
	assert.Contains(t, string(body), "rtracker_journal_estimated_trades_remaining 42")
}
