package coach

import (
	"testing"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardWin(t *testing.T, first, pct, runner float64) trade.Breakdown {
	t.Helper()
	_, b, err := trade.ComputeStandard(trade.Win, first, pct, runner, 250)
	require.NoError(t, err)
	return b
}

func TestEarlyCloseDeviation(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings() // 1.2R @ 70%
	devs := AnalyzeDeviation(s, standardWin(t, 0.8, 70, 3))

	require.Len(t, devs, 1)
	d := devs[0]
	assert.Equal(t, EarlyClose, d.Kind)
	assert.Equal(t, SeverityHigh, d.Severity)
	assert.InDelta(t, -0.4, d.Delta, 1e-9)
	assert.InDelta(t, 140.0, d.ActualLocked, 1e-9)
	assert.InDelta(t, 210.0, d.TargetLocked, 1e-9)
	assert.InDelta(t, 70.0, d.OpportunityCost, 1e-9)
	assert.Equal(t, 250.0, d.RiskAmount)

	actual, target := d.NetAfterNextLoss()
	assert.InDelta(t, -110.0, actual, 1e-9)
	assert.InDelta(t, -40.0, target, 1e-9)
}

func TestAggressiveDeviation(t *testing.T) {
	t.Parallel()

	devs := AnalyzeDeviation(config.DefaultSettings(), standardWin(t, 1.5, 70, 3))
	require.Len(t, devs, 1)
	assert.Equal(t, Aggressive, devs[0].Kind)
	assert.Equal(t, SeverityMedium, devs[0].Severity)
	assert.Zero(t, devs[0].OpportunityCost)
}

func TestPctDeviations(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings()

	devs := AnalyzeDeviation(s, standardWin(t, 1.2, 50, 3))
	require.Len(t, devs, 1)
	assert.Equal(t, RunnerUpside, devs[0].Kind)
	assert.Equal(t, SeverityInfo, devs[0].Severity)
	assert.InDelta(t, -20.0, devs[0].Delta, 1e-9)

	devs = AnalyzeDeviation(s, standardWin(t, 1.2, 90, 3))
	require.Len(t, devs, 1)
	assert.Equal(t, ExtraSafety, devs[0].Kind)
}

func TestDeviationOrderRiskMultipleFirst(t *testing.T) {
	t.Parallel()

	_, be, err := trade.ComputeStandard(trade.BreakEven, 0.5, 40, 0, 250)
	require.NoError(t, err)

	devs := AnalyzeDeviation(config.DefaultSettings(), be)
	require.Len(t, devs, 2)
	assert.Equal(t, EarlyClose, devs[0].Kind)
	assert.Equal(t, RunnerUpside, devs[1].Kind)
}

func TestDeviationBoundaries(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings()
	// exactly on the tolerance is not a deviation
	assert.Empty(t, AnalyzeDeviation(s, trade.WinBreakdown{FirstCloseR: 1.4, FirstClosePct: 80}))
	assert.Empty(t, AnalyzeDeviation(s, trade.WinBreakdown{FirstCloseR: 1.2, FirstClosePct: 60}))
	assert.Empty(t, AnalyzeDeviation(s, trade.BreakEvenBreakdown{FirstCloseR: 1.3, FirstClosePct: 75}))
}

func TestDeviationExemptVariants(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings()
	_, multi := trade.ComputeMultiClose([]trade.Row{{R: 0.2, Pct: 10}}, 250)

	assert.Nil(t, AnalyzeDeviation(s, multi))
	assert.Nil(t, AnalyzeDeviation(s, trade.LossBreakdown{Loss: -250}))
	assert.Nil(t, AnalyzeDeviation(s, nil))
}

func TestCompliant(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings()

	ok, applies := Compliant(s, trade.WinBreakdown{FirstCloseR: 1.25, FirstClosePct: 72})
	assert.True(t, applies)
	assert.True(t, ok)

	ok, applies = Compliant(s, trade.BreakEvenBreakdown{FirstCloseR: 1.35, FirstClosePct: 70})
	assert.True(t, applies)
	assert.False(t, ok)

	ok, applies = Compliant(s, trade.WinBreakdown{FirstCloseR: 1.2, FirstClosePct: 76})
	assert.True(t, applies)
	assert.False(t, ok)

	_, applies = Compliant(s, trade.LossBreakdown{Loss: -250})
	assert.False(t, applies)
}
