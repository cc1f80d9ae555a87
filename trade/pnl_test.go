package trade

import (
	"math"
	"testing"

	"github.com/rustyeddy/rtracker/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const risk = 250.0 // 50k capital at 0.5%

func TestComputeStandardLoss(t *testing.T) {
	t.Parallel()

	// parameters are ignored for a loss, even invalid ones
	pl, b, err := ComputeStandard(Loss, 9, 500, 9, risk)
	require.NoError(t, err)
	assert.Equal(t, -risk, pl)
	assert.Equal(t, LossBreakdown{Loss: -risk}, b)
}

func TestComputeStandardWin(t *testing.T) {
	t.Parallel()

	pl, b, err := ComputeStandard(Win, 1.2, 70, 3.0, risk)
	require.NoError(t, err)

	w, ok := b.(WinBreakdown)
	require.True(t, ok)
	assert.InDelta(t, 210.0, w.FirstClose, 1e-9)
	assert.InDelta(t, 225.0, w.RunnerClose, 1e-9)
	assert.InDelta(t, 30.0, w.RunnerPct, 1e-9)
	assert.Equal(t, 3.0, w.RunnerCloseR)
	assert.InDelta(t, 435.0, pl, 1e-9)
	assert.InDelta(t, w.FirstClose+w.RunnerClose, pl, 1e-9)
}

func TestComputeStandardBreakEven(t *testing.T) {
	t.Parallel()

	pl, b, err := ComputeStandard(BreakEven, 1.2, 70, 5.0, risk)
	require.NoError(t, err)

	be, ok := b.(BreakEvenBreakdown)
	require.True(t, ok)
	assert.InDelta(t, 210.0, pl, 1e-9)
	assert.Equal(t, 0.0, be.RunnerClose)
	assert.InDelta(t, 30.0, be.RunnerPct, 1e-9)
	assert.InDelta(t, be.FirstClose+be.RunnerClose, pl, 1e-9)
}

func TestComputeStandardPctOutOfRange(t *testing.T) {
	t.Parallel()

	for _, pct := range []float64{-1, 100.5} {
		_, _, err := ComputeStandard(Win, 1.2, pct, 3, risk)
		require.Error(t, err)
		field, ok := validate.Field(err)
		assert.True(t, ok)
		assert.Equal(t, "first_close_pct", field)
	}
}

func TestComputeStandardRejectsNonFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		firstR, pct, runner float64
		field               string
	}{
		{"nan pct", 1.2, math.NaN(), 3, "first_close_pct"},
		{"nan first R", math.NaN(), 70, 3, "first_close_r"},
		{"-inf first R", math.Inf(-1), 70, 3, "first_close_r"},
		{"nan runner", 1.2, 70, math.NaN(), "runner_close_r"},
	}
	for _, tt := range tests {
		pl, b, err := ComputeStandard(Win, tt.firstR, tt.pct, tt.runner, risk)
		require.Error(t, err, tt.name)
		field, ok := validate.Field(err)
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.field, field, tt.name)
		assert.Zero(t, pl, tt.name)
		assert.Nil(t, b, tt.name)
	}
}

func TestComputeStandardInvariant(t *testing.T) {
	t.Parallel()

	cases := []struct{ r, pct, runner float64 }{
		{0.5, 0, 2}, {1, 100, 7}, {1.33, 33.3, 2.71}, {2, 50, 10},
	}
	for _, c := range cases {
		pl, b, err := ComputeStandard(Win, c.r, c.pct, c.runner, risk)
		require.NoError(t, err)
		w := b.(WinBreakdown)
		assert.InDelta(t, c.pct/100*c.r*risk, w.FirstClose, 1e-9)
		assert.InDelta(t, w.FirstClose+w.RunnerClose, pl, 1e-9)
	}
}

func TestComputeMultiClose(t *testing.T) {
	t.Parallel()

	pl, b := ComputeMultiClose([]Row{{R: 1, Pct: 50}, {R: 3, Pct: 30}}, risk)
	m, ok := b.(MultiCloseBreakdown)
	require.True(t, ok)

	assert.InDelta(t, 350.0, pl, 1e-9)
	assert.InDelta(t, 80.0, m.TotalPct, 1e-9)
	require.Len(t, m.Closes, 2)
	assert.Equal(t, 1.0, m.Closes[0].R)
	assert.Equal(t, 50.0, m.Closes[0].Pct)
	assert.InDelta(t, 125.0, m.Closes[0].Profit, 1e-9)
	assert.Equal(t, 3.0, m.Closes[1].R)
	assert.InDelta(t, 225.0, m.Closes[1].Profit, 1e-9)
}

func TestComputeMultiCloseEmpty(t *testing.T) {
	t.Parallel()

	pl, b := ComputeMultiClose(nil, risk)
	m := b.(MultiCloseBreakdown)
	assert.Equal(t, 0.0, pl)
	assert.Equal(t, 0.0, m.TotalPct)
	assert.Empty(t, m.Closes)
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result Result
		params Params
		field  string
	}{
		{"loss needs nothing", Loss, Params{}, ""},
		{"win ok", Win, Params{FirstCloseR: 1.2, FirstClosePct: 70, RunnerCloseR: 3}, ""},
		{"win missing first R", Win, Params{FirstClosePct: 70, RunnerCloseR: 3}, "first_close_r"},
		{"win missing runner", Win, Params{FirstCloseR: 1.2, FirstClosePct: 70}, "runner_close_r"},
		{"win pct over", Win, Params{FirstCloseR: 1.2, FirstClosePct: 120, RunnerCloseR: 3}, "first_close_pct"},
		{"be ok", BreakEven, Params{FirstCloseR: 1, FirstClosePct: 50}, ""},
		{"be negative pct", BreakEven, Params{FirstCloseR: 1, FirstClosePct: -5}, "first_close_pct"},
		{"be with closes", BreakEven, Params{Closes: []Row{{R: 1, Pct: 50}}}, "closes"},
		{"multi ok", Win, Params{Closes: []Row{{R: 1, Pct: 33.3}, {R: 2, Pct: 33.3}, {R: 3, Pct: 33.4}}}, ""},
		{"multi over 100", Win, Params{Closes: []Row{{R: 1, Pct: 60}, {R: 2, Pct: 50}}}, "total_pct"},
		{"multi zero R", Win, Params{Closes: []Row{{R: 0, Pct: 60}}}, "close_r"},
		{"unknown result", Result(7), Params{}, "result"},
		{"win nan first R", Win, Params{FirstCloseR: math.NaN(), FirstClosePct: 70, RunnerCloseR: 3}, "first_close_r"},
		{"win inf first R", Win, Params{FirstCloseR: math.Inf(1), FirstClosePct: 70, RunnerCloseR: 3}, "first_close_r"},
		{"win nan pct", Win, Params{FirstCloseR: 1.2, FirstClosePct: math.NaN(), RunnerCloseR: 3}, "first_close_pct"},
		{"win inf runner", Win, Params{FirstCloseR: 1.2, FirstClosePct: 70, RunnerCloseR: math.Inf(1)}, "runner_close_r"},
		{"be nan pct", BreakEven, Params{FirstCloseR: 1, FirstClosePct: math.NaN()}, "first_close_pct"},
		{"multi nan pct", Win, Params{Closes: []Row{{R: 1, Pct: math.NaN()}}}, "close_pct"},
		{"multi inf R", Win, Params{Closes: []Row{{R: math.Inf(1), Pct: 50}}}, "close_r"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate(tt.result)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			field, ok := validate.Field(err)
			require.True(t, ok, "err=%v", err)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestComputeDispatch(t *testing.T) {
	t.Parallel()

	pl, b, err := Compute(Win, Params{FirstCloseR: 5, Closes: []Row{{R: 1, Pct: 50}, {R: 3, Pct: 30}}}, risk)
	require.NoError(t, err)
	assert.Equal(t, KindMultiClose, b.Kind())
	assert.InDelta(t, 350.0, pl, 1e-9)

	pl, b, err = Compute(Loss, Params{}, risk)
	require.NoError(t, err)
	assert.Equal(t, KindLoss, b.Kind())
	assert.Equal(t, -risk, pl)

	_, _, err = Compute(Win, Params{}, risk)
	assert.Error(t, err)
}

func TestRealizedAndMaxR(t *testing.T) {
	t.Parallel()

	win := WinBreakdown{RunnerCloseR: 3}
	assert.Equal(t, 3.0, RealizedR(win))
	assert.Equal(t, 3.0, MaxR(win))

	_, multi := ComputeMultiClose([]Row{{R: 1, Pct: 50}, {R: 3, Pct: 30}}, risk)
	// (1*50 + 3*30) / 80
	assert.InDelta(t, 1.75, RealizedR(multi), 1e-9)
	assert.Equal(t, 3.0, MaxR(multi))

	_, empty := ComputeMultiClose(nil, risk)
	assert.Equal(t, 0.0, RealizedR(empty))
	assert.Equal(t, 0.0, MaxR(empty))

	assert.Equal(t, 0.0, RealizedR(BreakEvenBreakdown{FirstCloseR: 2}))
	assert.Equal(t, 0.0, MaxR(LossBreakdown{Loss: -1}))

	r, pct, ok := FirstClose(BreakEvenBreakdown{FirstCloseR: 0.8, FirstClosePct: 60})
	assert.True(t, ok)
	assert.Equal(t, 0.8, r)
	assert.Equal(t, 60.0, pct)

	_, _, ok = FirstClose(multi)
	assert.False(t, ok)
}
