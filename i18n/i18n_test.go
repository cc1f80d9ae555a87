package i18n

import (
	"testing"

	"github.com/rustyeddy/rtracker/coach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, lang string) *Renderer {
	t.Helper()
	r, err := New(lang, "TRY")
	require.NoError(t, err)
	return r
}

func TestNewBundleLoadsAllCatalogs(t *testing.T) {
	t.Parallel()

	b, err := NewBundle()
	require.NoError(t, err)
	assert.Len(t, b.LanguageTags(), len(Supported))
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := New("en-US", "NOPE")
	assert.Error(t, err)

	_, err = New("!!", "TRY")
	assert.Error(t, err)
}

func TestDefaultLang(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "")
	assert.Equal(t, "en-US", r.Lang())
}

func TestMoney(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "en-US")
	assert.Equal(t, "1,234.50 TRY", r.Money(1234.5))
	assert.Equal(t, "-250.00 TRY", r.Money(-250))
}

func TestRenderFeedbackEnglish(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "en-US")

	tests := []struct {
		name  string
		fb    coach.Feedback
		title string
		body  []string
	}{
		{
			name:  "target reached",
			fb:    coach.Feedback{Kind: coach.TargetReached, TargetGrowthPct: 8, NetProfit: 4000},
			title: "TARGET REACHED!",
			body:  []string{"8% growth target", "4,000.00 TRY"},
		},
		{
			name:  "big runner",
			fb:    coach.Feedback{Kind: coach.BigRunner, RiskMultiple: 5, LossesOffset: 3, ProfitLoss: 885},
			title: "SUPER RUNNER!",
			body:  []string{"5.0R runner", "3 losses", "+885.00 TRY"},
		},
		{
			name:  "loss streak",
			fb:    coach.Feedback{Kind: coach.LossStreak, ConsecutiveLosses: 4},
			title: "KEEP YOUR DISCIPLINE",
			body:  []string{"4 consecutive losses"},
		},
		{
			name:  "low runner potential",
			fb:    coach.Feedback{Kind: coach.LowRunnerPotential, BreakEvens: 3, AverageRiskMultiple: 2.25},
			title: "INCREASE RUNNER POTENTIAL",
			body:  []string{"(3 BE)", "2.25R"},
		},
		{
			name:  "good win",
			fb:    coach.Feedback{Kind: coach.GoodWin, RiskMultiple: 3, ProfitLoss: 435, RemainingProfit: 3565},
			title: "NICE WIN!",
			body:  []string{"3.0R win", "+435.00 TRY", "3,565.00 TRY left"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, err := r.RenderFeedback(tt.fb)
			require.NoError(t, err)
			assert.Equal(t, tt.title, msg.Title)
			for _, want := range tt.body {
				assert.Contains(t, msg.Body, want)
			}
			assert.NotContains(t, msg.Body, "{{")
		})
	}
}

func TestRenderDeviation(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "en-US")

	msg, err := r.RenderDeviation(coach.Deviation{
		Kind:            coach.EarlyClose,
		Realized:        0.8,
		Target:          1.2,
		RiskAmount:      250,
		ActualLocked:    140,
		TargetLocked:    210,
		OpportunityCost: 70,
	})
	require.NoError(t, err)
	assert.Equal(t, "EARLY CLOSE WARNING!", msg.Title)
	assert.Contains(t, msg.Body, "at 0.8R (target: 1.2R)")
	assert.Contains(t, msg.Body, "140.00 TRY profit - 250.00 TRY loss = -110.00 TRY net")
	assert.Contains(t, msg.Body, "210.00 TRY profit - 250.00 TRY loss = -40.00 TRY net")
	assert.Contains(t, msg.Body, "70.00 TRY less protection")

	msg, err = r.RenderDeviation(coach.Deviation{Kind: coach.RunnerUpside, Realized: 50, Target: 70})
	require.NoError(t, err)
	assert.Equal(t, "MORE RUNNER POTENTIAL", msg.Title)
	assert.Contains(t, msg.Body, "closed 50% of the position (target: 70%)")
	assert.Contains(t, msg.Body, "remaining 50%")

	msg, err = r.RenderDeviation(coach.Deviation{Kind: coach.Aggressive, Realized: 1.5, Target: 1.2})
	require.NoError(t, err)
	assert.Equal(t, "AGGRESSIVE STRATEGY!", msg.Title)

	msg, err = r.RenderDeviation(coach.Deviation{Kind: coach.ExtraSafety, Realized: 90, Target: 70})
	require.NoError(t, err)
	assert.Equal(t, "MORE GUARANTEED PROFIT", msg.Title)
}

func TestRenderFeedbackDeviationDelegates(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "en-US")
	d := coach.Deviation{Kind: coach.Aggressive, Realized: 1.5, Target: 1.2}

	msg, err := r.RenderFeedback(coach.Feedback{Kind: coach.StrategyDeviation, Deviation: &d})
	require.NoError(t, err)
	assert.Equal(t, "AGGRESSIVE STRATEGY!", msg.Title)

	_, err = r.RenderFeedback(coach.Feedback{Kind: coach.StrategyDeviation})
	assert.Error(t, err)

	_, err = r.RenderFeedback(coach.Feedback{Kind: "bogus"})
	assert.Error(t, err)

	_, err = r.RenderDeviation(coach.Deviation{Kind: "bogus"})
	assert.Error(t, err)
}

func TestTurkish(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "tr-TR")

	msg, err := r.RenderFeedback(coach.Feedback{Kind: coach.LossStreak, ConsecutiveLosses: 3})
	require.NoError(t, err)
	assert.Equal(t, "DİSİPLİNİ SÜRDÜRÜN", msg.Title)
	assert.Contains(t, msg.Body, "3 ardışık kayıp")

	assert.Equal(t, "Hedef tamamlandı!", r.TradesRemaining(0, true))
	assert.Equal(t, "Henüz tahmin yok: ortalama işlem kârı pozitif değil", r.TradesRemaining(0, false))
	assert.Equal(t, "~42 işlem gerekli", r.TradesRemaining(42, false))
	assert.Equal(t, "Stratejiye uygun", r.Badge(true))
}

func TestStatusLinesEnglish(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "en-US")
	assert.Equal(t, "Target complete!", r.TradesRemaining(0, true))
	assert.Equal(t, "No estimate yet: average trade profit is not positive", r.TradesRemaining(0, false))
	assert.Equal(t, "~1 trade needed", r.TradesRemaining(1, false))
	assert.Equal(t, "~42 trades needed", r.TradesRemaining(42, false))
	assert.Equal(t, "Off strategy", r.Badge(false))
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "de-DE")
	msg, err := r.RenderFeedback(coach.Feedback{Kind: coach.LossStreak, ConsecutiveLosses: 3})
	require.NoError(t, err)
	assert.Equal(t, "KEEP YOUR DISCIPLINE", msg.Title)
}
