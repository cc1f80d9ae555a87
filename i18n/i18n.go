// Package i18n renders coach feedback and deviations as localized text.
// Messages live in embedded TOML catalogs, one per language.
package i18n

import (
	"embed"
	"fmt"
	"math"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/rtracker/coach"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Supported lists the catalogs shipped with the binary.
var Supported = []string{"en-US", "tr-TR"}

// DefaultLang is used when no language is configured.
const DefaultLang = "en-US"

// Message is a rendered title and body.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Renderer turns typed coach records into text for one language and currency.
type Renderer struct {
	lang      language.Tag
	localizer *goi18n.Localizer
	printer   *message.Printer
	currency  currency.Unit
}

// NewBundle loads every embedded catalog.
func NewBundle() (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.AmericanEnglish)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, l := range Supported {
		filename := fmt.Sprintf("locales/%s.toml", l)
		if _, err := bundle.LoadMessageFileFS(localeFS, filename); err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}
	}
	return bundle, nil
}

// New returns a Renderer for lang (a BCP 47 tag such as "tr-TR") formatting
// money in the ISO 4217 currency code cur.
func New(lang, cur string) (*Renderer, error) {
	if lang == "" {
		lang = DefaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", lang, err)
	}
	unit, err := currency.ParseISO(cur)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", cur, err)
	}

	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}

	return &Renderer{
		lang:      tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), DefaultLang),
		printer:   message.NewPrinter(tag),
		currency:  unit,
	}, nil
}

// Lang is the language tag the renderer was built for.
func (r *Renderer) Lang() string {
	return r.lang.String()
}

// Money formats v with locale digit grouping followed by the currency code.
func (r *Renderer) Money(v float64) string {
	return r.printer.Sprintf("%.2f", v) + " " + r.currency.String()
}

// Number formats v with the given number of decimals.
func (r *Renderer) Number(v float64, decimals int) string {
	return r.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// RenderFeedback renders fb. A strategy deviation renders its deviation.
func (r *Renderer) RenderFeedback(fb coach.Feedback) (Message, error) {
	switch fb.Kind {
	case coach.StrategyDeviation:
		if fb.Deviation == nil {
			return Message{}, fmt.Errorf("feedback %s without deviation", fb.Kind)
		}
		return r.RenderDeviation(*fb.Deviation)

	case coach.TargetReached:
		return r.message("feedback_target_reached", map[string]any{
			"Growth": r.Number(fb.TargetGrowthPct, 0),
			"Net":    r.Money(fb.NetProfit),
		})

	case coach.BigRunner:
		return r.message("feedback_big_runner", map[string]any{
			"R":      r.Number(fb.RiskMultiple, 1),
			"Offset": fb.LossesOffset,
			"PL":     r.Money(fb.ProfitLoss),
		})

	case coach.LossStreak:
		return r.message("feedback_loss_streak", map[string]any{
			"Count": fb.ConsecutiveLosses,
		})

	case coach.LowRunnerPotential:
		return r.message("feedback_low_runner_potential", map[string]any{
			"BE":  fb.BreakEvens,
			"Avg": r.Number(fb.AverageRiskMultiple, 2),
		})

	case coach.GoodWin:
		return r.message("feedback_good_win", map[string]any{
			"R":         r.Number(fb.RiskMultiple, 1),
			"PL":        r.Money(fb.ProfitLoss),
			"Remaining": r.Money(math.Max(fb.RemainingProfit, 0)),
		})
	}
	return Message{}, fmt.Errorf("unknown feedback kind %q", fb.Kind)
}

// RenderDeviation renders one deviation finding.
func (r *Renderer) RenderDeviation(d coach.Deviation) (Message, error) {
	switch d.Kind {
	case coach.EarlyClose:
		actualNet, targetNet := d.NetAfterNextLoss()
		return r.message("deviation_early_close", map[string]any{
			"Realized":     r.Number(d.Realized, 1),
			"Target":       r.Number(d.Target, 1),
			"Actual":       r.Money(d.ActualLocked),
			"TargetLocked": r.Money(d.TargetLocked),
			"Risk":         r.Money(d.RiskAmount),
			"ActualNet":    r.Money(actualNet),
			"TargetNet":    r.Money(targetNet),
			"Cost":         r.Money(d.OpportunityCost),
		})

	case coach.Aggressive:
		return r.message("deviation_aggressive", map[string]any{
			"Realized": r.Number(d.Realized, 1),
			"Target":   r.Number(d.Target, 1),
		})

	case coach.RunnerUpside, coach.ExtraSafety:
		return r.message("deviation_"+string(d.Kind), map[string]any{
			"Realized": r.Number(d.Realized, 0),
			"Target":   r.Number(d.Target, 0),
			"Rest":     r.Number(100-d.Realized, 0),
		})
	}
	return Message{}, fmt.Errorf("unknown deviation kind %q", d.Kind)
}

// TradesRemaining renders the estimated trades-to-target status line. A zero
// estimate short of the target means there is nothing to project from.
func (r *Renderer) TradesRemaining(n int, targetReached bool) string {
	if targetReached {
		return r.text("status_target_done", nil, nil)
	}
	if n <= 0 {
		return r.text("status_no_projection", nil, nil)
	}
	return r.text("status_trades_remaining", map[string]any{"Count": n}, n)
}

// Badge renders the strategy compliance badge label.
func (r *Renderer) Badge(compliant bool) string {
	if compliant {
		return r.text("badge_compliant", nil, nil)
	}
	return r.text("badge_deviated", nil, nil)
}

func (r *Renderer) message(id string, data map[string]any) (Message, error) {
	title, err := r.localize(id+"_title", nil, nil)
	if err != nil {
		return Message{}, err
	}
	body, err := r.localize(id+"_body", data, nil)
	if err != nil {
		return Message{}, err
	}
	return Message{Title: title, Body: body}, nil
}

// text falls back to the message id when a lookup fails.
func (r *Renderer) text(id string, data map[string]any, count any) string {
	s, err := r.localize(id, data, count)
	if err != nil {
		return id
	}
	return s
}

func (r *Renderer) localize(id string, data map[string]any, count any) (string, error) {
	s, err := r.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		return "", fmt.Errorf("localize %s: %w", id, err)
	}
	return strings.TrimSpace(s), nil
}
