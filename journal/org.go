package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/rtracker/trade"
)

// FormatTradeOrg renders a Trade as an Org-mode block. Structured facts go in
// the PROPERTIES drawer; the breakdown becomes a table.
func FormatTradeOrg(t trade.Trade) string {
	heading := fmt.Sprintf("** Trade: %s (%s)", t.Result, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", t.CreatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":RESULT: %s\n", t.Result))
	b.WriteString(fmt.Sprintf(":PROFIT_LOSS: %.2f\n", t.ProfitLoss))
	b.WriteString(fmt.Sprintf(":BALANCE: %.2f\n", t.Balance))
	b.WriteString(":END:\n")
	b.WriteString("\n")

	b.WriteString("*** Breakdown\n")
	b.WriteString("| Part | R | % | P/L |\n")
	b.WriteString("|------+---+---+-----|\n")
	switch v := t.Breakdown.(type) {
	case trade.LossBreakdown:
		b.WriteString(fmt.Sprintf("| Stop loss | -1.00 | 100 | %.2f |\n", v.Loss))
	case trade.BreakEvenBreakdown:
		b.WriteString(fmt.Sprintf("| First close | %.2f | %.0f | %.2f |\n", v.FirstCloseR, v.FirstClosePct, v.FirstClose))
		b.WriteString(fmt.Sprintf("| Runner (entry) | 0.00 | %.0f | %.2f |\n", v.RunnerPct, v.RunnerClose))
	case trade.WinBreakdown:
		b.WriteString(fmt.Sprintf("| First close | %.2f | %.0f | %.2f |\n", v.FirstCloseR, v.FirstClosePct, v.FirstClose))
		b.WriteString(fmt.Sprintf("| Runner | %.2f | %.0f | %.2f |\n", v.RunnerCloseR, v.RunnerPct, v.RunnerClose))
	case trade.MultiCloseBreakdown:
		for i, c := range v.Closes {
			b.WriteString(fmt.Sprintf("| Close %d | %.2f | %.0f | %.2f |\n", i+1, c.R, c.Pct, c.Profit))
		}
		b.WriteString(fmt.Sprintf("| Total | | %.0f | %.2f |\n", v.TotalPct, t.ProfitLoss))
	}
	b.WriteString("\n")

	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		b.WriteString("- " + t.Notes + "\n")
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
