package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/risk"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Show win rate, average realized R, max drawdown, progress toward the
growth target and the estimated number of trades remaining.

Examples:
  rtracker stats
  rtracker stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the summary as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	s := t.Statistics()
	out := cmd.OutOrStdout()

	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	r, err := newRenderer()
	if err != nil {
		return err
	}
	settings := t.Settings()

	fmt.Fprintf(out, "Trades:            %d (%d wins)\n", s.Trades, s.Wins)
	fmt.Fprintf(out, "Win rate:          %s%%\n", r.Number(s.WinRate, 1))
	fmt.Fprintf(out, "Average R:         %sR\n", r.Number(s.AverageRiskMultiple, 2))
	fmt.Fprintf(out, "Max drawdown:      %s%%\n", r.Number(s.MaxDrawdown, 2))
	fmt.Fprintf(out, "Risk per trade:    %s\n", r.Money(risk.FixedRiskAmount(settings)))
	fmt.Fprintf(out, "Net profit:        %s\n", r.Money(s.NetProfit))
	fmt.Fprintf(out, "Balance:           %s\n", r.Money(s.CurrentBalance))
	fmt.Fprintf(out, "Avg trade profit:  %s\n", r.Money(s.AverageTradeProfit))
	fmt.Fprintf(out, "Target:            %s (+%s%%)\n", r.Money(s.TargetProfit), r.Number(settings.TargetGrowthPct, 1))
	fmt.Fprintf(out, "Progress:          %s%%\n", r.Number(s.ProgressPct, 1))
	fmt.Fprintf(out, "Remaining:         %s\n", r.Money(max(s.RemainingProfit, 0)))
	fmt.Fprintf(out, "Outlook:           %s\n", r.TradesRemaining(s.EstimatedTradesRemaining, s.TargetReached))
	return nil
}
