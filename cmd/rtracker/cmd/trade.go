package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/coach"
	"github.com/rustyeddy/rtracker/i18n"
	"github.com/rustyeddy/rtracker/journal"
	"github.com/rustyeddy/rtracker/tracker"
	"github.com/rustyeddy/rtracker/trade"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record, list and remove trades",
	Long: `Manage the trades in the journal.

Subcommands:
  add   - Record a trade and show the coaching feedback
  rm    - Remove a trade by ID
  list  - List trades, newest first
  show  - Show one trade as an org-mode entry
  clear - Remove every trade

Examples:
  rtracker trade add loss
  rtracker trade add win --first-r 1.2 --first-pct 70 --runner-r 3
  rtracker trade add be --first-r 1.2 --first-pct 70
  rtracker trade add win --close 1:50 --close 3:30 --close 5:20
  rtracker trade list --page 2`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add <win|loss|be>",
	Short: "Record a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeAdd,
}

var tradeRmCmd = &cobra.Command{
	Use:   "rm <trade-id>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRm,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade as an org-mode entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every trade (settings are kept)",
	Args:  cobra.NoArgs,
	RunE:  runTradeClear,
}

var (
	addFirstR   float64
	addFirstPct float64
	addRunnerR  float64
	addCloses   []string
	addNotes    string

	listPage int
	listSize int

	clearYes bool
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd, tradeRmCmd, tradeListCmd, tradeShowCmd, tradeClearCmd)

	f := tradeAddCmd.Flags()
	f.Float64Var(&addFirstR, "first-r", 0, "R multiple of the first close")
	f.Float64Var(&addFirstPct, "first-pct", 0, "percent of the position taken at the first close")
	f.Float64Var(&addRunnerR, "runner-r", 0, "R multiple the runner closed at (wins)")
	f.StringArrayVar(&addCloses, "close", nil, "partial close R:PCT of a multi-close win (repeatable)")
	f.StringVarP(&addNotes, "notes", "n", "", "free-text notes")

	tradeListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number, 1 is newest")
	tradeListCmd.Flags().IntVar(&listSize, "size", 0, "trades per page (default from config)")

	tradeClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "confirm removing every trade")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	result, err := trade.ParseResult(args[0])
	if err != nil {
		return err
	}
	rows, err := parseCloses(addCloses)
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	tr, err := t.AddTrade(result, trade.Params{
		FirstCloseR:   addFirstR,
		FirstClosePct: addFirstPct,
		RunnerCloseR:  addRunnerR,
		Closes:        rows,
	}, addNotes)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	r, err := newRenderer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printTrade(out, r, t, tr)

	fb, ok := t.FeedbackFor(tr)
	if ok {
		msg, err := r.RenderFeedback(fb)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n[%s] %s\n%s\n", fb.Severity, msg.Title, msg.Body)
	}

	devs := t.AnalyzeDeviation(tr)
	if ok && fb.Kind == coach.StrategyDeviation {
		devs = devs[1:]
	}
	for _, d := range devs {
		msg, err := r.RenderDeviation(d)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n[%s] %s\n%s\n", d.Severity, msg.Title, msg.Body)
	}
	return nil
}

func runTradeRm(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	ok, err := t.RemoveTrade(args[0])
	if err != nil {
		return fmt.Errorf("remove trade: %w", err)
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No trade %s\n", args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", args[0])
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	r, err := newRenderer()
	if err != nil {
		return err
	}

	size := listSize
	if size <= 0 {
		size = cfg.Display.PageSize
	}
	page := t.History(listPage, size)

	out := cmd.OutOrStdout()
	if page.Total == 0 {
		fmt.Fprintln(out, "No trades recorded")
		return nil
	}
	for _, tr := range page.Trades {
		printTrade(out, r, t, tr)
	}
	fmt.Fprintf(out, "Page %d/%d (%d trades)\n", page.Page, page.Pages, page.Total)
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	tr, ok := t.Trade(args[0])
	if !ok {
		return fmt.Errorf("no trade %s", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(tr))
	return nil
}

func runTradeClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to clear trades without --yes")
	}
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	if err := t.ClearTrades(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared all trades")
	return nil
}

func printTrade(out io.Writer, r *i18n.Renderer, t *tracker.Tracker, tr trade.Trade) {
	badge := ""
	if compliant, applicable := t.Compliant(tr); applicable {
		badge = "  [" + r.Badge(compliant) + "]"
	}
	fmt.Fprintf(out, "%s  %s  %-5s %-5s  P/L %s  balance %s%s\n",
		tr.ID,
		tr.CreatedAt.Local().Format("2006-01-02 15:04"),
		tr.Result,
		tr.Breakdown.Kind(),
		r.Money(tr.ProfitLoss),
		r.Money(tr.Balance),
		badge,
	)
	if tr.Notes != "" {
		fmt.Fprintf(out, "    %s\n", tr.Notes)
	}
}

// parseCloses parses "R:PCT" partial close specs such as "1.5:40".
func parseCloses(specs []string) ([]trade.Row, error) {
	rows := make([]trade.Row, 0, len(specs))
	for _, arg := range specs {
		rs, ps, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("close %q: want R:PCT", arg)
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rs), 64)
		if err != nil {
			return nil, fmt.Errorf("close %q: R: %w", arg, err)
		}
		p, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(ps), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("close %q: PCT: %w", arg, err)
		}
		rows = append(rows, trade.Row{R: r, Pct: p})
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}
