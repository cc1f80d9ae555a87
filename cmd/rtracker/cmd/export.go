package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/journal"
	"github.com/rustyeddy/rtracker/ledger"
	"github.com/rustyeddy/rtracker/risk"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades and the equity curve",
	Long: `Export the journal for spreadsheets, Emacs org-mode or as a chart.

Subcommands:
  csv   - Trades and equity curve as two CSV files
  org   - Trades as org-mode entries
  chart - Equity curve as a PNG chart

Examples:
  rtracker export csv --trades trades.csv --equity equity.csv
  rtracker export org --output journal.org
  rtracker export chart --output equity.png`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export trades and the equity curve as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportOrgCmd = &cobra.Command{
	Use:   "org",
	Short: "Export trades as org-mode entries",
	Args:  cobra.NoArgs,
	RunE:  runExportOrg,
}

var exportChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the equity curve as a PNG chart",
	Args:  cobra.NoArgs,
	RunE:  runExportChart,
}

var (
	exportTradesPath string
	exportEquityPath string
	exportOrgPath    string
	exportChartPath  string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd, exportOrgCmd, exportChartCmd)

	exportCSVCmd.Flags().StringVar(&exportTradesPath, "trades", "trades.csv", "trades CSV output path")
	exportCSVCmd.Flags().StringVar(&exportEquityPath, "equity", "equity.csv", "equity curve CSV output path")
	exportOrgCmd.Flags().StringVarP(&exportOrgPath, "output", "o", "-", "org output path, - for stdout")
	exportChartCmd.Flags().StringVarP(&exportChartPath, "output", "o", "equity.png", "PNG output path")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	trades := ledger.Chronological(t.Trades())
	if err := journal.ExportCSV(exportTradesPath, exportEquityPath, trades, t.EquityCurve()); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d trades to %s and the equity curve to %s\n", len(trades), exportTradesPath, exportEquityPath)
	return nil
}

func runExportOrg(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	org := journal.FormatTradesOrg(ledger.Chronological(t.Trades()))
	if exportOrgPath == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), org)
		return nil
	}
	if err := os.WriteFile(exportOrgPath, []byte(org), 0644); err != nil {
		return fmt.Errorf("write org: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", exportOrgPath)
	return nil
}

func runExportChart(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	s := t.Settings()
	target := s.InitialCapital + risk.TargetProfit(s)
	if err := journal.WriteEquityChart(exportChartPath, t.EquityCurve(), target); err != nil {
		return fmt.Errorf("export chart: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", exportChartPath)
	return nil
}
