package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/risk"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the strategy settings",
	Long: `Show or change the capital baseline and the target strategy.

Subcommands:
  show  - Print the current settings
  set   - Change one or more settings
  reset - Restore the default settings

Examples:
  rtracker settings set --capital 75000 --risk 1
  rtracker settings set --target-r 1.5 --lock 60`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Long: `Change the flags given; the others keep their current value.

Bounds:
  --capital  at least 1000
  --growth   1 to 100 percent
  --risk     0.1 to 5 percent`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings (trades are kept)",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var (
	setCapital float64
	setGrowth  float64
	setRisk    float64
	setTargetR float64
	setLock    float64
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)

	f := settingsSetCmd.Flags()
	f.Float64Var(&setCapital, "capital", 0, "initial capital")
	f.Float64Var(&setGrowth, "growth", 0, "target growth in percent")
	f.Float64Var(&setRisk, "risk", 0, "risk per trade in percent of capital")
	f.Float64Var(&setTargetR, "target-r", 0, "target R multiple of the first close")
	f.Float64Var(&setLock, "lock", 0, "target percent of the position taken at the first close")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	return printSettings(cmd.OutOrStdout(), t.Settings())
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	s := t.Settings()
	f := cmd.Flags()
	if f.Changed("capital") {
		s.InitialCapital = setCapital
	}
	if f.Changed("growth") {
		s.TargetGrowthPct = setGrowth
	}
	if f.Changed("risk") {
		s.RiskPerTradePct = setRisk
	}
	if f.Changed("target-r") {
		s.TargetRiskMultiple = setTargetR
	}
	if f.Changed("lock") {
		s.TargetLockPct = setLock
	}

	if err := t.UpdateSettings(s); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Settings updated")
	return printSettings(cmd.OutOrStdout(), s)
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	if err := t.ResetSettings(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Settings reset")
	return printSettings(cmd.OutOrStdout(), t.Settings())
}

func printSettings(out io.Writer, s config.Settings) error {
	r, err := newRenderer()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Initial capital:   %s\n", r.Money(s.InitialCapital))
	fmt.Fprintf(out, "Target growth:     %s%% (%s)\n", r.Number(s.TargetGrowthPct, 1), r.Money(risk.TargetProfit(s)))
	fmt.Fprintf(out, "Risk per trade:    %s%% (%s)\n", r.Number(s.RiskPerTradePct, 2), r.Money(risk.FixedRiskAmount(s)))
	fmt.Fprintf(out, "First close:       %sR, %s%% of the position\n", r.Number(s.TargetRiskMultiple, 1), r.Number(s.TargetLockPct, 0))
	return nil
}
