package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every trade and restore the default settings",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the full reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	if err := t.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Journal reset")
	return nil
}
