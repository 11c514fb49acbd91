package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ScamEye.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scameye",
		Short: "Hover-triggered link risk checks",
		Long: `ScamEye checks links for scam risk when the pointer hovers them.

Each hovered link is sent to a risk-scoring service, and a popup shows
the resolved URL and a colour-coded verdict. The scan command replays
hovers over HTML pages so the same behaviour can be exercised from the
terminal, and the stats command shows how many links were checked.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .scameye in current or home directory)")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory holding the counter database (default: XDG data directory)")
	cmd.PersistentFlags().String("flags-file", "",
		"Feature flag file (default: flags.yaml in the XDG config directory)")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewFlagsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
