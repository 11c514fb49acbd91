package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/scameye/internal/flags"
)

// NewFlagsCmd creates the flags command and its get/set subcommands.
func NewFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Inspect or change the feature flags",
		Long: `The feature flags are read on every hover, so a change applies to the
very next link.

  extensionEnabled   popups are shown at all
  showOnlyRiskyOnes  popups are only shown for scores above 60`,
	}

	cmd.AddCommand(newFlagsGetCmd())
	cmd.AddCommand(newFlagsSetCmd())
	return cmd
}

func newFlagsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the feature flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			f, err := flags.NewFileStore(cfg.FlagsFile).Get(cmd.Context())
			if err != nil {
				return err
			}
			return printFlags(cmd, f)
		},
	}
}

var errNothingToSet = errors.New("nothing to set: give --enabled and/or --risky-only")

func newFlagsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the feature flags",
		Long: `Set changes only the flags that are given.

Examples:
  scameye flags set --enabled
  scameye flags set --risky-only=false
  scameye flags set --enabled=false`,
		Args: cobra.NoArgs,
		RunE: runFlagsSetCmd,
	}

	cmd.Flags().Bool("enabled", false, "Turn the extension on or off")
	cmd.Flags().Bool("risky-only", false, "Only show popups for risky links")
	return cmd
}

func runFlagsSetCmd(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("enabled") && !cmd.Flags().Changed("risky-only") {
		return errNothingToSet
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := flags.NewFileStore(cfg.FlagsFile)

	f, err := store.Get(cmd.Context())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("enabled") {
		if f.ExtensionEnabled, err = cmd.Flags().GetBool("enabled"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("risky-only") {
		if f.ShowOnlyRiskyOnes, err = cmd.Flags().GetBool("risky-only"); err != nil {
			return err
		}
	}

	if err := store.Set(cmd.Context(), f); err != nil {
		return err
	}
	return printFlags(cmd, f)
}

func printFlags(cmd *cobra.Command, f flags.Flags) error {
	out, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
