package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/scameye/internal/report"
	"github.com/nao1215/scameye/internal/stats"
	"github.com/nao1215/scameye/internal/storage"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the link counters",
		Long: `Stats prints how many links have shown a popup and how many of them
scored above the threat threshold of 60.

Examples:
  scameye stats
  scameye stats --markdown -o dashboard.md
  scameye stats --reset
  scameye stats --watch`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().Bool("reset", false, "Zero both counters before printing")
	cmd.Flags().BoolP("watch", "w", false, "Print the dashboard again whenever the counters change")
	addReportFlags(cmd)

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := readReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}

	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx := cmd.Context()

	store, err := storage.OpenSQLite(cfg.DBDir, storage.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if reset {
		for _, key := range []string{stats.KeyLinksScanned, stats.KeyThreatLinks} {
			if err := store.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to reset counters: %w", err)
			}
		}
		logger.Info("counters reset", "db", store.Path())
	}

	recorder := stats.NewRecorder(store, stats.WithLogger(logger))
	render := func(ctx context.Context) error {
		d := report.NewDashboard(recorder.Snapshot(ctx), nil)
		d.Version = getVersion()
		return outputReport(cmd, cfg, d)
	}
	if !watch {
		return render(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := storage.NewWatcher(cfg.DBDir, storage.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch database: %w", err)
	}
	defer watcher.Close()

	if err := render(ctx); err != nil {
		return err
	}
	logger.Info("watching counters", "db", store.Path())
	err = watcher.Run(ctx, func() {
		if err := render(ctx); err != nil {
			logger.Warn("failed to refresh dashboard", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
