package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nao1215/scameye/internal/config"
	"github.com/nao1215/scameye/internal/flags"
	"github.com/nao1215/scameye/internal/hover"
	"github.com/nao1215/scameye/internal/oracle"
	"github.com/nao1215/scameye/internal/popup"
	"github.com/nao1215/scameye/internal/replay"
	"github.com/nao1215/scameye/internal/report"
	"github.com/nao1215/scameye/internal/stats"
	"github.com/nao1215/scameye/internal/storage"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [page]...",
		Short: "Replay link hovers over HTML pages",
		Long: `Scan hovers every link of each page in document order, exactly as a
reader moving the pointer over them would.

For each link the risk service is asked for a score, a popup is mounted
into the page, and the link counters are updated. The report lists what
each popup said, followed by the lifetime counters.

Pages are local HTML files or http(s) URLs. The extension must be enabled
with 'scameye flags set --enabled' or every link is skipped.

Examples:
  # Replay a saved page
  scameye scan inbox.html

  # Fetch and replay two pages, four at a time at most
  scameye scan --batch 4 https://example.com/ https://example.org/

  # Use another risk service and a 5s lookup timeout
  scameye scan --endpoint https://risk.example/predict --timeout 5s page.html

  # Markdown report to a file
  scameye scan --markdown -o reports/scan.md page.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Risk-scoring endpoint")
	cmd.Flags().DurationP("timeout", "t", config.DefaultOracleTimeout,
		"Timeout for each risk lookup (0 means none)")
	cmd.Flags().Bool("latest-only", false,
		"Only show the popup for the most recently hovered link")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of pages replayed concurrently")
	cmd.Flags().Duration("page-timeout", config.DefaultPageTimeout,
		"Timeout for fetching a remote page")
	cmd.Flags().Bool("show-skipped", false,
		"List links that were never looked up")
	addReportFlags(cmd)

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateScan(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showSkipped, err := cmd.Flags().GetBool("show-skipped")
	if err != nil {
		return err
	}
	return runScan(ctx, cmd, cfg, report.WithShowSkipped(showSkipped))
}

// buildScanConfig layers the scan flags over loadConfig.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if v, ok := changedFlag(cmd, "endpoint"); ok {
		cfg.Endpoint = v
	}
	if v, ok := changedFlag(cmd, "timeout"); ok {
		if cfg.OracleTimeout, err = time.ParseDuration(v); err != nil {
			return nil, err
		}
	}
	if v, ok := changedFlag(cmd, "latest-only"); ok {
		if cfg.LatestOnly, err = strconv.ParseBool(v); err != nil {
			return nil, err
		}
	}
	if v, ok := changedFlag(cmd, "batch"); ok {
		if cfg.Concurrency, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if cfg.PageTimeout, err = cmd.Flags().GetDuration("page-timeout"); err != nil {
		return nil, err
	}
	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Targets = args
	return cfg, nil
}

// runScan wires the components together and replays cfg.Targets.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts ...report.Option) error {
	runID := uuid.NewString()
	logger := setupLogger(cmd, cfg.Verbose).With("run", runID)

	store, err := storage.OpenSQLite(cfg.DBDir, storage.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	recorder := stats.NewRecorder(store, stats.WithLogger(logger))
	var shown atomic.Int64
	cancel := recorder.Subscribe(func() { shown.Add(1) })
	defer cancel()

	flagStore := flags.NewFileStore(cfg.FlagsFile)
	if f, err := flagStore.Get(ctx); err == nil && !f.ExtensionEnabled {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"Warning: the extension is disabled, every link will be skipped. Run 'scameye flags set --enabled' to turn it on.")
	}

	client := oracle.NewClient(cfg.Endpoint,
		oracle.WithTimeout(cfg.OracleTimeout),
		oracle.WithLogger(logger),
	)
	loader := replay.NewLoader(
		replay.WithHTTPClient(&http.Client{Timeout: cfg.PageTimeout}),
		replay.WithMaxPageSize(cfg.MaxPageSize),
	)
	runner := replay.NewBatchRunner(loader, flagStore, client, recorder,
		replay.WithConcurrency(cfg.Concurrency),
		replay.WithLogger(logger),
		replay.WithPopupOptions(popup.WithMargin(cfg.PopupMargin), popup.WithLogoURL(cfg.LogoURL)),
		replay.WithHoverOptions(hover.WithLatestOnly(cfg.LatestOnly)),
	)

	logger.Info("starting scan",
		"pages", len(cfg.Targets),
		"endpoint", cfg.Endpoint,
		"concurrency", cfg.Concurrency,
	)
	start := time.Now()
	results, runErr := runner.Run(ctx, cfg.Targets)
	logger.Info("scan finished",
		"popups", shown.Load(),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	// Report whatever was replayed, even after an interrupt.
	d := report.NewDashboard(recorder.Snapshot(context.WithoutCancel(ctx)), results)
	d.Version = getVersion()
	d.RunID = runID
	if err := outputReport(cmd, cfg, d, opts...); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return runErr
}
