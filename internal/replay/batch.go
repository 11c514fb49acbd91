package replay

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/scameye/internal/dom"
	"github.com/nao1215/scameye/internal/flags"
	"github.com/nao1215/scameye/internal/hover"
	"github.com/nao1215/scameye/internal/oracle"
)

// PageLoader turns a target into a document. *Loader implements it.
type PageLoader interface {
	Load(ctx context.Context, target string) (*dom.Document, error)
}

// BatchRunner replays many pages concurrently. Each page gets its own
// Session; flags, oracle and recorder are shared between them.
type BatchRunner struct {
	loader   PageLoader
	flags    flags.Store
	oracle   oracle.Oracle
	recorder hover.Recorder
	cfg      *config
	logger   *slog.Logger
}

// NewBatchRunner creates a BatchRunner. The default concurrency is 4.
func NewBatchRunner(loader PageLoader, fs flags.Store, o oracle.Oracle, rec hover.Recorder, opts ...Option) *BatchRunner {
	cfg := newConfig(opts)
	return &BatchRunner{
		loader:   loader,
		flags:    fs,
		oracle:   o,
		recorder: rec,
		cfg:      cfg,
		logger:   cfg.logger,
	}
}

// Run replays targets with at most the configured number in flight.
// Results are in the order of targets. A page that fails to load or
// replay is reported through PageResult.Error and does not stop the
// others. The returned error is non-nil only when ctx is cancelled.
func (b *BatchRunner) Run(ctx context.Context, targets []string) ([]PageResult, error) {
	b.logger.Info("starting batch replay",
		"total_pages", len(targets),
		"concurrency", b.cfg.concurrency,
	)
	start := time.Now()

	// Each goroutine owns results[i], so no lock is needed.
	results := make([]PageResult, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = PageResult{Page: target, Error: err.Error()}
				return err
			}
			results[i] = b.runOne(ctx, target)
			return ctx.Err()
		})
	}

	err := g.Wait()
	b.logger.Info("batch replay completed",
		"total_pages", len(targets),
		"duration", time.Since(start),
	)
	return results, err
}

func (b *BatchRunner) runOne(ctx context.Context, target string) PageResult {
	res := PageResult{Page: target}

	doc, err := b.loader.Load(ctx, target)
	if err != nil {
		b.logger.Warn("failed to load page", "page", target, "error", err)
		res.Error = err.Error()
		return res
	}

	obs, err := newSession(doc, b.flags, b.oracle, b.recorder, b.cfg).Run(ctx)
	res.Observations = obs
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
