package replay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nao1215/scameye/internal/dom"
	"github.com/nao1215/scameye/internal/flags"
	"github.com/nao1215/scameye/internal/hover"
	"github.com/nao1215/scameye/internal/oracle"
	"github.com/nao1215/scameye/internal/popup"
	"github.com/nao1215/scameye/internal/risk"
)

// RowHeight is the vertical distance between synthetic pointer positions.
const RowHeight = 20

// Session replays hovers over a single document.
type Session struct {
	doc    *dom.Document
	coord  *hover.Coordinator
	popup  *popup.Controller
	seen   *capturingOracle
	logger *slog.Logger
}

// config collects Session and BatchRunner options.
type config struct {
	popupOpts   []popup.Option
	hoverOpts   []hover.Option
	logger      *slog.Logger
	concurrency int
}

// Option configures a Session or a BatchRunner.
type Option func(*config)

// WithPopupOptions passes options to the popup controller.
func WithPopupOptions(opts ...popup.Option) Option {
	return func(c *config) {
		c.popupOpts = append(c.popupOpts, opts...)
	}
}

// WithHoverOptions passes options to the hover coordinator.
func WithHoverOptions(opts ...hover.Option) Option {
	return func(c *config) {
		c.hoverOpts = append(c.hoverOpts, opts...)
	}
}

// WithLogger sets the logger used by the session and its collaborators.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithConcurrency sets how many pages a BatchRunner replays at once.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{concurrency: 4}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// NewSession builds a coordinator over doc with a fresh popup state.
func NewSession(doc *dom.Document, fs flags.Store, o oracle.Oracle, rec hover.Recorder, opts ...Option) *Session {
	return newSession(doc, fs, o, rec, newConfig(opts))
}

func newSession(doc *dom.Document, fs flags.Store, o oracle.Oracle, rec hover.Recorder, cfg *config) *Session {
	seen := &capturingOracle{next: o, results: make(map[string]risk.Result)}
	pc := popup.NewController(popup.NewState(), doc,
		append([]popup.Option{popup.WithLogger(cfg.logger)}, cfg.popupOpts...)...)
	coord := hover.NewCoordinator(fs, seen, rec, pc,
		append([]hover.Option{hover.WithLogger(cfg.logger)}, cfg.hoverOpts...)...)

	return &Session{
		doc:    doc,
		coord:  coord,
		popup:  pc,
		seen:   seen,
		logger: cfg.logger,
	}
}

// Coordinator returns the session's coordinator.
func (s *Session) Coordinator() *hover.Coordinator {
	return s.coord
}

// Run hovers every anchor in document order. It stops early, returning
// the observations so far, when ctx is cancelled.
func (s *Session) Run(ctx context.Context) ([]Observation, error) {
	body := s.doc.Body()
	anchors := s.doc.Anchors()
	out := make([]Observation, 0, len(anchors))

	for i, a := range anchors {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		link := a.Href()
		s.seen.forget(link)

		s.coord.PointerEnter(ctx, hover.Event{Target: a, Related: body, X: 0, Y: i * RowHeight})
		if err := ctx.Err(); err != nil {
			return out, err
		}

		out = append(out, s.observe(a, link))
		s.coord.PointerLeave(hover.Event{Target: a, Related: body})
	}
	return out, nil
}

func (s *Session) observe(a *dom.Node, link string) Observation {
	obs := Observation{Link: link, Text: a.Text(), Outcome: OutcomeSkipped}

	result, looked := s.seen.result(link)
	if !looked {
		return obs
	}
	obs.RiskPercent = result.RiskPercent
	obs.Threat = result.IsThreat()

	state := s.popup.State()
	if !state.Showing() || state.ActiveLink() != link {
		obs.Outcome = OutcomeFiltered
		return obs
	}

	shown := popup.Inspect(state.ActivePopup())
	obs.Outcome = OutcomeShown
	obs.Resolved = shown.Resolved
	obs.Verdict = shown.Verdict
	s.logger.Debug("popup shown", "url", link, "verdict", shown.Verdict)
	return obs
}

// capturingOracle remembers the last result returned for each link.
type capturingOracle struct {
	next oracle.Oracle

	mu      sync.Mutex
	results map[string]risk.Result
}

func (c *capturingOracle) Lookup(ctx context.Context, url string) risk.Result {
	r := c.next.Lookup(ctx, url)
	c.mu.Lock()
	c.results[url] = r
	c.mu.Unlock()
	return r
}

func (c *capturingOracle) result(url string) (risk.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[url]
	return r, ok
}

func (c *capturingOracle) forget(url string) {
	c.mu.Lock()
	delete(c.results, url)
	c.mu.Unlock()
}
