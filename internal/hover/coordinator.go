package hover

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nao1215/scameye/internal/dom"
	"github.com/nao1215/scameye/internal/flags"
	"github.com/nao1215/scameye/internal/oracle"
	"github.com/nao1215/scameye/internal/popup"
	"github.com/nao1215/scameye/internal/risk"
)

// State is the coordinator's externally visible state.
type State int

const (
	// Idle means no popup and no lookup pending.
	Idle State = iota
	// LookupInFlight means a lookup is pending and no popup is shown.
	LookupInFlight
	// Showing means a popup is visible.
	Showing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case LookupInFlight:
		return "LookupInFlight"
	case Showing:
		return "Showing"
	default:
		return "Unknown"
	}
}

// Event is a pointer event.
type Event struct {
	// Target is the element the pointer entered or left.
	Target dom.Element

	// Related is the element the pointer came from (enter) or moved to
	// (leave). It may be nil.
	Related dom.Element

	// X and Y are the pointer position in viewport pixels.
	X int
	Y int
}

// Recorder records a displayed result. *stats.Recorder implements it.
type Recorder interface {
	Record(ctx context.Context, riskPercent int)
}

// Coordinator turns pointer events into lookups and popups.
//
// PointerEnter blocks for the duration of the lookup but does not hold the
// coordinator lock while waiting, so events delivered from other
// goroutines are handled in the meantime. Recorder subscribers run while
// the lock is held and must not call back into the Coordinator.
type Coordinator struct {
	flags    flags.Store
	oracle   oracle.Oracle
	recorder Recorder
	popup    *popup.Controller
	logger   *slog.Logger

	latestOnly bool

	mu          sync.Mutex
	token       uint64
	pendingLink string
	inFlight    int
	listeners   map[dom.Element]struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLatestOnly discards any resolution that is not for the most
// recently issued lookup.
func WithLatestOnly(enabled bool) Option {
	return func(c *Coordinator) {
		c.latestOnly = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator wires the collaborators together.
func NewCoordinator(fs flags.Store, o oracle.Oracle, rec Recorder, pc *popup.Controller, opts ...Option) *Coordinator {
	c := &Coordinator{
		flags:     fs,
		oracle:    o,
		recorder:  rec,
		popup:     pc,
		listeners: make(map[dom.Element]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.popup.State().Showing():
		return Showing
	case c.inFlight > 0:
		return LookupInFlight
	default:
		return Idle
	}
}

// ActiveLink returns the link whose popup is showing, or "".
func (c *Coordinator) ActiveLink() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popup.State().ActiveLink()
}

// PointerEnter handles the pointer entering ev.Target. It returns once the
// event has been fully processed, including any lookup it started.
func (c *Coordinator) PointerEnter(ctx context.Context, ev Event) {
	if !present(ev.Target) || !dom.IsAnchor(ev.Target) {
		return
	}
	link := ev.Target.Href()
	if link == "" {
		return
	}

	fl, err := c.flags.Get(ctx)
	if err != nil {
		c.logger.Debug("failed to read feature flags, treating as unset", "error", err)
		fl = flags.Flags{}
	}
	if !fl.ExtensionEnabled {
		return
	}

	c.mu.Lock()
	if link == c.popup.State().ActiveLink() || link == c.pendingLink {
		c.mu.Unlock()
		return
	}
	c.popup.Hide()
	c.token++
	token := c.token
	c.pendingLink = link
	c.inFlight++
	c.mu.Unlock()

	c.logger.Debug("looking up link", "url", link, "seq", token)
	result := c.oracle.Lookup(ctx, link)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if token == c.token {
		c.pendingLink = ""
	}

	if ctx.Err() != nil {
		c.logger.Debug("lookup abandoned", "url", link, "error", ctx.Err())
		return
	}
	if c.latestOnly && token != c.token {
		c.logger.Debug("discarding stale lookup", "url", link, "seq", token, "latest", c.token)
		return
	}
	if fl.ShowOnlyRiskyOnes && result.RiskPercent <= risk.ThreatThreshold {
		c.logger.Debug("link below risk filter", "url", link, "risk", result.RiskPercent)
		return
	}

	tier := risk.Classify(result.RiskPercent)
	// Record and Show stay under mu so a PointerLeave cannot hide the popup
	// between the count and the mount. Leave waits for the store write.
	c.recorder.Record(ctx, result.RiskPercent)
	c.popup.Show(link, result, tier, popup.Point{X: ev.X, Y: ev.Y})
	if c.popup.State().Showing() {
		c.listeners[ev.Target] = struct{}{}
	}
}

// PointerLeave handles the pointer leaving ev.Target for ev.Related.
//
// Anchors that showed a popup carry a one-time leave listener: when the
// pointer leaves such an anchor and its descendants, the listener fires
// once, hides the popup and is removed. Independently, leaving a
// non-anchor element for nothing, or for an element that is neither an
// anchor nor inside the element left, hides the popup.
func (c *Coordinator) PointerLeave(ev Event) {
	if !present(ev.Target) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	related := present(ev.Related)
	fired := false
	for anchor := range c.listeners {
		if !anchor.Contains(ev.Target) {
			continue
		}
		if related && anchor.Contains(ev.Related) {
			continue
		}
		delete(c.listeners, anchor)
		fired = true
	}
	if fired {
		c.popup.Hide()
		return
	}

	if dom.IsAnchor(ev.Target) {
		return
	}
	if !related || (!dom.IsAnchor(ev.Related) && !ev.Target.Contains(ev.Related)) {
		c.popup.Hide()
	}
}

// present reports whether e is a usable element, treating typed nils as absent.
func present(e dom.Element) bool {
	if e == nil {
		return false
	}
	if n, ok := e.(*dom.Node); ok && n == nil {
		return false
	}
	return true
}
