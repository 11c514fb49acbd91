package popup

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/nao1215/scameye/internal/risk"
)

const (
	// DefaultMargin offsets the popup from the pointer, in pixels.
	DefaultMargin = 10

	// DefaultLogoURL is the logo source used when none is configured.
	DefaultLogoURL = "logo.png"
)

// Point is a pointer position in viewport pixels.
type Point struct {
	X int
	Y int
}

// Surface is where popups are mounted, normally a dom.Document body.
type Surface interface {
	Append(n *html.Node) error
	Remove(n *html.Node)
}

// Controller shows and hides the popup.
// It is not safe for concurrent use; the hover coordinator serializes calls.
type Controller struct {
	state   *State
	surface Surface
	logoURL string
	margin  int
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogoURL sets the logo image source.
func WithLogoURL(u string) Option {
	return func(c *Controller) {
		if u != "" {
			c.logoURL = u
		}
	}
}

// WithMargin sets the pointer offset in pixels.
func WithMargin(px int) Option {
	return func(c *Controller) {
		c.margin = px
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a Controller that mounts into surface and keeps
// its bookkeeping in state. A nil state gets a fresh one.
func NewController(state *State, surface Surface, opts ...Option) *Controller {
	if state == nil {
		state = NewState()
	}
	c := &Controller{
		state:   state,
		surface: surface,
		logoURL: DefaultLogoURL,
		margin:  DefaultMargin,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// State returns the controller's state.
func (c *Controller) State() *State {
	return c.state
}

// Show replaces any current popup with one for anchorURL placed at pos
// plus the margin. If the popup cannot be mounted the state stays empty.
func (c *Controller) Show(anchorURL string, result risk.Result, tier risk.Tier, pos Point) {
	c.Hide()

	at := Point{X: pos.X + c.margin, Y: pos.Y + c.margin}
	n, err := build(anchorURL, result, tier, at, c.logoURL)
	if err != nil {
		c.logger.Error("failed to build popup", "url", anchorURL, "error", err)
		return
	}
	if err := c.surface.Append(n); err != nil {
		c.logger.Error("failed to mount popup", "url", anchorURL, "error", err)
		return
	}
	c.state.set(anchorURL, n)
}

// Hide removes the popup if one is mounted.
func (c *Controller) Hide() {
	if c.state.activePopup != nil {
		c.surface.Remove(c.state.activePopup)
	}
	c.state.clear()
}
