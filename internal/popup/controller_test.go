package popup

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/nao1215/scameye/internal/dom"
	"github.com/nao1215/scameye/internal/risk"
)

const page = `<html><body><a href="https://bit.ly/x">short</a></body></html>`

func newTestController(t *testing.T, opts ...Option) (*Controller, *dom.Document) {
	t.Helper()

	doc, err := dom.ParseString(page, "")
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewController(NewState(), doc, opts...), doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestControllerShow(t *testing.T) {
	t.Parallel()

	c, doc := newTestController(t, WithLogoURL("chrome-extension://abc/logo.png"))
	result := risk.Result{RiskPercent: 75, ResolvedURL: "https://evil.example"}
	c.Show("https://bit.ly/x", result, risk.Classify(75), Point{X: 100, Y: 40})

	if doc.CountByID(ElementID) != 1 {
		t.Fatalf("expected one popup in document, got %d", doc.CountByID(ElementID))
	}
	if got := c.State().ActiveLink(); got != "https://bit.ly/x" {
		t.Errorf("expected active link to be set, got %q", got)
	}
	if !c.State().Showing() {
		t.Error("expected state to report a popup")
	}

	out := render(t, c.State().ActivePopup())
	for _, want := range []string{
		"Dangerous (75%)",
		"https://bit.ly/x",
		"https://evil.example",
		"top: 50px",
		"left: 110px",
		risk.ColorDangerous,
		`src="chrome-extension://abc/logo.png"`,
		"Checking risk for:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected popup to contain %q\n%s", want, out)
		}
	}
}

func TestControllerShowReplaces(t *testing.T) {
	t.Parallel()

	c, doc := newTestController(t)
	c.Show("https://a.example", risk.Result{RiskPercent: 10, ResolvedURL: "https://a.example"}, risk.Classify(10), Point{})
	first := c.State().ActivePopup()
	c.Show("https://b.example", risk.Result{RiskPercent: 90, ResolvedURL: "https://b.example"}, risk.Classify(90), Point{})

	if doc.CountByID(ElementID) != 1 {
		t.Errorf("expected exactly one popup, got %d", doc.CountByID(ElementID))
	}
	if first.Parent != nil {
		t.Error("expected first popup to be detached")
	}
	if c.State().ActiveLink() != "https://b.example" {
		t.Errorf("expected second link active, got %q", c.State().ActiveLink())
	}
}

func TestControllerHide(t *testing.T) {
	t.Parallel()

	c, doc := newTestController(t)
	c.Hide()
	if c.State().Showing() || c.State().ActiveLink() != "" {
		t.Error("hide on empty state must be a no-op")
	}

	c.Show("https://a.example", risk.Fallback("https://a.example"), risk.Classify(50), Point{})
	c.Hide()
	c.Hide()

	if doc.CountByID(ElementID) != 0 {
		t.Errorf("expected no popup, got %d", doc.CountByID(ElementID))
	}
	if c.State().ActivePopup() != nil || c.State().ActiveLink() != "" {
		t.Error("expected both state fields cleared")
	}
}

func TestControllerEscapesLinks(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	hostile := `https://x.example/"><script>alert(1)</script>`
	c.Show(hostile, risk.Fallback(hostile), risk.Classify(50), Point{})

	n := c.State().ActivePopup()
	found := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			found = true
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	if found {
		t.Error("hovered url must not inject elements into the popup")
	}
}

type failingSurface struct{}

func (failingSurface) Append(*html.Node) error { return errors.New("detached page") }
func (failingSurface) Remove(*html.Node)       {}

func TestControllerMountFailure(t *testing.T) {
	t.Parallel()

	c := NewController(nil, failingSurface{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	c.Show("https://a.example", risk.Fallback("https://a.example"), risk.Classify(50), Point{})

	if c.State().Showing() || c.State().ActiveLink() != "" {
		t.Error("state must stay empty when mounting fails")
	}
}

func TestVerdict(t *testing.T) {
	t.Parallel()

	got := Verdict(risk.Result{RiskPercent: 95}, risk.Classify(95))
	if got != "Highly Dangerous (95%)" {
		t.Errorf("unexpected verdict %q", got)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t)
	link := "https://bit.ly/x"
	c.Show(link, risk.Result{RiskPercent: 75, ResolvedURL: "https://evil.example/login"}, risk.Classify(75), Point{})

	got := Inspect(c.State().ActivePopup())
	want := Rendering{Original: link, Resolved: "https://evil.example/login", Verdict: "Dangerous (75%)"}
	if got != want {
		t.Errorf("Inspect() = %+v, want %+v", got, want)
	}

	if (Inspect(nil) != Rendering{}) {
		t.Error("Inspect(nil) should be empty")
	}
}
