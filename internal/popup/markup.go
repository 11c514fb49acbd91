package popup

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/scameye/internal/risk"
)

// ElementID is the id attribute of the popup root.
const ElementID = "scameye-popup"

var errNoRoot = errors.New("popup markup has no root element")

var popupTemplate = template.Must(template.New("popup").Parse(`<div id="{{.ID}}">
  <div style="display: flex; align-items: center; gap: 8px; font-family: Arial, sans-serif; background: white; border-radius: 10px; padding: 12px; position: fixed; top: {{.Top}}px; left: {{.Left}}px; z-index: 9999; box-shadow: 0px 4px 10px rgba(0,0,0,0.2); border-left: 5px solid {{.Color}}; max-width: 280px; word-wrap: break-word; overflow-wrap: break-word;">
    <img src="{{.Logo}}" alt="ScamEye Logo" style="width: 24px; height: 24px;">
    <div style="max-width: 100%;">
      <p style="margin: 0; font-size: 14px; color: #262626; font-weight: bold; white-space: normal;">Checking risk for:</p>
      <div style="margin: 0; font-size: 12px; color: #555; white-space: normal; word-wrap: break-word; overflow-wrap: break-word;">
        <div><strong>Original:</strong> <span class="scameye-original">{{.Original}}</span></div>
        <div><strong>Resolved:</strong> <span class="scameye-resolved">{{.Resolved}}</span></div>
      </div>
      <p class="scameye-verdict" style="margin: 0; font-size: 14px; font-weight: bold; color: {{.Color}}; white-space: normal;">{{.Verdict}}</p>
    </div>
  </div>
</div>`))

// view is the data rendered into popupTemplate.
type view struct {
	ID       string
	Top      int
	Left     int
	Color    template.CSS
	Logo     template.URL
	Original string
	Resolved string
	Verdict  string
}

// Verdict returns the label line shown in the popup, e.g. "Dangerous (75%)".
func Verdict(result risk.Result, tier risk.Tier) string {
	return tier.Label.String() + " (" + strconv.Itoa(result.RiskPercent) + "%)"
}

// build renders the popup and parses it into a detached node tree.
// Link text is escaped; the colour and logo come from trusted sources.
func build(anchorURL string, result risk.Result, tier risk.Tier, at Point, logoURL string) (*html.Node, error) {
	var buf bytes.Buffer
	err := popupTemplate.Execute(&buf, view{
		ID:       ElementID,
		Top:      at.Y,
		Left:     at.X,
		Color:    template.CSS(tier.Color), //nolint:gosec // colour comes from the risk package
		Logo:     template.URL(logoURL),    //nolint:gosec // logo is operator configuration
		Original: anchorURL,
		Resolved: result.ResolvedURL,
		Verdict:  Verdict(result, tier),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render popup: %w", err)
	}

	parent := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(&buf, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse popup markup: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, errNoRoot
}
