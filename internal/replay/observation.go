package replay

// Outcome is what happened when an anchor was hovered.
type Outcome string

const (
	// OutcomeShown means a popup was mounted for the anchor.
	OutcomeShown Outcome = "shown"
	// OutcomeFiltered means the oracle was asked but the result was
	// below the risky-only threshold, or superseded by a later lookup.
	OutcomeFiltered Outcome = "filtered"
	// OutcomeSkipped means no lookup was made: the extension is
	// disabled, or the anchor has no usable href.
	OutcomeSkipped Outcome = "skipped"
)

// Observation records one hovered anchor.
type Observation struct {
	// Link is the anchor's resolved href, empty when it has none.
	Link string `json:"link"`

	// Text is the anchor's visible text.
	Text string `json:"text,omitempty"`

	// Outcome is what the hover produced.
	Outcome Outcome `json:"outcome"`

	// RiskPercent is the oracle's score. Zero when no lookup was made.
	RiskPercent int `json:"risk_percent"`

	// Resolved is the resolved URL shown in the popup.
	Resolved string `json:"resolved,omitempty"`

	// Verdict is the label line shown in the popup.
	Verdict string `json:"verdict,omitempty"`

	// Threat reports whether the score is above the threat threshold.
	Threat bool `json:"threat"`
}

// PageResult is the replay of one page.
type PageResult struct {
	// Page is the file path or URL the page was loaded from.
	Page string `json:"page"`

	// Observations are in document order.
	Observations []Observation `json:"observations"`

	// Error is set when the page could not be loaded or replayed.
	Error string `json:"error,omitempty"`
}

// Count returns how many observations had outcome o.
func (p PageResult) Count(o Outcome) int {
	n := 0
	for _, obs := range p.Observations {
		if obs.Outcome == o {
			n++
		}
	}
	return n
}

// Threats returns the shown observations that were threats.
func (p PageResult) Threats() []Observation {
	var out []Observation
	for _, obs := range p.Observations {
		if obs.Outcome == OutcomeShown && obs.Threat {
			out = append(out, obs)
		}
	}
	return out
}
