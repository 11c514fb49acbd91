package risk

const (
	// ThreatThreshold is the score above which a link counts as a threat.
	// The same value gates the "show only risky ones" filter.
	ThreatThreshold = 60

	// FallbackPercent is the neutral score used whenever the oracle cannot
	// produce one. It classifies as Risky.
	FallbackPercent = 50
)

// Result is the outcome of one oracle lookup. It lives only as long as the
// popup that displays it.
type Result struct {
	// RiskPercent is the score in the range 0-100.
	RiskPercent int `json:"risk_percent"`

	// ResolvedURL is the canonical destination reported by the oracle,
	// for example the target of a URL shortener.
	ResolvedURL string `json:"resolved_url"`
}

// Fallback returns the neutral result for url.
func Fallback(url string) Result {
	return Result{RiskPercent: FallbackPercent, ResolvedURL: url}
}

// IsThreat reports whether the result should increment the threat counter.
func (r Result) IsThreat() bool {
	return r.RiskPercent > ThreatThreshold
}

// Tier classifies the result.
func (r Result) Tier() Tier {
	return Classify(r.RiskPercent)
}
