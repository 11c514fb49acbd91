package report

import (
	"time"

	"github.com/nao1215/scameye/internal/replay"
	"github.com/nao1215/scameye/internal/stats"
)

// Dashboard is everything a report shows: the persistent counters and,
// after a scan, the replayed pages.
type Dashboard struct {
	// Version is the scameye version that produced the report.
	Version string `json:"version,omitempty"`

	// RunID identifies the scan that produced the report. It is also
	// attached to that scan's log lines.
	RunID string `json:"run_id,omitempty"`

	// GeneratedAt is when the dashboard was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Counters are the lifetime counters after any replay.
	Counters stats.Counters `json:"counters"`

	// Pages are the replayed pages, empty for a plain stats report.
	Pages []replay.PageResult `json:"pages,omitempty"`
}

// NewDashboard assembles a Dashboard stamped with the current time.
func NewDashboard(c stats.Counters, pages []replay.PageResult) *Dashboard {
	return &Dashboard{
		GeneratedAt: time.Now(),
		Counters:    c,
		Pages:       pages,
	}
}

// ThreatRatio returns threat links as a percentage of scanned links.
func (d *Dashboard) ThreatRatio() float64 {
	if d.Counters.LinksScanned == 0 {
		return 0
	}
	return float64(d.Counters.ThreatLinks) * 100 / float64(d.Counters.LinksScanned)
}

// FailedPages returns how many pages could not be replayed.
func (d *Dashboard) FailedPages() int {
	n := 0
	for _, p := range d.Pages {
		if p.Error != "" {
			n++
		}
	}
	return n
}
