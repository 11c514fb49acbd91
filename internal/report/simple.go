package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/scameye/internal/replay"
)

const ruleWidth = 70

// SimpleWriter outputs the dashboard as plain text.
type SimpleWriter struct {
	baseWriter
	title cases.Caser
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...Option) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output, opts),
		title:      cases.Title(language.English),
	}
}

// Write outputs d in human-readable form.
func (w *SimpleWriter) Write(d *Dashboard) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeCounters(&sb, d)
	for _, page := range d.Pages {
		w.writePage(&sb, page)
	}
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                         SCAMEYE DASHBOARD\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeCounters(sb *strings.Builder, d *Dashboard) {
	fmt.Fprintf(sb, "Links Scanned:  %s\n", w.count(d.Counters.LinksScanned))
	fmt.Fprintf(sb, "Threat Links:   %s\n", w.count(d.Counters.ThreatLinks))
	fmt.Fprintf(sb, "Safe Links:     %s\n", w.count(d.Counters.SafeLinks()))
	fmt.Fprintf(sb, "Threat Ratio:   %s\n", w.percent(d.ThreatRatio()))
	if len(d.Pages) > 0 {
		fmt.Fprintf(sb, "Pages:          %s (%s failed)\n",
			w.count(int64(len(d.Pages))), w.count(int64(d.FailedPages())))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writePage(sb *strings.Builder, page replay.PageResult) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "PAGE: %s\n", page.Page)
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	if page.Error != "" {
		fmt.Fprintf(sb, "  ERROR: %s\n\n", page.Error)
		if len(page.Observations) == 0 {
			return
		}
	}

	for _, obs := range page.Observations {
		if obs.Outcome == replay.OutcomeSkipped && !w.showSkipped {
			continue
		}
		fmt.Fprintf(sb, "  [%s] %s\n", indicator(obs), w.describe(obs))
		if obs.Resolved != "" && obs.Resolved != obs.Link {
			fmt.Fprintf(sb, "        -> %s\n", obs.Resolved)
		}
	}

	fmt.Fprintf(sb, "\n  %s %s, %s %s, %s %s\n\n",
		w.title.String(string(replay.OutcomeShown)), w.count(int64(page.Count(replay.OutcomeShown))),
		w.title.String(string(replay.OutcomeFiltered)), w.count(int64(page.Count(replay.OutcomeFiltered))),
		w.title.String(string(replay.OutcomeSkipped)), w.count(int64(page.Count(replay.OutcomeSkipped))),
	)
}

func (w *SimpleWriter) describe(obs replay.Observation) string {
	switch obs.Outcome {
	case replay.OutcomeShown:
		return fmt.Sprintf("%-24s %s", obs.Verdict, obs.Link)
	case replay.OutcomeFiltered:
		return fmt.Sprintf("%-24s %s", fmt.Sprintf("filtered (%d%%)", obs.RiskPercent), obs.Link)
	default:
		return fmt.Sprintf("%-24s %q", "skipped", obs.Text)
	}
}

// indicator marks threats the way the popup colours do: louder is worse.
func indicator(obs replay.Observation) string {
	switch {
	case obs.Outcome == replay.OutcomeSkipped:
		return "  "
	case obs.Outcome == replay.OutcomeFiltered:
		return "--"
	case obs.Threat:
		return "!!"
	default:
		return "ok"
	}
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by ScamEye\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
