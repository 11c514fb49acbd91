package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/scameye/internal/replay"
)

// MarkdownWriter outputs the dashboard as GitHub-flavoured Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write outputs d in Markdown.
func (w *MarkdownWriter) Write(d *Dashboard) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, d)
	w.writeCounters(md, d)
	for _, page := range d.Pages {
		w.writePage(md, page)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, d *Dashboard) {
	md.H1("ScamEye Dashboard")
	md.PlainText("")

	rows := [][]string{
		{"Generated", d.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if d.Version != "" {
		rows = append(rows, []string{"Version", "`" + d.Version + "`"})
	}
	if d.RunID != "" {
		rows = append(rows, []string{"Run", "`" + d.RunID + "`"})
	}
	if len(d.Pages) > 0 {
		rows = append(rows, []string{"Pages Replayed", w.count(int64(len(d.Pages)))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCounters(md *markdown.Markdown, d *Dashboard) {
	md.H2("Link Statistics")
	md.PlainText("")

	c := d.Counters
	md.Table(markdown.TableSet{
		Header: []string{"Counter", "Value"},
		Rows: [][]string{
			{"🔍 Links Scanned", w.count(c.LinksScanned)},
			{"🔴 Threat Links", w.count(c.ThreatLinks)},
			{"🟢 Safe Links", w.count(c.SafeLinks())},
			{"**Threat Ratio**", "**" + w.percent(d.ThreatRatio()) + "**"},
		},
	})
	md.PlainText("")

	if c.LinksScanned > 0 {
		w.writePieChart(md, d)
	}
	w.writeAlert(md, d)
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, d *Dashboard) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Scanned Links"),
		piechart.WithShowData(true),
	)
	if d.Counters.ThreatLinks > 0 {
		chart.LabelAndIntValue("Threat", uint64(d.Counters.ThreatLinks)) //nolint:gosec // counters are never negative
	}
	if safe := d.Counters.SafeLinks(); safe > 0 {
		chart.LabelAndIntValue("Safe", uint64(safe)) //nolint:gosec // SafeLinks is never negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, d *Dashboard) {
	c := d.Counters
	switch {
	case d.FailedPages() > 0:
		md.Cautionf("%s page(s) could not be replayed.", w.count(int64(d.FailedPages())))
	case c.ThreatLinks > 0:
		md.Warningf("%s of %s scanned link(s) scored above the threat threshold.",
			w.count(c.ThreatLinks), w.count(c.LinksScanned))
	case c.LinksScanned == 0:
		md.Note("No links have been scanned yet.")
	default:
		md.Tip("No threats detected among scanned links.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePage(md *markdown.Markdown, page replay.PageResult) {
	md.H2("Page: " + page.Page)
	md.PlainText("")

	if page.Error != "" {
		md.Importantf("Replay failed: %s", page.Error)
		md.PlainText("")
	}

	var rows [][]string
	for _, obs := range page.Observations {
		if obs.Outcome == replay.OutcomeSkipped && !w.showSkipped {
			continue
		}
		rows = append(rows, []string{
			truncateString(orDash(obs.Link), 60),
			string(obs.Outcome),
			orDash(verdictCell(obs)),
			truncateString(orDash(obs.Resolved), 60),
		})
	}
	if len(rows) == 0 {
		md.PlainText("No links were looked up on this page.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Link", "Outcome", "Verdict", "Resolved"},
		Rows:   rows,
	})
	md.PlainText("")

	if threats := page.Threats(); len(threats) > 0 {
		lines := make([]string, len(threats))
		for i, t := range threats {
			lines[i] = "- `" + t.Link + "` " + t.Verdict
		}
		md.Details(fmt.Sprintf("Threats on this page (%d)", len(threats)), strings.Join(lines, "\n"))
	}
	md.PlainText("")
}

func verdictCell(obs replay.Observation) string {
	if obs.Outcome == replay.OutcomeFiltered {
		return fmt.Sprintf("%d%%", obs.RiskPercent)
	}
	return obs.Verdict
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by ScamEye*")
}
