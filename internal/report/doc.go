// Package report renders the stats dashboard and replay observations.
//
// Writers:
//   - SimpleWriter: plain text for the terminal
//   - MarkdownWriter: tables, an alert and a mermaid pie chart
//   - JSONWriter: the Dashboard as JSON
//
// Counts are formatted for the writer's language with golang.org/x/text,
// so 12345 prints as "12,345" in English.
package report
