package report

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer outputs a dashboard.
type Writer interface {
	// Write renders d and returns the number of bytes written.
	Write(d *Dashboard) (int, error)
}

// MultiWriter writes the same dashboard to several Writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs d to every Writer and stops at the first error.
func (m *MultiWriter) Write(d *Dashboard) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(d)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures the text writers.
type Option func(*baseWriter)

// WithLanguage sets the language used for number formatting.
func WithLanguage(tag language.Tag) Option {
	return func(b *baseWriter) {
		b.printer = message.NewPrinter(tag)
	}
}

// WithShowSkipped lists links that were never looked up.
func WithShowSkipped(show bool) Option {
	return func(b *baseWriter) {
		b.showSkipped = show
	}
}

// baseWriter holds what the text writers share.
type baseWriter struct {
	output      io.Writer
	printer     *message.Printer
	showSkipped bool
}

func newBaseWriter(output io.Writer, opts []Option) baseWriter {
	b := baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// count formats n with the language's digit grouping.
func (b *baseWriter) count(n int64) string {
	return b.printer.Sprintf("%d", n)
}

// percent formats a ratio already scaled to 0-100.
func (b *baseWriter) percent(p float64) string {
	return b.printer.Sprintf("%.1f%%", p)
}

// truncateString shortens s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
