package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nao1215/scameye/internal/dom"
)

var (
	// ErrUnexpectedStatus is returned when a page fetch does not answer 2xx.
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrPageTooLarge is returned when a page exceeds the size limit.
	ErrPageTooLarge = errors.New("page exceeds size limit")
)

// Default loader settings.
const (
	DefaultMaxPageSize = 5 * 1024 * 1024
	DefaultPageTimeout = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

// Loader reads pages from local files or http(s) URLs.
type Loader struct {
	client      *http.Client
	maxPageSize int64
	userAgent   string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for remote pages.
func WithHTTPClient(hc *http.Client) LoaderOption {
	return func(l *Loader) {
		if hc != nil {
			l.client = hc
		}
	}
}

// WithMaxPageSize caps the bytes read per page.
func WithMaxPageSize(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxPageSize = n
		}
	}
}

// WithUserAgent sets the User-Agent header for remote pages.
func WithUserAgent(ua string) LoaderOption {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// NewLoader returns a Loader with a 30s client and a 5MB page limit.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:      &http.Client{Timeout: DefaultPageTimeout},
		maxPageSize: DefaultMaxPageSize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether target is fetched over the network.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// Load parses target. Remote pages resolve relative links against their
// final URL after redirects; local files have no base.
func (l *Loader) Load(ctx context.Context, target string) (*dom.Document, error) {
	if IsRemote(target) {
		return l.fetch(ctx, target)
	}

	f, err := os.Open(target) //nolint:gosec // target is a user-supplied page path
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	body, err := l.read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	return dom.Parse(bytes.NewReader(body), "")
}

func (l *Loader) fetch(ctx context.Context, pageURL string) (*dom.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := l.read(resp.Body)
	if err != nil {
		return nil, err
	}

	base := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL.String()
	}
	return dom.Parse(bytes.NewReader(body), base)
}

// read reads at most maxPageSize bytes and fails if there is more.
func (l *Loader) read(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, l.maxPageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	if int64(len(body)) > l.maxPageSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrPageTooLarge, l.maxPageSize)
	}
	return body, nil
}
