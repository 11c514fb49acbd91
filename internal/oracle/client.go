package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/nao1215/scameye/internal/risk"
)

const (
	// DefaultEndpoint is the local scoring service.
	DefaultEndpoint = "http://localhost:8000/predict"

	// maxResponseSize bounds how much of a response body is decoded.
	maxResponseSize = 1 << 20
)

var (
	// errBadStatus marks a non-2xx response.
	errBadStatus = errors.New("unexpected status from oracle")

	// errMalformed marks a body that is not the expected JSON object.
	errMalformed = errors.New("malformed oracle response")
)

// Oracle resolves a risk result for a URL. It never fails; unusable answers
// become risk.Fallback.
type Oracle interface {
	Lookup(ctx context.Context, url string) risk.Result
}

// predictRequest is the request body.
type predictRequest struct {
	URL string `json:"url"`
}

// predictResponse is the response body. Both fields are optional.
type predictResponse struct {
	Risk *float64 `json:"risk"`
	URL  *string  `json:"url"`
}

// Client is the HTTP implementation of Oracle.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a timeout on the default HTTP client. Zero leaves the
// transport default in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Endpoint returns the scoring endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Lookup asks the oracle to score url.
func (c *Client) Lookup(ctx context.Context, url string) risk.Result {
	result, err := c.predict(ctx, url)
	if err != nil {
		c.logger.Debug("oracle lookup failed, using fallback",
			"url", url,
			"endpoint", c.endpoint,
			"error", err,
		)
		return risk.Fallback(url)
	}
	return result
}

// predict performs the request and decodes the answer, substituting
// defaults for missing fields.
func (c *Client) predict(ctx context.Context, url string) (risk.Result, error) {
	body, err := json.Marshal(predictRequest{URL: url})
	if err != nil {
		return risk.Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return risk.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return risk.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize)) //nolint:errcheck // best effort
		return risk.Result{}, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	var pr predictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&pr); err != nil {
		return risk.Result{}, fmt.Errorf("%w: %w", errMalformed, err)
	}

	result := risk.Fallback(url)
	if pr.Risk != nil {
		if math.IsNaN(*pr.Risk) || math.IsInf(*pr.Risk, 0) {
			return risk.Result{}, fmt.Errorf("%w: risk is not finite", errMalformed)
		}
		result.RiskPercent = toPercent(*pr.Risk)
	}
	if pr.URL != nil && *pr.URL != "" {
		result.ResolvedURL = *pr.URL
	}
	return result, nil
}

// toPercent rounds v to an int. Values beyond the int32 range saturate so
// the sign, and with it the tier, survives the conversion.
func toPercent(v float64) int {
	v = math.Round(v)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}
