package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scameye"

	// DefaultEndpoint is the local risk-scoring service.
	DefaultEndpoint = "http://localhost:8000/predict"

	// DefaultOracleTimeout of zero leaves the HTTP transport defaults in
	// place; the oracle has no timeout of its own.
	DefaultOracleTimeout = time.Duration(0)

	// DefaultPopupMargin is the popup offset from the pointer in pixels.
	DefaultPopupMargin = 10

	// DefaultLogoURL is the logo image shown in the popup.
	DefaultLogoURL = "logo.png"

	// DefaultConcurrency is the number of pages replayed at once.
	DefaultConcurrency = 4

	// DefaultFlagsFileName is the flag store file inside the config directory.
	DefaultFlagsFileName = "flags.yaml"

	// DefaultPageTimeout bounds fetching a remote page for replay.
	DefaultPageTimeout = 30 * time.Second

	// DefaultMaxPageSize limits how much of a fetched page is read.
	DefaultMaxPageSize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for ScamEye.
// It is populated from the config file and CLI flags and passed down
// explicitly rather than kept in globals.
type Config struct {
	// Endpoint is the risk-scoring URL lookups are POSTed to.
	Endpoint string

	// OracleTimeout is the HTTP client timeout for lookups. Zero means none.
	OracleTimeout time.Duration

	// LatestOnly discards lookup results that are not for the most
	// recently hovered link.
	LatestOnly bool

	// PopupMargin offsets the popup from the pointer.
	PopupMargin int

	// LogoURL is the popup logo image source.
	LogoURL string

	// DBDir is the directory holding the counter database.
	DBDir string

	// FlagsFile is the YAML file holding the feature flags.
	FlagsFile string

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string

	// Concurrency is the number of pages replayed concurrently.
	Concurrency int

	// PageTimeout bounds fetching a remote page.
	PageTimeout time.Duration

	// MaxPageSize limits how much of a fetched page is read.
	MaxPageSize int64

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON output.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Targets are the pages (files or http(s) URLs) to replay.
	Targets []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:      DefaultEndpoint,
		OracleTimeout: DefaultOracleTimeout,
		PopupMargin:   DefaultPopupMargin,
		LogoURL:       DefaultLogoURL,
		DBDir:         XDGDataDir(),
		FlagsFile:     filepath.Join(XDGConfigDir(), DefaultFlagsFileName),
		Concurrency:   DefaultConcurrency,
		PageTimeout:   DefaultPageTimeout,
		MaxPageSize:   DefaultMaxPageSize,
	}
}

// XDGDataDir returns the XDG data directory for ScamEye.
// On Linux: ~/.local/share/scameye
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ScamEye.
// On Linux: ~/.config/scameye
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the settings shared by every command. It returns the
// first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidEndpoint
	}
	if c.OracleTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.PageTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.MaxPageSize < 0 {
		return ErrInvalidMaxPageSize
	}
	return nil
}

// ValidateScan additionally requires at least one target.
func (c *Config) ValidateScan() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	return nil
}
