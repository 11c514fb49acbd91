package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when scan is given no pages.
	ErrNoTarget = errors.New("no target specified: provide one or more HTML files or page URLs")

	// ErrInvalidEndpoint is returned when the oracle endpoint is not an
	// absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned for a negative oracle timeout or a
	// non-positive page timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: oracle timeout must be non-negative and page timeout positive")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxPageSize is returned when the max page size is negative.
	ErrInvalidMaxPageSize = errors.New("invalid max page size: must be non-negative")
)
