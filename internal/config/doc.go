// Package config provides configuration structures and utilities for ScamEye.
// It defines the oracle endpoint, storage locations, popup presentation and
// replay settings, and loads overrides from a YAML configuration file.
package config
