package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".scameye"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .scameye configuration file. Every field is
// optional; unset fields keep their defaults.
type File struct {
	Endpoint      string `yaml:"endpoint,omitempty"`
	OracleTimeout string `yaml:"oracleTimeout,omitempty"`
	LatestOnly    *bool  `yaml:"latestOnly,omitempty"`
	PopupMargin   *int   `yaml:"popupMargin,omitempty"`
	LogoURL       string `yaml:"logoUrl,omitempty"`
	DBDir         string `yaml:"dbDir,omitempty"`
	FlagsFile     string `yaml:"flagsFile,omitempty"`
	Concurrency   int    `yaml:"concurrency,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every set field of f onto c.
func (f *File) Apply(c *Config) error {
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.OracleTimeout != "" {
		d, err := time.ParseDuration(f.OracleTimeout)
		if err != nil {
			return ErrInvalidTimeout
		}
		c.OracleTimeout = d
	}
	if f.LatestOnly != nil {
		c.LatestOnly = *f.LatestOnly
	}
	if f.PopupMargin != nil {
		c.PopupMargin = *f.PopupMargin
	}
	if f.LogoURL != "" {
		c.LogoURL = f.LogoURL
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.FlagsFile != "" {
		c.FlagsFile = f.FlagsFile
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .scameye in the current directory
// 3. Look for .scameye in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
