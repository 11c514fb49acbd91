package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default endpoint is the local predict service", func(t *testing.T) {
		t.Parallel()
		if cfg.Endpoint != "http://localhost:8000/predict" {
			t.Errorf("expected local predict endpoint, got '%s'", cfg.Endpoint)
		}
	})

	t.Run("default oracle timeout is unset", func(t *testing.T) {
		t.Parallel()
		if cfg.OracleTimeout != 0 {
			t.Errorf("expected no oracle timeout, got %v", cfg.OracleTimeout)
		}
	})

	t.Run("default popup margin is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.PopupMargin != 10 {
			t.Errorf("expected PopupMargin to be 10, got %d", cfg.PopupMargin)
		}
	})

	t.Run("default race policy is last resolved wins", func(t *testing.T) {
		t.Parallel()
		if cfg.LatestOnly {
			t.Error("expected LatestOnly to be false")
		}
	})

	t.Run("default paths live under XDG directories", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
		if !strings.HasPrefix(cfg.FlagsFile, XDGConfigDir()) {
			t.Errorf("expected FlagsFile under %q, got %q", XDGConfigDir(), cfg.FlagsFile)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"https endpoint is valid", func(c *Config) { c.Endpoint = "https://risk.example/predict" }, nil},
		{"relative endpoint", func(c *Config) { c.Endpoint = "/predict" }, ErrInvalidEndpoint},
		{"non-http endpoint", func(c *Config) { c.Endpoint = "ftp://localhost/predict" }, ErrInvalidEndpoint},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, ErrInvalidEndpoint},
		{"negative oracle timeout", func(c *Config) { c.OracleTimeout = -time.Second }, ErrInvalidTimeout},
		{"zero page timeout", func(c *Config) { c.PageTimeout = 0 }, ErrInvalidTimeout},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"json and markdown", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, ErrConflictingReportFormats},
		{"negative page size", func(c *Config) { c.MaxPageSize = -1 }, ErrInvalidMaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidateScan(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if err := cfg.ValidateScan(); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
	cfg.Targets = []string{"page.html"}
	if err := cfg.ValidateScan(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.scameye")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads and applies valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".scameye")
		content := `endpoint: "https://risk.example/predict"
oracleTimeout: "3s"
latestOnly: true
popupMargin: 0
logoUrl: "chrome-extension://abc/logo.png"
dbDir: "/tmp/scameye-db"
flagsFile: "/tmp/scameye-flags.yaml"
concurrency: 2
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		if err := file.Apply(cfg); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}

		if cfg.Endpoint != "https://risk.example/predict" {
			t.Errorf("unexpected endpoint %q", cfg.Endpoint)
		}
		if cfg.OracleTimeout != 3*time.Second {
			t.Errorf("unexpected oracle timeout %v", cfg.OracleTimeout)
		}
		if !cfg.LatestOnly {
			t.Error("expected LatestOnly true")
		}
		if cfg.PopupMargin != 0 {
			t.Errorf("expected explicit zero margin to apply, got %d", cfg.PopupMargin)
		}
		if cfg.LogoURL != "chrome-extension://abc/logo.png" {
			t.Errorf("unexpected logo %q", cfg.LogoURL)
		}
		if cfg.DBDir != "/tmp/scameye-db" || cfg.FlagsFile != "/tmp/scameye-flags.yaml" {
			t.Errorf("unexpected paths %q %q", cfg.DBDir, cfg.FlagsFile)
		}
		if cfg.Concurrency != 2 {
			t.Errorf("unexpected concurrency %d", cfg.Concurrency)
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if cfg.Endpoint != DefaultEndpoint || cfg.PopupMargin != DefaultPopupMargin {
			t.Errorf("expected defaults to survive, got %+v", cfg)
		}
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		t.Parallel()

		err := (&File{OracleTimeout: "soon"}).Apply(NewConfig())
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".scameye")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("endpoint: http://localhost:9000/predict"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
}
