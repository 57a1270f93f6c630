// Package config loads fuzzfind configuration files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the tool configuration.
type Config struct {
	// CaseSensitive enables case-sensitive matching.
	CaseSensitive bool `toml:"case_sensitive"`

	// PathMode scores path-segment starts as first letters.
	PathMode bool `toml:"path_mode"`

	// Workers is the parallel matching worker count; 0 means all CPUs.
	Workers int `toml:"workers"`

	// Limit is the maximum number of results to display.
	Limit int `toml:"limit"`

	// IncludeDirs adds directories to the candidate set.
	IncludeDirs bool `toml:"include_dirs"`

	// MaxScanSeconds bounds the directory walk; 0 means no budget.
	MaxScanSeconds float64 `toml:"max_scan_seconds"`

	// JSONLog switches logging to JSON output.
	JSONLog bool `toml:"json_log"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		PathMode: true,
		Limit:    20,
	}
}

// Load reads a TOML config file, applying defaults for absent fields.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config: read %q", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: parse %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the matcher and scanner cannot use.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.Newf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.Limit <= 0 {
		return errors.Newf("config: limit must be > 0, got %d", c.Limit)
	}
	if c.MaxScanSeconds < 0 {
		return errors.Newf("config: max_scan_seconds must be >= 0, got %g", c.MaxScanSeconds)
	}
	return nil
}
