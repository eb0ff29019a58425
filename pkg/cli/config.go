// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyinlola/editcore/pkg/commit"
)

// Config represents the .editcore.yml configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Commit     CommitConfig     `yaml:"commit"`
	FuzzyMatch FuzzyMatchConfig `yaml:"fuzzy_match"`
	Output     OutputConfig     `yaml:"output"`
}

// CommitConfig controls the Commit Engine's default mode, atomicity, and
// backup behavior.
type CommitConfig struct {
	Mode      string `yaml:"mode"` // "best_effort" or "fail_fast"
	Atomic    *bool  `yaml:"atomic"`
	BackupExt string `yaml:"backup_ext"`
}

// IsAtomic reports whether atomic staging is enabled. Defaults to true
// when unset.
func (c CommitConfig) IsAtomic() bool {
	if c.Atomic == nil {
		return true
	}
	return *c.Atomic
}

// ModeValue converts Mode to a commit.Mode, defaulting to best-effort.
func (c CommitConfig) ModeValue() commit.Mode {
	if c.Mode == string(commit.FailFast) {
		return commit.FailFast
	}
	return commit.BestEffort
}

// FuzzyMatchConfig controls the Fuzzy Patch Engine's acceptance
// threshold.
type FuzzyMatchConfig struct {
	Threshold float64 `yaml:"threshold,omitempty"`
}

// OutputConfig controls report output settings.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// LoadConfig reads and parses a .editcore.yml configuration file. If path
// is empty, it looks for .editcore.yml in the current directory. If the
// default config file is not found, sensible defaults are returned. If
// an explicitly specified config file is not found, an error is returned.
func LoadConfig(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = ".editcore.yml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && useDefault {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cli: reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults matching the
// documented .editcore.yml schema.
func DefaultConfig() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Commit.Mode == "" {
		cfg.Commit.Mode = string(commit.BestEffort)
	}
	if cfg.FuzzyMatch.Threshold == 0 {
		cfg.FuzzyMatch.Threshold = 0.6
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "terminal"
	}
}
