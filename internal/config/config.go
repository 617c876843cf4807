// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package config defines the configuration file for the jcheck tool.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creachadair/jcheck"
	"github.com/creachadair/jcheck/internal/logutil"
	"gopkg.in/yaml.v3"
)

// Config is the configuration for the jcheck tool.
type Config struct {
	// The maximum nesting depth of arrays and objects. Zero means the
	// library default, and a negative value means no limit.
	MaxDepth int `yaml:"max_depth"`

	// Whether a leading byte order mark is permitted.
	AllowBOM bool `yaml:"allow_bom"`

	// Whether to accept JWCC input (comments and trailing commas) by
	// standardizing it before checking.
	Lenient bool `yaml:"lenient"`

	// Whether to build a syntax tree rather than only validating.
	Tree bool `yaml:"tree"`

	// The minimum level of log output: trace, debug, info, warn, or error.
	// If empty, nothing is logged.
	LogLevel string `yaml:"log_level"`
}

// configNames are the file names searched by FindConfigFile, in order.
var configNames = []string{".jcheck.yml", ".jcheck.yaml", "jcheck.yml", "jcheck.yaml"}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{MaxDepth: jcheck.DefaultMaxDepth}
}

// LoadConfig loads configuration from a YAML file. Settings not named in the
// file retain their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches dir and its parents for a config file, and returns
// the path of the first one found, or "" if there is none.
func FindConfigFile(dir string) string {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Check reports an error if c contains invalid settings.
func (c *Config) Check() error {
	if c.LogLevel != "" {
		if _, err := logutil.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// Logger returns a logger writing to w at the configured level, or nil if no
// level is configured.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	if c.LogLevel == "" {
		return nil, nil
	}
	lvl, err := logutil.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return logutil.NewLogger(w, lvl), nil
}

// Options returns parser options corresponding to c, logging to logger.
func (c *Config) Options(logger *slog.Logger) *jcheck.Options {
	return &jcheck.Options{
		MaxDepth: c.MaxDepth,
		AllowBOM: c.AllowBOM,
		Logger:   logger,
	}
}
