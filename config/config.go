package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Site is one WordPress site to harvest.
type Site struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config represents the structure of ~/.wpharvest/config.yaml.
type Config struct {
	// PageLimit bounds pages fetched per endpoint; -1 means unbounded.
	PageLimit int `yaml:"page_limit"`

	// StopWords are substrings that disqualify a query URL.
	StopWords []string `yaml:"stop_words"`

	// Endpoints are the WordPress document types to collect.
	Endpoints []string `yaml:"endpoints"`

	// Fetcher selects the transport: "http" or "browser".
	Fetcher string `yaml:"fetcher"`

	// Timeout is the per-fetch timeout as a duration string, e.g. "30s".
	Timeout string `yaml:"timeout"`

	// Terms are the search terms to run for each site.
	Terms []string `yaml:"terms"`

	// Sites are the sites to harvest.
	Sites []Site `yaml:"sites"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		PageLimit: -1,
		Endpoints: []string{"pages", "posts"},
		Fetcher:   "http",
		Timeout:   "30s",
	}
}

// DefaultPath returns the default config file location,
// ~/.wpharvest/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".wpharvest", "config.yaml"), nil
}

// Load loads configuration from the given path. A missing file returns the
// defaults, not an error; a file that exists but cannot be parsed is an
// error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FetchTimeout parses the Timeout field, falling back to 30 seconds when
// unset or invalid.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
