// Package config provides YAML configuration file loading and validation
// for the netview tool itself: where the network asset tree lives, which
// host the nodes bind to, and transport defaults. Per-network parameters
// (node counts, port bases) live in the network vars file, not here.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "config/netview.yaml"

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	AssetsDir string   `yaml:"assets_dir"` // Root of the net-<N> asset tree (supports ${VAR} expansion)
	Host      string   `yaml:"host"`       // Host all local nodes bind to
	Defaults  Defaults `yaml:"defaults"`   // Transport defaults
}

// Defaults contains transport settings applied to every backend request.
type Defaults struct {
	Timeout    time.Duration `yaml:"timeout"`     // HTTP request timeout (e.g., "10s")
	MaxRetries int           `yaml:"max_retries"` // Maximum retry attempts (0 = no retries)
}

// Default returns the configuration used when no config file exists:
// assets under $NETVIEW_ASSETS (or ./assets), nodes on localhost.
func Default() *Config {
	assets := os.Getenv("NETVIEW_ASSETS")
	if assets == "" {
		assets = "assets"
	}
	return &Config{
		AssetsDir: assets,
		Host:      "127.0.0.1",
		Defaults: Defaults{
			Timeout:    10 * time.Second,
			MaxRetries: 0,
		},
	}
}

// Validate validates the configuration. Strict: every field is required,
// there are no silent fallbacks once a config file is in play.
func (c *Config) Validate() error {
	if c.AssetsDir == "" {
		return fmt.Errorf("assets_dir is required")
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Defaults.Timeout == 0 {
		return fmt.Errorf("defaults.timeout is required")
	}
	if c.Defaults.MaxRetries < 0 {
		return fmt.Errorf("defaults.max_retries must be >= 0")
	}

	const low = 500 * time.Millisecond
	if c.Defaults.Timeout < low {
		fmt.Fprintf(os.Stderr, "Warning: defaults.timeout is very low (%s); requests may fail under normal jitter\n", c.Defaults.Timeout)
	}

	return nil
}

// Load reads and parses a YAML configuration file, expanding ${VAR}
// environment references and validating all fields.
//
// When the file at DefaultPath does not exist, Load falls back to Default()
// so the tool works out of the box against a freshly bootstrapped network.
// An explicitly named config file that is missing is still an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Expand environment variables in the YAML content.
	// This allows entries like: assets_dir: ${HOME}/.netview/assets
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv reads environment variables from a .env file in the current
// working directory and sets them with os.Setenv. Called at the start of
// each command so ${VAR} references in the config file resolve.
//
// File format: KEY=VALUE per line, # comments, optional quoting.
// A missing .env file is not an error; system environment variables still
// apply.
func LoadEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first "=" to handle values that contain "=".
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"'`)
			os.Setenv(key, value)
		}
	}
}
