package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the restsuite configuration.
type Config struct {
	BaseURL         string            `yaml:"baseUrl,omitempty"`
	Timeout         int               `yaml:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `yaml:"followRedirects,omitempty"`
	MaxRedirects    int               `yaml:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `yaml:"validateSSL,omitempty"`
	Proxy           string            `yaml:"proxy,omitempty"`
	Headers         map[string]string `yaml:"headers,omitempty"` // Default headers for all requests
	ErrorOnStatus   int               `yaml:"errorOnStatus,omitempty"`
	RateLimit       float64           `yaml:"rateLimit,omitempty"` // requests per second, 0 disables
	Parallel        *bool             `yaml:"parallel,omitempty"`
	NoColor         *bool             `yaml:"noColor,omitempty"`
	History         string            `yaml:"history,omitempty"` // sqlite database path
	Vars            map[string]any    `yaml:"vars,omitempty"`
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true.
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true.
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetParallel returns the parallel setting, defaulting to false.
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetTimeout returns the request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// Filenames contains the possible config file names, in search order.
var Filenames = []string{
	".restsuite.yaml",
	"restsuite.yaml",
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Timeout:       30000,
		MaxRedirects:  10,
		ErrorOnStatus: 400,
	}
}

// Load loads configuration from the specified path, or searches the
// current directory when path is empty. A missing config file is not an
// error; defaults are returned.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	return Find(".")
}

// Find searches for a config file in the given directory.
func Find(dir string) (*Config, error) {
	for _, filename := range Filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return loadFile(path)
		}
	}
	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge merges another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.BaseURL != "" {
		result.BaseURL = other.BaseURL
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.ErrorOnStatus > 0 {
		result.ErrorOnStatus = other.ErrorOnStatus
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.History != "" {
		result.History = other.History
	}

	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(c.Headers)+len(other.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	if len(other.Vars) > 0 {
		vars := make(map[string]any, len(c.Vars)+len(other.Vars))
		for k, v := range c.Vars {
			vars[k] = v
		}
		for k, v := range other.Vars {
			vars[k] = v
		}
		result.Vars = vars
	}

	return &result
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
