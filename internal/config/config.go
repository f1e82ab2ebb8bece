// Package config loads ls-ephem configuration from a YAML file with
// environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Query QueryConfig `yaml:"query"`
	HTTP  HTTPConfig  `yaml:"http"`
	App   AppConfig   `yaml:"app"`
}

// QueryConfig holds defaults applied to every ephemeris query.
type QueryConfig struct {
	// Center is the default coordinate origin, e.g. "500@399".
	Center string `yaml:"center"`
	// Email is attached to queries as a service courtesy contact.
	Email string `yaml:"email"`
	// Step is the default sampling interval, e.g. "1 d" or "10 m".
	Step string `yaml:"step"`
}

// Validate validates the query configuration.
func (c *QueryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Email, is.Email),
	)
}

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// HTTPConfig holds transport configuration.
type HTTPConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
	); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("http: timeout must not be negative")
	}
	return nil
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	LogLevel string `yaml:"log_level"`
}

// Validate validates the application configuration.
func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("", "debug", "info", "warn", "error")),
	)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Query.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	return c.App.Validate()
}

// NewDefaultConfig returns a Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Query: QueryConfig{
			Center: "500",
			Step:   "1 d",
		},
		App: AppConfig{
			LogLevel: "info",
		},
	}
}

// Load reads a YAML config file, expanding ${VAR} references from the
// environment before parsing, and validates the result.
func Load(filename string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOptional loads the config file if it exists, falling back to defaults
// when it does not. A missing file is not an error; a broken one is.
func LoadOptional(filename string) (*Config, error) {
	if filename == "" {
		return NewDefaultConfig(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return Load(filename)
}
