// Package config provides configuration loading and validation for the
// bcrypt tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/internal/logging"
	"github.com/hasbyte1/go-bcrypt/pool"
)

// Config is the top-level configuration file.
type Config struct {
	Cost    int            `yaml:"cost"`
	Version string         `yaml:"version"`
	Pool    pool.Config    `yaml:"pool"`
	Logging logging.Config `yaml:"logging"`
	Metrics MetricsConfig  `yaml:"metrics"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Listen disables
// it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cost:    bcrypt.DefaultCost,
		Version: string(bcrypt.DefaultVersion),
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Cost < bcrypt.MinCost || c.Cost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("cost: %w: %d", bcrypt.ErrInvalidCost, c.Cost))
	}
	if _, err := bcrypt.ParseVersion(c.Version); err != nil {
		errs = append(errs, fmt.Errorf("version: %w", err))
	}
	if c.Pool.Workers < 0 {
		errs = append(errs, fmt.Errorf("pool.workers: must not be negative, got %d", c.Pool.Workers))
	}
	if c.Pool.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("pool.queue_size: must not be negative, got %d", c.Pool.QueueSize))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// BcryptVersion returns the configured version, accepting "2b" or "b".
func (c Config) BcryptVersion() (bcrypt.Version, error) {
	return bcrypt.ParseVersion(c.Version)
}

// Load reads and parses a configuration file into v. Environment variables
// in the file are expanded first.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Save writes a configuration struct to a file.
func Save(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// validator is implemented by configurations that can check themselves.
type validator interface {
	Validate() error
}

// LoadAndValidate loads a configuration file and validates it if it
// implements validator.
func LoadAndValidate(path string, v any) error {
	if err := Load(path, v); err != nil {
		return err
	}
	if cv, ok := v.(validator); ok {
		return cv.Validate()
	}
	return nil
}

// LoadFile returns Default() overlaid with the file at path. An empty path
// returns the validated defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	if err := LoadAndValidate(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
