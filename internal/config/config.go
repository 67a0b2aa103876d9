package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/procsim/pkg/model"
)

// SimConfig holds configuration for one simulation.
type SimConfig struct {
	Policy          string        `yaml:"policy"`           // round-robin or priority
	QuantumSlice    float64       `yaml:"quantum_slice"`    // round-robin slice (default 5)
	PriorityQuantum float64       `yaml:"priority_quantum"` // priority budget (default 1024)
	IOWait          time.Duration `yaml:"io_wait"`          // blocked release delay (default 15s)
	PaceUnit        time.Duration `yaml:"pace_unit"`        // wall time per quantum unit, 0 disables pacing
	MaxTicks        int           `yaml:"max_ticks"`        // 0 means unlimited
}

// DefaultSimConfig returns sensible defaults.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Policy:          string(model.PolicyRoundRobin),
		QuantumSlice:    5,
		PriorityQuantum: 1024,
		IOWait:          15 * time.Second,
	}
}

// PolicyKind returns the parsed policy.
func (c SimConfig) PolicyKind() (model.PolicyKind, error) {
	kind, ok := model.ParsePolicyKind(c.Policy)
	if !ok {
		return "", fmt.Errorf("unknown policy %q", c.Policy)
	}
	return kind, nil
}

// Validate checks ranges and the policy name.
func (c SimConfig) Validate() error {
	var errs []error
	if _, err := c.PolicyKind(); err != nil {
		errs = append(errs, err)
	}
	if c.QuantumSlice <= 0 {
		errs = append(errs, fmt.Errorf("quantum_slice must be positive, got %v", c.QuantumSlice))
	}
	if c.PriorityQuantum <= 0 {
		errs = append(errs, fmt.Errorf("priority_quantum must be positive, got %v", c.PriorityQuantum))
	}
	if c.IOWait < 0 {
		errs = append(errs, fmt.Errorf("io_wait must not be negative, got %v", c.IOWait))
	}
	if c.PaceUnit < 0 {
		errs = append(errs, fmt.Errorf("pace_unit must not be negative, got %v", c.PaceUnit))
	}
	if c.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("max_ticks must not be negative, got %d", c.MaxTicks))
	}
	return errors.Join(errs...)
}

// ServerConfig holds configuration for the procsim server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // Log level: debug, info, warn, error
	LogFormat string `yaml:"log_format"` // Log format: text, json
	DBPath    string `yaml:"db_path"`    // SQLite database path (default ~/.procsim/procsim.db, ":memory:" for testing)
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// File is the on-disk configuration document.
type File struct {
	Simulation SimConfig    `yaml:"simulation"`
	Server     ServerConfig `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{Simulation: DefaultSimConfig(), Server: DefaultServerConfig()}
}

// Load reads a YAML config file and overlays it on the defaults.
// An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
