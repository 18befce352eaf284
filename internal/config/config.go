// Package config loads holdem-equity settings and range archetypes from HCL
// or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/ranges"
)

// Config represents the complete configuration
type Config struct {
	Server     *ServerSettings     `hcl:"server,block" toml:"server"`
	Simulation *SimulationSettings `hcl:"simulation,block" toml:"simulation"`
	Ranges     []RangeConfig       `hcl:"range,block" toml:"range"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional" toml:"address"`
	Port     int    `hcl:"port,optional" toml:"port"`
	LogLevel string `hcl:"log_level,optional" toml:"log_level"`
}

// SimulationSettings controls the equity simulator
type SimulationSettings struct {
	Trials        int   `hcl:"trials,optional" toml:"trials"`
	Workers       int   `hcl:"workers,optional" toml:"workers"`
	Seed          int64 `hcl:"seed,optional" toml:"seed"`
	TimeoutMs     int   `hcl:"timeout_ms,optional" toml:"timeout_ms"`
	ProgressEvery int   `hcl:"progress_every,optional" toml:"progress_every"`
}

// RangeConfig defines an opponent archetype. A name matching a built in
// archetype replaces it.
type RangeConfig struct {
	Name  string   `hcl:"name,label" toml:"name"`
	Hands []string `hcl:"hands" toml:"hands"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Simulation: &SimulationSettings{
			Trials:        equity.DefaultTrials,
			ProgressEvery: 1000,
		},
	}
}

// Load reads configuration from an HCL file, or a TOML file when the name
// ends in ".toml". A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	var config Config
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		if _, err := toml.DecodeFile(filename, &config); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}

		diags = gohcl.DecodeBody(file.Body, nil, &config)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Server == nil {
		c.Server = defaults.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.Server.LogLevel
	}

	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = defaults.Simulation.Trials
	}
	if c.Simulation.ProgressEvery == 0 {
		c.Simulation.ProgressEvery = defaults.Simulation.ProgressEvery
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}

	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("simulation: trials must be positive")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative")
	}
	if c.Simulation.TimeoutMs < 0 {
		return fmt.Errorf("simulation: timeout_ms must not be negative")
	}
	if c.Simulation.ProgressEvery < 0 {
		return fmt.Errorf("simulation: progress_every must not be negative")
	}

	seen := make(map[string]bool, len(c.Ranges))
	for _, r := range c.Ranges {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key == "" {
			return fmt.Errorf("range: name must not be empty")
		}
		if seen[key] {
			return fmt.Errorf("range %s: defined more than once", r.Name)
		}
		seen[key] = true
		if len(r.Hands) == 0 {
			return fmt.Errorf("range %s: at least one hand is required", r.Name)
		}
	}

	if _, err := c.RangeTable(); err != nil {
		return err
	}
	return nil
}

// RangeTable builds the archetype table: the built in archetypes overridden
// and extended by the configured ones.
func (c *Config) RangeTable() (*ranges.Table, error) {
	if len(c.Ranges) == 0 {
		return ranges.DefaultTable(), nil
	}
	defs := make(map[string][]string, len(c.Ranges))
	for _, r := range c.Ranges {
		defs[r.Name] = r.Hands
	}
	return ranges.DefaultTable().Merge(defs)
}

// Address returns the full server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LogLevel returns the configured log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Timeout returns the per-request simulation time limit, zero for none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Simulation.TimeoutMs) * time.Millisecond
}

// EquityConfig returns simulator settings drawn from the configuration
func (c *Config) EquityConfig(table *ranges.Table, logger *log.Logger) equity.Config {
	return equity.Config{
		Ranges:        table,
		Workers:       c.Simulation.Workers,
		Seed:          c.Simulation.Seed,
		DefaultTrials: c.Simulation.Trials,
		MaxDuration:   c.Timeout(),
		ProgressEvery: c.Simulation.ProgressEvery,
		Logger:        logger,
	}
}
