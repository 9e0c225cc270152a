// Package config loads the showdown HCL configuration file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/showdown/poker"
)

const (
	DefaultStack      = 200
	DefaultIterations = 100_000
	DefaultLogLevel   = "info"

	MinPlayers = 2
	// MaxPlayers is how many holdings fit in one deck beside a full board.
	MaxPlayers = (poker.DeckSize - poker.CommunitySize) / poker.HoleSize

	maxDefaultWorkers = 8
)

// Config is the complete showdown configuration.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Seed     *int64          `hcl:"seed,optional"`
	History  string          `hcl:"history,optional"`
	Players  []PlayerConfig  `hcl:"player,block"`
	Equity   *EquitySettings `hcl:"equity,block"`
}

// PlayerConfig is one seat at the table, in seating order.
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	Stack int    `hcl:"stack,optional"`
}

// EquitySettings tunes the Monte Carlo equity estimator.
type EquitySettings struct {
	Iterations int `hcl:"iterations,optional"`
	Workers    int `hcl:"workers,optional"`
}

// DefaultWorkers is the CPU count capped at eight.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), maxDefaultWorkers)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{{Name: "alice"}, {Name: "bob"}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills defaults. It does not validate.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(cfg.Players) == 0 {
		cfg.Players = Default().Players
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	for i := range c.Players {
		if c.Players[i].Stack == 0 {
			c.Players[i].Stack = DefaultStack
		}
	}
	if c.Equity == nil {
		c.Equity = &EquitySettings{}
	}
	if c.Equity.Iterations == 0 {
		c.Equity.Iterations = DefaultIterations
	}
	if c.Equity.Workers == 0 {
		c.Equity.Workers = DefaultWorkers()
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if n := len(c.Players); n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("need between %d and %d players, got %d", MinPlayers, MaxPlayers, n)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if p.Stack <= 0 {
			return fmt.Errorf("player %s: stack must be positive", p.Name)
		}
	}

	if c.Equity.Iterations <= 0 {
		return fmt.Errorf("equity: iterations must be positive")
	}
	if c.Equity.Workers <= 0 {
		return fmt.Errorf("equity: workers must be positive")
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PlayerNames returns the seat names in order.
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// Stacks returns the starting stacks in seat order.
func (c *Config) Stacks() []int {
	stacks := make([]int, len(c.Players))
	for i, p := range c.Players {
		stacks[i] = p.Stack
	}
	return stacks
}
