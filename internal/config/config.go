// Package config loads the optional HCL configuration file shared by the
// easy21 commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/easy21/internal/bot"
)

// Config is the complete configuration.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Simulate *SimulateConfig `hcl:"simulate,block"`
	Train    *TrainConfig    `hcl:"train,block"`
	Server   *ServerConfig   `hcl:"server,block"`
}

// SimulateConfig configures batch simulation.
type SimulateConfig struct {
	Episodes int    `hcl:"episodes,optional"`
	Workers  int    `hcl:"workers,optional"`
	Bot      string `hcl:"bot,optional"`
	Seed     int64  `hcl:"seed,optional"`
	MaxSteps int    `hcl:"max_steps,optional"`
	History  string `hcl:"history,optional"`
}

// TrainConfig configures the learners.
type TrainConfig struct {
	Algorithm string  `hcl:"algorithm,optional"`
	Episodes  int     `hcl:"episodes,optional"`
	N0        float64 `hcl:"n0,optional"`
	Lambda    float64 `hcl:"lambda,optional"`
	Seed      int64   `hcl:"seed,optional"`
	Plot      string  `hcl:"plot,optional"`
	Curve     string  `hcl:"curve,optional"`
}

// ServerConfig configures the websocket server.
type ServerConfig struct {
	Address     string `hcl:"address,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// Algorithms accepted by train.algorithm.
const (
	AlgorithmMonteCarlo = "mc"
	AlgorithmSarsa      = "sarsa"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Simulate: &SimulateConfig{
			Episodes: 10000,
			Bot:      "threshold",
			MaxSteps: 1000,
		},
		Train: &TrainConfig{
			Algorithm: AlgorithmMonteCarlo,
			Episodes:  500000,
			N0:        100,
			Lambda:    0.5,
		},
		Server: &ServerConfig{
			Address:     "localhost:8021",
			IdleTimeout: "5m",
		},
	}
}

// Load reads filename, filling anything it leaves out from DefaultConfig.
// A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if c.Simulate == nil {
		c.Simulate = def.Simulate
	}
	if c.Simulate.Episodes == 0 {
		c.Simulate.Episodes = def.Simulate.Episodes
	}
	if c.Simulate.Bot == "" {
		c.Simulate.Bot = def.Simulate.Bot
	}
	if c.Simulate.MaxSteps == 0 {
		c.Simulate.MaxSteps = def.Simulate.MaxSteps
	}

	if c.Train == nil {
		c.Train = def.Train
	}
	if c.Train.Algorithm == "" {
		c.Train.Algorithm = def.Train.Algorithm
	}
	if c.Train.Episodes == 0 {
		c.Train.Episodes = def.Train.Episodes
	}
	if c.Train.N0 == 0 {
		c.Train.N0 = def.Train.N0
	}

	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	if c.Simulate.Episodes < 0 {
		return fmt.Errorf("simulate: episodes must not be negative")
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate: workers must not be negative")
	}
	if c.Simulate.MaxSteps < 0 {
		return fmt.Errorf("simulate: max_steps must not be negative")
	}
	if _, err := bot.Lookup(c.Simulate.Bot); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if !slices.Contains([]string{AlgorithmMonteCarlo, AlgorithmSarsa}, c.Train.Algorithm) {
		return fmt.Errorf("train: unknown algorithm %q", c.Train.Algorithm)
	}
	if c.Train.Episodes < 0 {
		return fmt.Errorf("train: episodes must not be negative")
	}
	if c.Train.N0 < 0 {
		return fmt.Errorf("train: n0 must not be negative")
	}
	if c.Train.Lambda < 0 || c.Train.Lambda > 1 {
		return fmt.Errorf("train: lambda must be within [0, 1], got %v", c.Train.Lambda)
	}

	if _, err := c.Server.Idle(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Idle parses IdleTimeout.
func (s *ServerConfig) Idle() (time.Duration, error) {
	d, err := time.ParseDuration(s.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle_timeout %q: %w", s.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("idle_timeout must be positive")
	}
	return d, nil
}
