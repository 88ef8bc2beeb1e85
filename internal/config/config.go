// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the hwverify command configuration from the
// environment and command line flags.
//
package config

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Run modes.
const (
	ModeExhaustive = "exhaustive"
	ModeDirected   = "directed"
	ModeSuite      = "suite"
)

// Config holds the hwverify command configuration.
//
type Config struct {
	Mode          string        `env:"HWVERIFY_MODE"           envDefault:"exhaustive"`
	Vectors       string        `env:"HWVERIFY_VECTORS"`
	Cases         string        `env:"HWVERIFY_CASES"`
	Settle        int           `env:"HWVERIFY_SETTLE"         envDefault:"2"`
	ResetLow      int           `env:"HWVERIFY_RESET_LOW"      envDefault:"10"`
	ResetHigh     int           `env:"HWVERIFY_RESET_HIGH"     envDefault:"5"`
	Period        time.Duration `env:"HWVERIFY_PERIOD"         envDefault:"10us"`
	Combinational bool          `env:"HWVERIFY_COMBINATIONAL"`
	StepsPerCycle uint          `env:"HWVERIFY_SPC"            envDefault:"16"`
	Workers       int           `env:"HWVERIFY_WORKERS"        envDefault:"1"`
	Stuck         string        `env:"HWVERIFY_STUCK"`
	KeepGoing     bool          `env:"HWVERIFY_KEEP_GOING"`
	Verbose       bool          `env:"HWVERIFY_VERBOSE"`
	Progress      int           `env:"HWVERIFY_PROGRESS"       envDefault:"4096"`
}

// Stuck is a stuck-at fault on an output bit.
//
type Stuck struct {
	Bit   int
	Value bool
}

// ParseEnv loads configuration from environment variables.
//
func ParseEnv(target interface{}) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Load parses the environment then args into a Config and validates it.
// Command line flags override environment variables.
//
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "run mode: exhaustive, directed or suite")
	fs.StringVar(&cfg.Vectors, "vectors", cfg.Vectors, "directed vectors as a comma separated list of a:b pairs")
	fs.StringVar(&cfg.Cases, "cases", cfg.Cases, "comma separated list of suite cases to run (default all)")
	fs.IntVar(&cfg.Settle, "settle", cfg.Settle, "clock phases between driving a vector and sampling the output")
	fs.IntVar(&cfg.ResetLow, "reset-low", cfg.ResetLow, "clock phases with rst_n held low")
	fs.IntVar(&cfg.ResetHigh, "reset-high", cfg.ResetHigh, "clock phases after releasing rst_n")
	fs.DurationVar(&cfg.Period, "period", cfg.Period, "clock period")
	fs.BoolVar(&cfg.Combinational, "combinational", cfg.Combinational, "use the unregistered reference device")
	fs.UintVar(&cfg.StepsPerCycle, "spc", cfg.StepsPerCycle, "simulation steps per clock cycle")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "simulation worker goroutines (0 for GOMAXPROCS)")
	fs.StringVar(&cfg.Stuck, "stuck", cfg.Stuck, "inject stuck-at faults on output bits, e.g. 7:1,0:0")
	fs.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing, "check all vectors instead of stopping at the first mismatch")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every checked vector")
	fs.IntVar(&cfg.Progress, "progress", cfg.Progress, "log progress every n vectors (0 disables)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg for consistency.
//
func (cfg *Config) Validate() error {
	switch cfg.Mode {
	case ModeExhaustive, ModeSuite:
	case ModeDirected:
		if strings.TrimSpace(cfg.Vectors) == "" {
			return errors.New("directed mode requires -vectors")
		}
	default:
		return errors.Errorf("invalid mode %q", cfg.Mode)
	}
	if cfg.Settle < 1 {
		return errors.Errorf("settle must be at least 1, got %d", cfg.Settle)
	}
	if cfg.ResetLow < 1 {
		return errors.Errorf("reset-low must be at least 1, got %d", cfg.ResetLow)
	}
	if cfg.ResetHigh < 0 {
		return errors.Errorf("reset-high must not be negative, got %d", cfg.ResetHigh)
	}
	if cfg.Period <= 0 {
		return errors.Errorf("invalid clock period %v", cfg.Period)
	}
	if cfg.Workers < 0 {
		return errors.Errorf("invalid worker count %d", cfg.Workers)
	}
	if _, err := cfg.StuckBits(); err != nil {
		return err
	}
	return nil
}

// StuckBits parses the Stuck field.
//
func (cfg *Config) StuckBits() ([]Stuck, error) {
	return ParseStuck(cfg.Stuck)
}

// CaseNames returns the suite cases selected by the Cases field, nil for all.
//
func (cfg *Config) CaseNames() []string {
	var names []string
	for _, n := range strings.Split(cfg.Cases, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ParseStuck parses a comma separated list of bit:value stuck-at faults.
//
func ParseStuck(s string) ([]Stuck, error) {
	var out []Stuck
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		bv := strings.Split(item, ":")
		if len(bv) != 2 {
			return nil, errors.Errorf("stuck-at fault %q: expected bit:value", item)
		}
		bit, err := strconv.Atoi(bv[0])
		if err != nil || bit < 0 || bit > 7 {
			return nil, errors.Errorf("stuck-at fault %q: invalid bit", item)
		}
		v, err := strconv.ParseBool(bv[1])
		if err != nil {
			return nil, errors.Errorf("stuck-at fault %q: invalid value", item)
		}
		out = append(out, Stuck{bit, v})
	}
	return out, nil
}
