// Copyright 2025 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/experiment"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/mis"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// maxPower bounds the number of samples of a sweep to 2^maxPower.
const maxPower = 30

// Config summarizes the options of a montecarlo command.
type Config struct {
	AppName     string
	CommandName string

	LogLevel     string            // level of the logging
	Seed         uint64            // seed of the uniform source; 0 seeds from the clock
	MinPower     int               // smallest sample count 2^MinPower
	MaxPower     int               // largest sample count 2^MaxPower
	Runs         int               // repetitions per sample count
	SamplesA     int               // MIS samples from A per iteration
	SamplesB     int               // MIS samples from B per iteration
	Heuristic    string            // MIS heuristic name or "all"
	Heuristics   []mis.Heuristic   // parsed from Heuristic; nil selects all
	MaxDensity   float64           // roulette maximum of A; 0 selects the maximum of A
	Delay        time.Duration     // artificial integrand cost
	Distribution string            // inspected fixture
	MetricName   string            // reported metric name
	Metric       experiment.Metric // parsed from MetricName
	Output       string            // CSV output path
	Chart        string            // HTML chart path
	Db           string            // sqlite3 results path
	Quiet        bool              // no console table
}

// NewConfig creates and validates the configuration of the command in ctx.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration of %s", cfg.CommandName)
	}
	return cfg, nil
}

// validate checks ranges and parses the named options.
func (cfg *Config) validate() error {
	if cfg.MinPower < 0 || cfg.MaxPower > maxPower || cfg.MinPower > cfg.MaxPower {
		return errors.Newf("power range [%d,%d] must lie within [0,%d]", cfg.MinPower, cfg.MaxPower, maxPower)
	}
	if cfg.Runs < 1 || cfg.Runs > experiment.MaxRuns {
		return errors.Newf("runs must be within [1,%d], got %d", experiment.MaxRuns, cfg.Runs)
	}
	if cfg.SamplesA <= 0 || cfg.SamplesB <= 0 {
		return errors.Newf("sample allocation must be positive, got na=%d nb=%d", cfg.SamplesA, cfg.SamplesB)
	}
	if cfg.MaxDensity < 0 {
		return errors.Newf("maximal density must not be negative, got %v", cfg.MaxDensity)
	}
	if cfg.Delay < 0 {
		return errors.Newf("delay must not be negative, got %v", cfg.Delay)
	}

	cfg.Heuristics = nil
	if cfg.Heuristic != "all" {
		h, err := mis.ParseHeuristic(cfg.Heuristic)
		if err != nil {
			return err
		}
		cfg.Heuristics = []mis.Heuristic{h}
	}

	m, err := experiment.ParseMetric(cfg.MetricName)
	if err != nil {
		return err
	}
	cfg.Metric = m
	return nil
}
