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

package experiment

import (
	"math"
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"gonum.org/v1/gonum/stat"
)

// Candidate is a named estimator taking part in a sweep.
type Candidate struct {
	Name       string
	Integrator estimator.Integrator
}

// Names returns the names of the candidates in order.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// Row holds the results of all candidates for n = 2^Power samples.
// Values, Errors, StdDevs and Durations are indexed by candidate.
type Row struct {
	Power     int
	N         int
	Values    []float64       // mean estimate over all runs
	Errors    []float64       // relative error of the mean estimate
	StdDevs   []float64       // standard deviation of the estimates over all runs
	Durations []time.Duration // mean wall-clock time of a single run
}

// MaxRuns bounds the repetitions per power and the number of candidates of a
// sweep, so that seeded runs never share a stream.
const MaxRuns = 1 << 10

// Sweep integrates with an increasing number of samples.
type Sweep struct {
	MinPower int
	MaxPower int
	Runs     int     // repetitions per power within [1, MaxRuns]
	Seed     uint64  // seed of the first source; zero seeds from the clock
	Expected float64 // exact value of the integral
	log      *logging.Logger
}

// NewSweep creates a sweep for n = 2^minPower ... 2^maxPower.
func NewSweep(minPower, maxPower, runs int, seed uint64, expected float64, log *logging.Logger) (*Sweep, error) {
	if minPower < 0 || maxPower < minPower || maxPower > 30 {
		return nil, errors.Newf("invalid power range [%d,%d]", minPower, maxPower)
	}
	if runs < 1 || runs > MaxRuns {
		return nil, errors.Newf("number of runs must be within [1,%d], found %d", MaxRuns, runs)
	}
	return &Sweep{
		MinPower: minPower,
		MaxPower: maxPower,
		Runs:     runs,
		Seed:     seed,
		Expected: expected,
		log:      log,
	}, nil
}

// RelativeError is |found - expected| / |expected|.
func RelativeError(found, expected float64) float64 {
	return math.Abs(found-expected) / math.Abs(expected)
}

// source creates a fresh generator for a run. Explicitly seeded sweeps
// give every run its own reproducible stream; power, candidate and run
// occupy disjoint bits of the seed offset.
func (s *Sweep) source(power, candidate, run int) uniform.Source {
	if s.Seed == 0 {
		return uniform.NewTimeSeeded()
	}
	return uniform.NewLCG(s.Seed + uint64(power)<<20 + uint64(candidate)<<10 + uint64(run))
}

// Run executes the sweep for all candidates.
func (s *Sweep) Run(candidates []Candidate) ([]Row, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no candidates to compare")
	}
	if len(candidates) > MaxRuns {
		return nil, errors.Newf("too many candidates, found %d, allowed %d", len(candidates), MaxRuns)
	}
	rows := make([]Row, 0, s.MaxPower-s.MinPower+1)
	for p := s.MinPower; p <= s.MaxPower; p++ {
		n := 1 << p
		row := Row{
			Power:     p,
			N:         n,
			Values:    make([]float64, len(candidates)),
			Errors:    make([]float64, len(candidates)),
			StdDevs:   make([]float64, len(candidates)),
			Durations: make([]time.Duration, len(candidates)),
		}
		for j, c := range candidates {
			values := make([]float64, s.Runs)
			var elapsed time.Duration
			for r := range s.Runs {
				start := time.Now()
				v, err := c.Integrator.Integrate(n, s.source(p, j, r))
				elapsed += time.Since(start)
				if err != nil {
					return nil, errors.Wrapf(err, "%s failed for n=%d", c.Name, n)
				}
				values[r] = v
			}
			mean, std := values[0], 0.0
			if s.Runs > 1 {
				mean, std = stat.MeanStdDev(values, nil)
			}
			row.Values[j] = mean
			row.Errors[j] = RelativeError(mean, s.Expected)
			row.StdDevs[j] = std
			row.Durations[j] = elapsed / time.Duration(s.Runs)
		}
		if s.log != nil {
			s.log.Debugf("n=2^%d errors %v", p, row.Errors)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
