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

// Package roulette implements an estimator that skips the evaluation of an
// expensive integrand with a probability q and rescales the surviving
// contributions by 1/(1-q), which keeps the estimate unbiased.
package roulette

import (
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
)

var ErrInvalidMaximum = errors.New("maximum of the survival function must be positive")

// Config holds the parameters of the roulette estimator.
type Config struct {
	Sampling estimator.Sampler // distribution of the sampled points
	A        estimator.Func    // cheap factor of the integrand, drives survival
	B        estimator.Func    // expensive factor of the integrand
	MaxA     float64           // known maximum of A over the domain
	Roulette bool              // enables early termination
	Constant float64           // contribution of terminated samples
	Cost     func()            // called before every evaluation of B
}

// Estimator integrates A(x)*B(x).
type Estimator struct {
	cfg Config
}

// New creates a roulette estimator.
func New(cfg Config) (*Estimator, error) {
	if cfg.Sampling == nil || cfg.A == nil || cfg.B == nil {
		return nil, errors.New("sampling distribution and both factors are required")
	}
	if !(cfg.MaxA > 0) {
		return nil, errors.Wrapf(ErrInvalidMaximum, "found %v", cfg.MaxA)
	}
	if cfg.Cost == nil {
		cfg.Cost = func() {}
	}
	return &Estimator{cfg: cfg}, nil
}

// Delay returns a cost hook sleeping for d; it emulates an expensive integrand.
func Delay(d time.Duration) func() {
	return func() {
		time.Sleep(d)
	}
}

// Survival returns the probability q(x) = 1 - A(x)/MaxA of skipping the
// evaluation at x, or zero when roulette is disabled.
func (e *Estimator) Survival(x float64) float64 {
	if !e.cfg.Roulette {
		return 0.0
	}
	return 1.0 - e.cfg.A(x)/e.cfg.MaxA
}

// Eval evaluates the full integrand including the cost hook.
func (e *Estimator) Eval(x float64) float64 {
	e.cfg.Cost()
	return e.cfg.A(x) * e.cfg.B(x)
}

// Integrate averages n roulette contributions. A sample x with density p
// survives if a uniform threshold exceeds q(x); it then contributes
// (f(x)/p - q*c)/(1-q), otherwise the constant c.
func (e *Estimator) Integrate(n int, src uniform.Source) (float64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(estimator.ErrNoSamples, "found %d", n)
	}
	c := e.cfg.Constant
	res := 0.0
	for i := range n {
		x, p, err := e.cfg.Sampling.Sample(src)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to draw sample %d", i)
		}
		eps := src.Float64()
		q := e.Survival(x)
		if eps > q {
			fx := e.Eval(x) / p
			res += (fx - q*c) / (1.0 - q)
		} else {
			res += c
		}
	}
	return res / float64(n), nil
}
