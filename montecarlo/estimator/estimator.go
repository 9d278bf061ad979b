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

// Package estimator defines the Monte Carlo estimator contract. An estimator samples
// points together with the density of having produced them, evaluates the integrand
// there and averages the ratio, i.e., E[f(X)/p(X)] is the integral of f for X ~ p.
package estimator

import (
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
)

// ErrNoSamples is returned when an integration is requested with a
// non-positive number of samples.
var ErrNoSamples = errors.New("number of samples must be positive")

// Sample is a sampled value with the density of having produced it.
type Sample[T any] struct {
	X       T
	Density float64
}

// Integrable is an integrand paired with a sampling strategy.
type Integrable[T any] interface {
	// Sample draws a value and its density.
	Sample(src uniform.Source) (Sample[T], error)
	// Eval evaluates the integrand.
	Eval(x T) float64
}

// Integrator estimates an integral from n samples.
type Integrator interface {
	Integrate(n int, src uniform.Source) (float64, error)
}

// Sampler is a one-dimensional distribution that can be evaluated and sampled.
type Sampler interface {
	PDF(x float64) float64
	Sample(src uniform.Source) (float64, float64, error)
}

// Func is a real function of one variable.
type Func func(x float64) float64

// Integrate averages Eval(x)/density over n samples. Degenerate densities
// yield NaN or Inf estimates; they are not clamped.
func Integrate[T any](e Integrable[T], n int, src uniform.Source) (float64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrNoSamples, "found %d", n)
	}
	res := 0.0
	for i := range n {
		s, err := e.Sample(src)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to draw sample %d", i)
		}
		res += e.Eval(s.X) / s.Density
	}
	return res / float64(n), nil
}

// Default turns an Integrable into an Integrator using Integrate.
type Default[T any] struct {
	Integrable[T]
}

// Of wraps an Integrable with the default integration.
func Of[T any](e Integrable[T]) Integrator {
	return Default[T]{e}
}

func (d Default[T]) Integrate(n int, src uniform.Source) (float64, error) {
	return Integrate(d.Integrable, n, src)
}
