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

package piecewise

import (
	"math"
	"sort"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
)

// Construction errors are all marked with ErrConstruction.
var (
	ErrConstruction    = errors.New("invalid piecewise distribution")
	ErrLengthMismatch  = errors.New("breakpoints and densities differ in length")
	ErrEmpty           = errors.New("distribution has no intervals")
	ErrUnordered       = errors.New("breakpoints are not strictly increasing")
	ErrNegativeDensity = errors.New("density is negative or not a number")
	ErrNotNormalized   = errors.New("total probability mass is not one")
)

// Evaluation errors.
var (
	ErrDomain      = errors.New("probability is not in the range [0,1]")
	ErrConvergence = errors.New("inverse CDF did not converge")
)

// Step is a half-open interval ending at Upper with a constant density.
// The interval starts at the upper bound of the previous step, or at the
// lower bound of the domain for the first step.
type Step struct {
	Upper   float64
	Density float64
}

// Distribution is a piecewise-constant probability density on [minX, maxX).
// A distribution is immutable and may be shared between estimators.
type Distribution struct {
	minX  float64
	maxX  float64
	steps []Step
	cum   []float64 // cumulative probability at the upper bound of each step
}

// New creates a distribution from ordered breakpoints and the densities of the
// intervals they close. The last breakpoint is the (exclusive) upper bound of the domain.
func New(minX float64, breakpoints []float64, densities []float64) (*Distribution, error) {
	if len(breakpoints) != len(densities) {
		return nil, constructionError(errors.Wrapf(ErrLengthMismatch, "%d breakpoints vs %d densities", len(breakpoints), len(densities)))
	}
	n := len(breakpoints)
	if n == 0 {
		return nil, constructionError(ErrEmpty)
	}
	steps := make([]Step, n)
	cum := make([]float64, n)
	lower := minX
	sum := 0.0 // Kahan's summation of the probability mass
	c := 0.0   // compensation term of Kahan's summation
	for i := range n {
		upper, density := breakpoints[i], densities[i]
		if !(upper > lower) {
			return nil, constructionError(errors.Wrapf(ErrUnordered, "breakpoint %d (%v) is not above %v", i, upper, lower))
		}
		if !(density >= 0) || math.IsInf(density, 0) {
			return nil, constructionError(errors.Wrapf(ErrNegativeDensity, "interval %d has density %v", i, density))
		}
		y := (upper-lower)*density - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		steps[i] = Step{Upper: upper, Density: density}
		cum[i] = sum
		lower = upper
	}
	if math.Abs(1.0-sum) > montecarlo.NormalizationTolerance {
		return nil, constructionError(errors.Wrapf(ErrNotNormalized, "total mass is %.6f", sum))
	}
	return &Distribution{
		minX:  minX,
		maxX:  breakpoints[n-1],
		steps: steps,
		cum:   cum,
	}, nil
}

// Uniform creates the flat distribution on [minX, maxX).
func Uniform(minX, maxX float64) (*Distribution, error) {
	return New(minX, []float64{maxX}, []float64{1.0 / (maxX - minX)})
}

func constructionError(err error) error {
	return errors.Mark(err, ErrConstruction)
}

// MinX is the inclusive lower bound of the domain.
func (d *Distribution) MinX() float64 {
	return d.minX
}

// MaxX is the exclusive upper bound of the domain.
func (d *Distribution) MaxX() float64 {
	return d.maxX
}

// Steps returns a copy of the intervals.
func (d *Distribution) Steps() []Step {
	return append([]Step(nil), d.steps...)
}

// MaxDensity returns the largest density of all intervals.
func (d *Distribution) MaxDensity() float64 {
	m := 0.0
	for _, s := range d.steps {
		m = max(m, s.Density)
	}
	return m
}

// find returns the index of the first interval whose upper bound exceeds x.
func (d *Distribution) find(x float64) int {
	return sort.Search(len(d.steps), func(i int) bool {
		return d.steps[i].Upper > x
	})
}

// PDF returns the density at x, or zero outside of [minX, maxX).
func (d *Distribution) PDF(x float64) float64 {
	if x < d.minX || x >= d.maxX {
		return 0.0
	}
	return d.steps[d.find(x)].Density
}

// CDF returns the probability mass below x and the density of the
// interval containing x.
func (d *Distribution) CDF(x float64) (float64, float64) {
	if x < d.minX {
		return 0.0, 0.0
	}
	if x >= d.maxX {
		return d.cum[len(d.cum)-1], 0.0
	}
	i := d.find(x)
	lower, base := d.start(i)
	density := d.steps[i].Density
	return base + (x-lower)*density, density
}

// start returns the lower bound of interval i and the probability mass below it.
func (d *Distribution) start(i int) (float64, float64) {
	if i == 0 {
		return d.minX, 0.0
	}
	return d.steps[i-1].Upper, d.cum[i-1]
}

// InvCDF returns x with CDF(x) within montecarlo.InversionTolerance of y and the
// density at x. The CDF is bisected over the domain until the midpoint is close
// enough to y; the CDF is linear inside an interval, so the exact inverse within
// that interval is returned. When the exact inverse lies beyond the interval and
// probability mass remains there, the bisection continues. A point inside an
// interval of zero density is never returned.
func (d *Distribution) InvCDF(y float64) (float64, float64, error) {
	if math.IsNaN(y) || y < 0.0 || y > 1.0 {
		return 0, 0, errors.Wrapf(ErrDomain, "found %.6f", y)
	}
	total := d.cum[len(d.cum)-1]
	lo, hi := d.minX, d.maxX
	found := false
	var best, bestDensity float64
	for range montecarlo.MaxInversionSteps {
		x := (lo + hi) / 2.0
		if x <= lo || x >= hi {
			break
		}
		fy, density := d.CDF(x)
		if math.Abs(y-fy) >= montecarlo.InversionTolerance || density == 0 {
			// no mass lies right of a trailing plateau
			if y < fy || (y == fy && fy > 0) || fy >= total {
				hi = x
			} else {
				lo = x
			}
			continue
		}
		i := d.find(x)
		lower, base := d.start(i)
		upper := d.steps[i].Upper
		exact := lower + (y-base)/density
		best, bestDensity, found = min(max(exact, lower), math.Nextafter(upper, lower)), density, true
		switch {
		case exact < lower && base > 0:
			hi = x
		case exact >= upper && d.cum[i] < total:
			lo = x
		default:
			return best, bestDensity, nil
		}
	}
	if found {
		return best, bestDensity, nil
	}
	return 0, 0, errors.Wrapf(ErrConvergence, "no solution for %.6f within %d steps", y, montecarlo.MaxInversionSteps)
}

// Sample draws a value with its density by inverting the CDF at a uniform value.
func (d *Distribution) Sample(src uniform.Source) (float64, float64, error) {
	return d.InvCDF(src.Float64())
}

// ECDF returns the CDF as a piecewise linear function, i.e., the list of
// points (x_i, CDF(x_i)) at the domain bounds and all breakpoints.
func (d *Distribution) ECDF() [][2]float64 {
	f := make([][2]float64, 0, len(d.steps)+1)
	f = append(f, [2]float64{d.minX, 0.0})
	for i, s := range d.steps {
		f = append(f, [2]float64{s.Upper, d.cum[i]})
	}
	return f
}
