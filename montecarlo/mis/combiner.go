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

// Package mis implements multiple importance sampling: samples are drawn from
// several distributions and each contribution is discounted by a heuristic
// weight reflecting how likely every technique was to produce it.
package mis

import (
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
)

var (
	ErrNoTechniques      = errors.New("no sampling technique given")
	ErrInvalidAllocation = errors.New("sample count of a technique must be positive")
)

// Technique is a sampling distribution with the number of samples drawn
// from it per iteration.
type Technique struct {
	Distribution estimator.Sampler
	Samples      int
}

// Combiner is an unbiased estimator of the integral of a target function
// combining samples of all techniques with a weighting heuristic.
type Combiner struct {
	target     estimator.Func
	techniques []Technique
	heuristic  Heuristic
}

// New creates a combiner for an arbitrary number of techniques.
func New(target estimator.Func, techniques []Technique, h Heuristic) (*Combiner, error) {
	if len(techniques) == 0 {
		return nil, ErrNoTechniques
	}
	for i, t := range techniques {
		if t.Distribution == nil {
			return nil, errors.Newf("technique %d has no distribution", i)
		}
		if t.Samples <= 0 {
			return nil, errors.Wrapf(ErrInvalidAllocation, "technique %d has %d samples", i, t.Samples)
		}
	}
	if h != Balance && h != Power {
		return nil, errors.Wrapf(ErrUnknownHeuristic, "%d", int(h))
	}
	return &Combiner{
		target:     target,
		techniques: append([]Technique(nil), techniques...),
		heuristic:  h,
	}, nil
}

// NewPair creates the combiner estimating the integral of a.PDF(x)*b.PDF(x)
// with na samples from a and nb samples from b per iteration.
func NewPair(a, b estimator.Sampler, na, nb int, h Heuristic) (*Combiner, error) {
	if a == nil || b == nil {
		return nil, errors.New("both distributions are required")
	}
	target := func(x float64) float64 {
		return a.PDF(x) * b.PDF(x)
	}
	return New(target, []Technique{{a, na}, {b, nb}}, h)
}

// Heuristic returns the weighting heuristic.
func (c *Combiner) Heuristic() Heuristic {
	return c.heuristic
}

// Techniques returns a copy of the techniques.
func (c *Combiner) Techniques() []Technique {
	return append([]Technique(nil), c.techniques...)
}

// Eval evaluates the target function.
func (c *Combiner) Eval(x float64) float64 {
	return c.target(x)
}

// weight computes the heuristic weight of a sample x drawn by technique i
// with density p.
func (c *Combiner) weight(i int, x float64, p float64) float64 {
	if len(c.techniques) == 2 {
		j := 1 - i
		other := c.techniques[j]
		return Weight(c.heuristic, c.techniques[i].Samples, p, other.Samples, other.Distribution.PDF(x))
	}
	counts := make([]int, len(c.techniques))
	densities := make([]float64, len(c.techniques))
	for k, t := range c.techniques {
		counts[k] = t.Samples
		if k == i {
			densities[k] = p
		} else {
			densities[k] = t.Distribution.PDF(x)
		}
	}
	return WeightN(c.heuristic, i, counts, densities)
}

// Integrate runs n iterations. In each iteration every technique draws its
// allocated samples, each contributing w(x)*f(x)/(p(x)*samples). The sum
// is averaged over the iterations.
func (c *Combiner) Integrate(n int, src uniform.Source) (float64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(estimator.ErrNoSamples, "found %d", n)
	}
	ret := 0.0
	for range n {
		for i, t := range c.techniques {
			ni := float64(t.Samples)
			for range t.Samples {
				x, p, err := t.Distribution.Sample(src)
				if err != nil {
					return 0, errors.Wrapf(err, "failed to sample technique %d", i)
				}
				w := c.weight(i, x, p)
				ret += w * c.target(x) / p / ni
			}
		}
	}
	return ret / float64(n), nil
}
