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

package estimator

import (
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
)

// Uniform integrates F over [Min, Max) with uniformly distributed samples.
type Uniform struct {
	Min float64
	Max float64
	F   Func
}

func (u Uniform) Sample(src uniform.Source) (Sample[float64], error) {
	width := u.Max - u.Min
	return Sample[float64]{X: u.Min + width*src.Float64(), Density: 1.0 / width}, nil
}

func (u Uniform) Eval(x float64) float64 {
	return u.F(x)
}

func (u Uniform) Integrate(n int, src uniform.Source) (float64, error) {
	return Integrate[float64](u, n, src)
}

// Importance integrates F with samples drawn from a custom distribution.
type Importance struct {
	Sampling Sampler
	F        Func
}

func (m Importance) Sample(src uniform.Source) (Sample[float64], error) {
	x, density, err := m.Sampling.Sample(src)
	return Sample[float64]{X: x, Density: density}, err
}

func (m Importance) Eval(x float64) float64 {
	return m.F(x)
}

func (m Importance) Integrate(n int, src uniform.Source) (float64, error) {
	return Integrate[float64](m, n, src)
}

// Product integrates the product of the densities of A and B with
// samples drawn from a single distribution.
type Product struct {
	A        Sampler
	B        Sampler
	Sampling Sampler
}

func (p Product) Sample(src uniform.Source) (Sample[float64], error) {
	x, density, err := p.Sampling.Sample(src)
	return Sample[float64]{X: x, Density: density}, err
}

func (p Product) Eval(x float64) float64 {
	return p.A.PDF(x) * p.B.PDF(x)
}

func (p Product) Integrate(n int, src uniform.Source) (float64, error) {
	return Integrate[float64](p, n, src)
}
