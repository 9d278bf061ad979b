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

package hemisphere

import (
	"math"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"gonum.org/v1/gonum/spatial/r3"
)

// Expected irradiance of a horizontal surface under the predefined skies.
const (
	UniformIrradiance  = math.Pi
	OvercastIrradiance = math.Pi * 7.0 / 9.0
)

// SampleDisc maps two uniform values to a point uniformly distributed on a
// horizontal disc with the given radius.
func SampleDisc(u1, u2, radius float64) (float64, float64) {
	r := radius * math.Sqrt(u1)
	sin, cos := math.Sincos(2.0 * math.Pi * u2)
	return r * sin, r * cos
}

// SampleCosine maps two uniform values to a direction in the upper hemisphere
// distributed proportionally to the cosine of its angle with the zenith.
func SampleCosine(u1, u2 float64) r3.Vec {
	x, y := SampleDisc(u1, u2, 1.0)
	aux := math.Min(math.Max(x*x+y*y, 0.0), 1.0)
	return r3.Vec{X: x, Y: y, Z: math.Sqrt(1.0 - aux)}
}

// SampleUniform maps two uniform values to a direction uniformly distributed
// over the upper hemisphere.
func SampleUniform(u1, u2 float64) r3.Vec {
	z := u1
	r := math.Sqrt(1.0 - z*z)
	sin, cos := math.Sincos(2.0 * math.Pi * u2)
	return r3.Vec{X: cos * r, Y: sin * r, Z: z}
}

// Sky is the radiance arriving from a direction.
type Sky func(v r3.Vec) float64

// UniformSky has the same radiance in every direction.
func UniformSky(r3.Vec) float64 {
	return 1.0
}

// OvercastSky is three times brighter at the zenith than at the horizon.
func OvercastSky(v r3.Vec) float64 {
	return (1.0 + 2.0*math.Abs(v.Z)) / 3.0
}

// Strategy selects how directions are sampled.
type Strategy int

const (
	Uniform Strategy = iota
	Cosine
)

func (s Strategy) String() string {
	if s == Cosine {
		return "cosine"
	}
	return "uniform"
}

// Irradiance integrates the cosine-weighted radiance of a sky over the
// upper hemisphere.
type Irradiance struct {
	Sky      Sky
	Strategy Strategy
}

func (e Irradiance) Sample(src uniform.Source) (estimator.Sample[r3.Vec], error) {
	u1, u2 := src.Float64(), src.Float64()
	if e.Strategy == Cosine {
		v := SampleCosine(u1, u2)
		return estimator.Sample[r3.Vec]{X: v, Density: v.Z / math.Pi}, nil
	}
	return estimator.Sample[r3.Vec]{X: SampleUniform(u1, u2), Density: 0.5 / math.Pi}, nil
}

func (e Irradiance) Eval(v r3.Vec) float64 {
	return e.Sky(v) * v.Z
}

func (e Irradiance) Integrate(n int, src uniform.Source) (float64, error) {
	return estimator.Integrate[r3.Vec](e, n, src)
}
