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

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/piecewise"
	"gonum.org/v1/gonum/stat/distuv"
)

// ExpectedProduct is the exact integral of A.PDF(x)*B.PDF(x) over [0,1).
const ExpectedProduct = 0.8448

// Buckets are the breakpoints of the ten-bucket distributions A and B.
var Buckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// Fixtures are the distributions used by the experiments.
type Fixtures struct {
	A             *piecewise.Distribution // mass concentrated around 0.3
	B             *piecewise.Distribution // mass concentrated around 0.75 and at the ends
	Uniform       *piecewise.Distribution // flat on [0,1)
	Peaked        *piecewise.Distribution // good importance distribution for Peak
	BadImportance *piecewise.Distribution // importance distribution avoiding the peak
}

// NewFixtures constructs all fixtures.
func NewFixtures() (*Fixtures, error) {
	var (
		f   Fixtures
		err error
	)
	if f.A, err = piecewise.New(0.0, Buckets, []float64{0.5, 1.4, 3.2, 3.0, 0.5, 0.1, 0.1, 0.5, 0.1, 0.6}); err != nil {
		return nil, err
	}
	if f.B, err = piecewise.New(0.0, Buckets, []float64{2.0, 1.0, 0.8, 0.1, 0.02, 0.04, 0.1, 4.0, 0.0, 1.94}); err != nil {
		return nil, err
	}
	if f.Uniform, err = piecewise.Uniform(0.0, 1.0); err != nil {
		return nil, err
	}
	if f.Peaked, err = piecewise.New(0.0, []float64{0.45, 0.55, 1.0}, []float64{0.1, 9.1, 0.1}); err != nil {
		return nil, err
	}
	if f.BadImportance, err = piecewise.New(0.0, []float64{0.45, 0.55, 1.0}, []float64{1.1, 0.1, 1.1}); err != nil {
		return nil, err
	}
	return &f, nil
}

// Peak is a narrow gaussian bump in the middle of the unit interval.
func Peak(x float64) float64 {
	return math.Exp(-1000.0 * (x - 0.5) * (x - 0.5))
}

// PeakIntegral is the exact integral of Peak over [0,1).
func PeakIntegral() float64 {
	sigma := math.Sqrt(1.0 / 2000.0)
	n := distuv.Normal{Mu: 0.5, Sigma: sigma}
	return sigma * math.Sqrt(2.0*math.Pi) * (n.CDF(1.0) - n.CDF(0.0))
}
