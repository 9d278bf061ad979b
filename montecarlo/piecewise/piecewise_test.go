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
	"testing"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/stat/distuv"
)

func newPeaked(t *testing.T) *Distribution {
	d, err := New(0.0, []float64{0.45, 0.55, 1.0}, []float64{0.1, 9.1, 0.1})
	require.NoError(t, err)
	return d
}

func newTenBuckets(t *testing.T) *Distribution {
	d, err := New(0.0,
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		[]float64{0.5, 1.4, 3.2, 3.0, 0.5, 0.1, 0.1, 0.5, 0.1, 0.6},
	)
	require.NoError(t, err)
	return d
}

func TestPiecewise_PeakedScenario(t *testing.T) {
	d := newPeaked(t)
	assert.Equal(t, 9.1, d.PDF(0.5))
	assert.Equal(t, 0.1, d.PDF(0.3))
	cum, density := d.CDF(0.45)
	assert.InDelta(t, 0.045, cum, 1e-9)
	assert.Equal(t, 9.1, density)
	cum, _ = d.CDF(1.0)
	assert.InDelta(t, 1.0, cum, 1e-6)
}

func TestPiecewise_PDFIsLeftClosedRightOpen(t *testing.T) {
	d := newPeaked(t)
	assert.Equal(t, 0.1, d.PDF(0.0))
	assert.Equal(t, 0.1, d.PDF(0.4499999))
	assert.Equal(t, 9.1, d.PDF(0.45))
	assert.Equal(t, 0.1, d.PDF(0.55))
	assert.Equal(t, 0.0, d.PDF(1.0))
	assert.Equal(t, 0.0, d.PDF(-0.01))
	assert.Equal(t, 0.0, d.PDF(1.5))
}

func TestPiecewise_CDFOutsideDomain(t *testing.T) {
	d := newPeaked(t)
	cum, density := d.CDF(-1)
	assert.Equal(t, 0.0, cum)
	assert.Equal(t, 0.0, density)
	cum, density = d.CDF(2)
	assert.InDelta(t, 1.0, cum, 1e-6)
	assert.Equal(t, 0.0, density)
}

func TestPiecewise_CDFIsMonotone(t *testing.T) {
	d := newTenBuckets(t)
	last := 0.0
	for i := range 1001 {
		cum, _ := d.CDF(float64(i) / 1000)
		if cum < last {
			t.Fatalf("CDF decreases at x=%v: %v < %v", float64(i)/1000, cum, last)
		}
		last = cum
	}
	assert.InDelta(t, 1.0, last, 1e-6)
}

func TestPiecewise_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name        string
		minX        float64
		breakpoints []float64
		densities   []float64
		want        error
	}{
		{"LengthMismatch", 0, []float64{0.5, 1.0}, []float64{1.0}, ErrLengthMismatch},
		{"Empty", 0, nil, nil, ErrEmpty},
		{"NotNormalized", 0, []float64{0.5, 1.0}, []float64{1.0, 2.0}, ErrNotNormalized},
		{"Unordered", 0, []float64{0.5, 0.5, 1.0}, []float64{1.0, 1.0, 1.0}, ErrUnordered},
		{"BelowMinimum", 0.5, []float64{0.2, 1.0}, []float64{1.0, 1.0}, ErrUnordered},
		{"NegativeDensity", 0, []float64{0.5, 1.0}, []float64{-1.0, 3.0}, ErrNegativeDensity},
		{"NaNDensity", 0, []float64{1.0}, []float64{math.NaN()}, ErrNegativeDensity},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := New(test.minX, test.breakpoints, test.densities)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.want), "unexpected error %v", err)
			assert.True(t, errors.Is(err, ErrConstruction))
		})
	}
}

func TestPiecewise_EqualHalvesAreNormalized(t *testing.T) {
	d, err := New(0.0, []float64{0.5, 1.0}, []float64{1.0, 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.MaxDensity())
}

func TestPiecewise_NonZeroMinimum(t *testing.T) {
	d, err := New(0.5, []float64{0.75, 1.0}, []float64{1.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.PDF(0.4))
	cum, _ := d.CDF(0.75)
	assert.InDelta(t, 0.25, cum, 1e-12)
	x, density, err := d.InvCDF(0.625)
	require.NoError(t, err)
	assert.InDelta(t, 0.875, x, 1e-3)
	assert.Equal(t, 3.0, density)
}

func TestPiecewise_Uniform(t *testing.T) {
	d, err := Uniform(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.25, d.PDF(3.9))
	assert.Equal(t, 4.0, d.MaxX())
	assert.Equal(t, 0.0, d.MinX())
}

func TestPiecewise_InvCDFDomainError(t *testing.T) {
	d := newPeaked(t)
	for _, y := range []float64{-0.1, 1.1, math.NaN()} {
		_, _, err := d.InvCDF(y)
		assert.True(t, errors.Is(err, ErrDomain), "y=%v: unexpected error %v", y, err)
	}
}

func TestPiecewise_InvCDFConvergenceError(t *testing.T) {
	// the domain spans only a few floating point numbers, so the CDF
	// cannot be resolved to the inversion tolerance
	d, err := Uniform(1e9, 1e9+1e-6)
	require.NoError(t, err)
	_, _, err = d.InvCDF(0.3)
	assert.True(t, errors.Is(err, ErrConvergence), "unexpected error %v", err)
}

func TestPiecewise_InvCDFBounds(t *testing.T) {
	d := newPeaked(t)
	for _, y := range []float64{0.0, 1.0} {
		x, density, err := d.InvCDF(y)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
		assert.Positive(t, density)
	}
}

func TestPiecewise_InvCDFSkipsZeroDensity(t *testing.T) {
	d, err := New(0.0,
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		[]float64{2.0, 1.0, 0.8, 0.1, 0.02, 0.04, 0.1, 4.0, 0.0, 1.94},
	)
	require.NoError(t, err)
	for i := range 10001 {
		y := float64(i) / 10000
		x, density, err := d.InvCDF(y)
		require.NoError(t, err)
		if density <= 0 || d.PDF(x) <= 0 {
			t.Fatalf("InvCDF(%v) = %v lies in an interval without mass", y, x)
		}
	}
}

func TestPiecewise_InvCDFCrossesPlateauTowardsTarget(t *testing.T) {
	d, err := New(0.0,
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		[]float64{2.0, 1.0, 0.8, 0.1, 0.02, 0.04, 0.1, 4.0, 0.0, 1.94},
	)
	require.NoError(t, err)
	plateau, _ := d.CDF(0.85)
	for _, y := range []float64{plateau + 1e-4, plateau + 5e-5, plateau + 1e-3} {
		x, density, err := d.InvCDF(y)
		require.NoError(t, err, "y=%v", y)
		assert.GreaterOrEqual(t, x, 0.9)
		assert.Equal(t, 1.94, density)
		cum, _ := d.CDF(x)
		assert.InDelta(t, y, cum, 1e-9)
	}

	// the plateau value itself is reached at both ends of the plateau
	x, density, err := d.InvCDF(plateau)
	require.NoError(t, err)
	assert.Positive(t, density)
	cum, _ := d.CDF(x)
	assert.InDelta(t, plateau, cum, 1e-9)
}

func TestPiecewise_InvCDFWithTrailingPlateau(t *testing.T) {
	d, err := New(0.0, []float64{0.3, 0.7, 1.0}, []float64{0.0, 2.5, 0.0})
	require.NoError(t, err)
	for _, y := range []float64{0.0, 0.5, 0.99995, 1.0} {
		x, density, err := d.InvCDF(y)
		require.NoError(t, err, "y=%v", y)
		assert.Equal(t, 2.5, density)
		assert.GreaterOrEqual(t, x, 0.3)
		assert.Less(t, x, 0.7)
	}
}

func TestPiecewise_InvCDFIsExactWithinInterval(t *testing.T) {
	d := newPeaked(t)
	for _, x := range []float64{0.0, 0.1, 0.45, 0.5, 0.55, 0.875, 0.999} {
		cum, _ := d.CDF(x)
		found, density, err := d.InvCDF(cum)
		require.NoError(t, err)
		assert.InDelta(t, x, found, 1e-9, "inverse of CDF(%v)", x)
		assert.Equal(t, d.PDF(found), density)
	}
}

func TestPiecewise_RoundTrip(t *testing.T) {
	for name, d := range map[string]*Distribution{"Peaked": newPeaked(t), "TenBuckets": newTenBuckets(t)} {
		t.Run(name, func(t *testing.T) {
			for i := range 1000 {
				x := float64(i) / 1000
				cum, _ := d.CDF(x)
				x2, _, err := d.InvCDF(cum)
				require.NoError(t, err)
				assert.InDelta(t, x, x2, 1e-3, "round trip at x=%v", x)
			}
		})
	}
}

func TestPiecewise_SampleStaysInDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := uniform.NewMockSource(ctrl)
	d := newPeaked(t)
	for _, u := range []float64{0.0, 0.25, 0.5, 0.75, 0.9999999} {
		src.EXPECT().Float64().Return(u)
		x, density, err := d.Sample(src)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, x, d.MinX())
		assert.Less(t, x, d.MaxX())
		assert.Equal(t, d.PDF(x), density)
	}
}

// TestPiecewise_SampleIsUnbiased checks with a chi-squared test that samples
// are distributed according to the probability mass of the intervals.
func TestPiecewise_SampleIsUnbiased(t *testing.T) {
	d := newTenBuckets(t)
	src := uniform.NewLCG(999)
	numSteps := 20000
	steps := d.Steps()
	counts := make([]int, len(steps))
	for range numSteps {
		x, _, err := d.Sample(src)
		require.NoError(t, err)
		counts[d.find(x)]++
	}
	chi2 := 0.0
	lower := 0.0
	for i, s := range steps {
		expected := float64(numSteps) * (s.Upper - lower) * s.Density
		err := expected - float64(counts[i])
		chi2 += (err * err) / expected
		lower = s.Upper
	}
	alpha := 0.001
	df := float64(len(steps) - 1)
	chi2Critical := distuv.ChiSquared{K: df, Src: nil}.Quantile(1.0 - alpha)
	if chi2 > chi2Critical {
		t.Fatalf("sampling is biased; chi2 %v exceeds %v", chi2, chi2Critical)
	}
}

func TestPiecewise_ECDF(t *testing.T) {
	d := newPeaked(t)
	f := d.ECDF()
	require.Len(t, f, 4)
	assert.Equal(t, [2]float64{0, 0}, f[0])
	assert.InDelta(t, 0.045, f[1][1], 1e-12)
	assert.InDelta(t, 0.955, f[2][1], 1e-9)
	assert.InDelta(t, 1.0, f[3][1], 1e-9)
	assert.Equal(t, 1.0, f[3][0])
}

func TestPiecewise_StepsAreCopied(t *testing.T) {
	d := newPeaked(t)
	steps := d.Steps()
	steps[0].Density = 100
	assert.Equal(t, 0.1, d.PDF(0.1))
	assert.Equal(t, 9.1, d.MaxDensity())
}
