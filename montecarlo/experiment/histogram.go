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
	"sort"
	"strconv"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/piecewise"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution returns the fixture with the given name.
func (f *Fixtures) Distribution(name string) (*piecewise.Distribution, error) {
	switch name {
	case "a":
		return f.A, nil
	case "b":
		return f.B, nil
	case "uniform":
		return f.Uniform, nil
	case "peaked":
		return f.Peaked, nil
	case "bad":
		return f.BadImportance, nil
	}
	return nil, errors.Newf("unknown distribution %q", name)
}

// Bucket compares the probability of one step of a distribution with the
// share of samples that fell into it.
type Bucket struct {
	Lower    float64
	Upper    float64
	Density  float64
	Expected float64 // probability mass of the step
	Sampled  float64 // share of the drawn samples
}

// Histogram draws n samples from d and counts them per step.
func Histogram(d *piecewise.Distribution, n int, src uniform.Source) ([]Bucket, error) {
	if n <= 0 {
		return nil, errors.Newf("invalid number of samples %d", n)
	}
	xs := make([]float64, n)
	for i := range xs {
		x, _, err := d.Sample(src)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	sort.Float64s(xs)

	steps := d.Steps()
	dividers := make([]float64, 0, len(steps)+1)
	dividers = append(dividers, d.MinX())
	for _, s := range steps {
		dividers = append(dividers, s.Upper)
	}
	// the last bin is closed so that samples at maxX are counted
	dividers[len(dividers)-1] = math.Nextafter(d.MaxX(), math.Inf(1))
	counts := stat.Histogram(nil, dividers, xs, nil)

	buckets := make([]Bucket, len(steps))
	lower := d.MinX()
	for i, s := range steps {
		buckets[i] = Bucket{
			Lower:    lower,
			Upper:    s.Upper,
			Density:  s.Density,
			Expected: (s.Upper - lower) * s.Density,
			Sampled:  counts[i] / float64(n),
		}
		lower = s.Upper
	}
	return buckets, nil
}

// BucketHeader names the columns of BucketRecords.
var BucketHeader = []string{"Lower", "Upper", "Density", "Expected", "Sampled"}

// BucketRecords formats one record per bucket.
func BucketRecords(buckets []Bucket) [][]string {
	records := make([][]string, len(buckets))
	for i, b := range buckets {
		records[i] = []string{
			strconv.FormatFloat(b.Lower, 'f', 3, 64),
			strconv.FormatFloat(b.Upper, 'f', 3, 64),
			strconv.FormatFloat(b.Density, 'f', 3, 64),
			strconv.FormatFloat(b.Expected, 'f', 4, 64),
			strconv.FormatFloat(b.Sampled, 'f', 4, 64),
		}
	}
	return records
}

// BucketCSV renders the buckets as comma separated values.
func BucketCSV(buckets []Bucket) (string, error) {
	return toCSV(BucketHeader, BucketRecords(buckets))
}

// GoodnessOfFit returns Pearson's chi-squared statistic of n samples
// distributed over the buckets and its p-value. Buckets without
// probability mass are ignored.
func GoodnessOfFit(buckets []Bucket, n int) (float64, float64) {
	var observed, expected []float64
	for _, b := range buckets {
		if b.Expected <= 0 {
			continue
		}
		observed = append(observed, b.Sampled*float64(n))
		expected = append(expected, b.Expected*float64(n))
	}
	if len(observed) < 2 {
		return 0, 1
	}
	chi2 := stat.ChiSquare(observed, expected)
	return chi2, distuv.ChiSquared{K: float64(len(observed) - 1)}.Survival(chi2)
}
