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

package roulette

import (
	"math"
	"testing"
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/piecewise"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const expectedProduct = 0.8448

var buckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

func newConfig(t *testing.T, roulette bool) Config {
	a, err := piecewise.New(0.0, buckets, []float64{0.5, 1.4, 3.2, 3.0, 0.5, 0.1, 0.1, 0.5, 0.1, 0.6})
	require.NoError(t, err)
	b, err := piecewise.New(0.0, buckets, []float64{2.0, 1.0, 0.8, 0.1, 0.02, 0.04, 0.1, 4.0, 0.0, 1.94})
	require.NoError(t, err)
	u, err := piecewise.Uniform(0, 1)
	require.NoError(t, err)
	return Config{
		Sampling: u,
		A:        a.PDF,
		B:        b.PDF,
		MaxA:     a.MaxDensity(),
		Roulette: roulette,
	}
}

func relativeError(v float64) float64 {
	return math.Abs(v-expectedProduct) / expectedProduct
}

func TestNew_Validation(t *testing.T) {
	cfg := newConfig(t, true)
	cfg.MaxA = 0
	_, err := New(cfg)
	assert.True(t, errors.Is(err, ErrInvalidMaximum))

	cfg = newConfig(t, true)
	cfg.B = nil
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestSurvival(t *testing.T) {
	e, err := New(newConfig(t, true))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, e.Survival(0.25), 1e-12)
	assert.InDelta(t, 1.0-0.1/3.2, e.Survival(0.55), 1e-12)

	e, err = New(newConfig(t, false))
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.Survival(0.55))
}

func TestIntegrate_RouletteSkipsEvaluations(t *testing.T) {
	calls := map[bool]int{}
	for _, enabled := range []bool{false, true} {
		cfg := newConfig(t, enabled)
		cfg.Cost = func() { calls[enabled]++ }
		e, err := New(cfg)
		require.NoError(t, err)
		_, err = e.Integrate(1<<12, uniform.NewLCG(5))
		require.NoError(t, err)
	}
	assert.Equal(t, 1<<12, calls[false])
	assert.Less(t, calls[true], calls[false]/2)
}

func TestIntegrate_ToggleDoesNotChangeExpectation(t *testing.T) {
	found := map[bool]float64{}
	for _, enabled := range []bool{false, true} {
		e, err := New(newConfig(t, enabled))
		require.NoError(t, err)
		v, err := e.Integrate(1<<16, uniform.NewLCG(31))
		require.NoError(t, err)
		found[enabled] = v
		assert.Less(t, relativeError(v), 0.05, "roulette=%v found %v", enabled, v)
	}
	assert.Less(t, math.Abs(found[true]-found[false])/expectedProduct, 0.1)
}

func TestIntegrate_SurvivorIsRescaled(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := uniform.NewMockSource(ctrl)
	e, err := New(newConfig(t, true))
	require.NoError(t, err)
	// x = 0.55 (a = 0.1, b = 0.04), survives since eps = 0.99 > q
	gomock.InOrder(
		src.EXPECT().Float64().Return(0.55),
		src.EXPECT().Float64().Return(0.99),
	)
	v, err := e.Integrate(1, src)
	require.NoError(t, err)
	q := 1.0 - 0.1/3.2
	assert.InDelta(t, 0.1*0.04/(1-q), v, 1e-3)
}

func TestIntegrate_TerminatedSampleContributesConstant(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := uniform.NewMockSource(ctrl)
	cfg := newConfig(t, true)
	cfg.Constant = 0.25
	cfg.Cost = func() { t.Fatal("terminated sample must not be evaluated") }
	e, err := New(cfg)
	require.NoError(t, err)
	gomock.InOrder(
		src.EXPECT().Float64().Return(0.55),
		src.EXPECT().Float64().Return(0.01),
	)
	v, err := e.Integrate(1, src)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}

func TestIntegrate_DividesBySamplingDensity(t *testing.T) {
	cfg := newConfig(t, true)
	a, err := piecewise.New(0.0, buckets, []float64{0.5, 1.4, 3.2, 3.0, 0.5, 0.1, 0.1, 0.5, 0.1, 0.6})
	require.NoError(t, err)
	cfg.Sampling = a
	e, err := New(cfg)
	require.NoError(t, err)
	v, err := e.Integrate(1<<17, uniform.NewLCG(8))
	require.NoError(t, err)
	assert.Less(t, relativeError(v), 0.05, "found %v", v)
}

func TestIntegrate_Errors(t *testing.T) {
	e, err := New(newConfig(t, true))
	require.NoError(t, err)
	_, err = e.Integrate(0, uniform.NewLCG(1))
	assert.True(t, errors.Is(err, estimator.ErrNoSamples))

	ctrl := gomock.NewController(t)
	src := uniform.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(2.0)
	_, err = e.Integrate(1, src)
	assert.True(t, errors.Is(err, piecewise.ErrDomain))
}

func TestDelay(t *testing.T) {
	start := time.Now()
	Delay(time.Millisecond)()
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
