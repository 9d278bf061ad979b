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
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/estimator"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/hemisphere"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/mis"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/roulette"
	"github.com/cockroachdb/errors"
)

// Experiment is a set of estimators of the same integral.
type Experiment struct {
	Name       string
	Expected   float64
	Candidates []Candidate
}

// Importance compares uniform sampling of Peak with a good and a bad
// importance distribution.
func Importance(f *Fixtures) Experiment {
	return Experiment{
		Name:     "importance",
		Expected: PeakIntegral(),
		Candidates: []Candidate{
			{"Uniform", estimator.Uniform{Min: 0.0, Max: 1.0, F: Peak}},
			{"Importance", estimator.Importance{Sampling: f.Peaked, F: Peak}},
			{"Bad Importance", estimator.Importance{Sampling: f.BadImportance, F: Peak}},
		},
	}
}

// MultipleImportance compares single-technique estimators of the product of
// A and B with MIS using na and nb samples per iteration. Without explicit
// heuristics both the balance and the power heuristic take part.
func MultipleImportance(f *Fixtures, na, nb int, heuristics ...mis.Heuristic) (Experiment, error) {
	if len(heuristics) == 0 {
		heuristics = []mis.Heuristic{mis.Balance, mis.Power}
	}
	candidates := []Candidate{
		{"Uniform", estimator.Product{A: f.A, B: f.B, Sampling: f.Uniform}},
		{"A", estimator.Product{A: f.A, B: f.B, Sampling: f.A}},
		{"B", estimator.Product{A: f.A, B: f.B, Sampling: f.B}},
	}
	for _, h := range heuristics {
		c, err := mis.NewPair(f.A, f.B, na, nb, h)
		if err != nil {
			return Experiment{}, err
		}
		candidates = append(candidates, Candidate{misName(h), c})
	}
	return Experiment{
		Name:       "mis",
		Expected:   ExpectedProduct,
		Candidates: candidates,
	}, nil
}

func misName(h mis.Heuristic) string {
	if h == mis.Balance {
		return "Balanced MIS"
	}
	return "Power MIS"
}

// RussianRoulette compares uniform sampling of the product of A and B with
// and without roulette. A maxA of zero uses the maximal density of A, any
// other maxA must not be below it.
func RussianRoulette(f *Fixtures, maxA float64, cost func()) (Experiment, error) {
	if maxA == 0 {
		maxA = f.A.MaxDensity()
	}
	if maxA > 0 && maxA < f.A.MaxDensity() {
		return Experiment{}, errors.Newf("maximum %v is below the maximal density %v of A", maxA, f.A.MaxDensity())
	}
	cfg := roulette.Config{
		Sampling: f.Uniform,
		A:        f.A.PDF,
		B:        f.B.PDF,
		MaxA:     maxA,
		Cost:     cost,
	}
	plain, err := roulette.New(cfg)
	if err != nil {
		return Experiment{}, err
	}
	cfg.Roulette = true
	rr, err := roulette.New(cfg)
	if err != nil {
		return Experiment{}, err
	}
	return Experiment{
		Name:     "roulette",
		Expected: ExpectedProduct,
		Candidates: []Candidate{
			{"no-roulette", plain},
			{"roulette", rr},
		},
	}, nil
}

// Hemisphere compares uniform and cosine-weighted sampling of the
// irradiance under an overcast sky.
func Hemisphere() Experiment {
	return Experiment{
		Name:     "hemisphere",
		Expected: hemisphere.OvercastIrradiance,
		Candidates: []Candidate{
			{"Uniform", hemisphere.Irradiance{Sky: hemisphere.OvercastSky, Strategy: hemisphere.Uniform}},
			{"Cosine", hemisphere.Irradiance{Sky: hemisphere.OvercastSky, Strategy: hemisphere.Cosine}},
		},
	}
}
