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

package mis

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Heuristic selects how samples of several techniques are weighted.
type Heuristic int

const (
	// Balance weights a technique proportionally to its sample-count-scaled density.
	Balance Heuristic = iota
	// Power weights with squared scaled densities (exponent two).
	Power
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

func (h Heuristic) String() string {
	switch h {
	case Balance:
		return "balance"
	case Power:
		return "power"
	default:
		return "unknown"
	}
}

// ParseHeuristic converts a heuristic name into a Heuristic.
func ParseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(s) {
	case "balance", "balanced":
		return Balance, nil
	case "power":
		return Power, nil
	}
	return 0, errors.Wrapf(ErrUnknownHeuristic, "%q", s)
}

// scale applies the heuristic to a sample-count-scaled density.
func (h Heuristic) scale(v float64) float64 {
	if h == Power {
		return v * v
	}
	return v
}

// Weight computes the weight of technique i with ni samples and density pi
// against technique j with nj samples and density pj. For any point the
// weights of both techniques sum to one.
func Weight(h Heuristic, ni int, pi float64, nj int, pj float64) float64 {
	a := h.scale(float64(ni) * pi)
	b := h.scale(float64(nj) * pj)
	return a / (a + b)
}

// WeightN generalizes Weight to any number of techniques. The weight of
// technique i is s(n_i*p_i) / sum_k s(n_k*p_k), where s is the identity for
// the balance heuristic and the square for the power heuristic.
func WeightN(h Heuristic, i int, counts []int, densities []float64) float64 {
	num := h.scale(float64(counts[i]) * densities[i])
	den := 0.0
	for k := range counts {
		den += h.scale(float64(counts[k]) * densities[k])
	}
	return num / den
}
