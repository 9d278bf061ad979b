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

package uniform

import (
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo"
)

// Source produces independent uniform values in [0,1).
//
//go:generate mockgen -source source.go -destination source_mock.go -package uniform
type Source interface {
	Float64() float64
}

const (
	modulus = uint64(1) << montecarlo.LCGModulusBits
	mask    = modulus - 1
)

// LCG is a linear congruential generator with the recurrence
// state = (A*state + C) mod 2^32. It is not safe for concurrent use.
// LCG also satisfies the Source interface of golang.org/x/exp/rand,
// so it can drive gonum distributions.
type LCG struct {
	state uint64
}

// NewLCG creates a generator with an explicit seed; runs are reproducible.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// NewTimeSeeded creates a generator seeded from the wall clock.
func NewTimeSeeded() *LCG {
	return NewLCG(uint64(time.Now().UnixNano()))
}

// next advances the state exactly once.
func (g *LCG) next() uint64 {
	g.state = (montecarlo.LCGMultiplier*g.state + montecarlo.LCGIncrement) & mask
	return g.state
}

// Float64 returns the next value in [0,1).
func (g *LCG) Float64() float64 {
	return float64(g.next()) / float64(modulus)
}

// Uint64 concatenates two consecutive states into a 64-bit value.
func (g *LCG) Uint64() uint64 {
	hi := g.next()
	return hi<<32 | g.next()
}

// Seed resets the state of the generator.
func (g *LCG) Seed(seed uint64) {
	g.state = seed
}

// State returns the current state without advancing it.
func (g *LCG) State() uint64 {
	return g.state
}
