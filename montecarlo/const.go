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

package montecarlo

// Numerical parameters shared by the sampling distributions and estimators.
const (
	// NormalizationTolerance is the maximal deviation of the total probability
	// mass from one accepted when a distribution is constructed.
	NormalizationTolerance = 1e-6

	// InversionTolerance is the absolute error between the target probability
	// and the CDF at which the bisection of the inverse CDF terminates.
	InversionTolerance = 1e-4

	// MaxInversionSteps is the maximal number of bisection steps of the inverse CDF.
	MaxInversionSteps = 1000
)

// Constants of the linear congruential generator.
const (
	LCGMultiplier  = 6364136223846793005
	LCGIncrement   = 1
	LCGModulusBits = 32
)
