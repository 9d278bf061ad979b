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

import (
	"github.com/0xsoniclabs/aida-montecarlo/config"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/experiment"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// MisCommand compares single-technique sampling of a product with multiple
// importance sampling.
var MisCommand = cli.Command{
	Action: sweepAction("MIS", func(cfg *config.Config, f *experiment.Fixtures) (experiment.Experiment, error) {
		return experiment.MultipleImportance(f, cfg.SamplesA, cfg.SamplesB, cfg.Heuristics...)
	}),
	Name:      "mis",
	Usage:     "compare single distribution sampling with multiple importance sampling",
	ArgsUsage: "",
	Flags: withSweepFlags(
		&utils.SamplesAFlag,
		&utils.SamplesBFlag,
		&utils.HeuristicFlag,
	),
	Description: `The mis command integrates the product of two piecewise densities A and B
sampling uniformly, from A only, from B only and from both combined with the
balance or power heuristic.`,
}
