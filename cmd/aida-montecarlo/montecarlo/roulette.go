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
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/roulette"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// RouletteCommand compares uniform sampling with and without russian roulette.
var RouletteCommand = cli.Command{
	Action:    sweepAction("Roulette", buildRoulette),
	Name:      "roulette",
	Usage:     "compare uniform sampling with and without russian roulette",
	ArgsUsage: "",
	Flags: withSweepFlags(
		&utils.MaxDensityFlag,
		&utils.DelayFlag,
	),
	Description: `The roulette command integrates the product of two piecewise densities A
and B and skips evaluations of the product with a probability decreasing in A.
A delay simulates expensive evaluations; use --metric milliseconds to compare
run times.`,
}

func buildRoulette(cfg *config.Config, f *experiment.Fixtures) (experiment.Experiment, error) {
	var cost func()
	if cfg.Delay > 0 {
		cost = roulette.Delay(cfg.Delay)
	}
	return experiment.RussianRoulette(f, cfg.MaxDensity, cost)
}
