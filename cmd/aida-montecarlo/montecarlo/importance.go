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
	"github.com/urfave/cli/v2"
)

// ImportanceCommand compares uniform and importance sampling of a narrow peak.
var ImportanceCommand = cli.Command{
	Action: sweepAction("Importance", func(_ *config.Config, f *experiment.Fixtures) (experiment.Experiment, error) {
		return experiment.Importance(f), nil
	}),
	Name:      "importance",
	Usage:     "compare uniform sampling with good and bad importance sampling",
	ArgsUsage: "",
	Flags:     withSweepFlags(),
	Description: `The importance command integrates exp(-1000(x-0.5)^2) over [0,1) with
uniform sampling, a piecewise distribution concentrated on the peak and one
avoiding it, for an increasing number of samples.`,
}
