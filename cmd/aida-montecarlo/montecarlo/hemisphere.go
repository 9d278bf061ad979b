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

// HemisphereCommand compares uniform and cosine-weighted hemisphere sampling.
var HemisphereCommand = cli.Command{
	Action: sweepAction("Hemisphere", func(*config.Config, *experiment.Fixtures) (experiment.Experiment, error) {
		return experiment.Hemisphere(), nil
	}),
	Name:      "hemisphere",
	Usage:     "compare uniform and cosine-weighted sampling of the irradiance under an overcast sky",
	ArgsUsage: "",
	Flags:     withSweepFlags(),
}
