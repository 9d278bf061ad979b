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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/aida-montecarlo/cmd/aida-montecarlo/montecarlo"
	"github.com/urfave/cli/v2"
)

// MonteCarloApp data structure
var MonteCarloApp = cli.App{
	Name:      "Aida Monte Carlo Workbench",
	HelpName:  "aida-montecarlo",
	Usage:     "compare variance reduction strategies of Monte Carlo integration",
	Copyright: "(c) 2025 Fantom Foundation",
	Commands: []*cli.Command{
		&montecarlo.PdfCommand,
		&montecarlo.ImportanceCommand,
		&montecarlo.MisCommand,
		&montecarlo.RouletteCommand,
		&montecarlo.HemisphereCommand,
	},
}

// main implements aida-montecarlo cli.
func main() {
	if err := MonteCarloApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
