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

package utils

import "github.com/urfave/cli/v2"

// Command line flags shared by the montecarlo commands.
var (
	SeedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the uniform random source; 0 seeds from the clock",
		Value: 0,
	}
	MinPowerFlag = cli.IntFlag{
		Name:  "min-power",
		Usage: "smallest number of samples as a power of two",
		Value: 1,
	}
	MaxPowerFlag = cli.IntFlag{
		Name:  "max-power",
		Usage: "largest number of samples as a power of two",
		Value: 15,
	}
	RunsFlag = cli.IntFlag{
		Name:  "runs",
		Usage: "number of repetitions per number of samples",
		Value: 1,
	}
	SamplesAFlag = cli.IntFlag{
		Name:  "na",
		Usage: "samples drawn from distribution A per MIS iteration",
		Value: 9,
	}
	SamplesBFlag = cli.IntFlag{
		Name:  "nb",
		Usage: "samples drawn from distribution B per MIS iteration",
		Value: 5,
	}
	HeuristicFlag = cli.StringFlag{
		Name:  "heuristic",
		Usage: "MIS weighting heuristic (\"balance\", \"power\", \"all\")",
		Value: "all",
	}
	MaxDensityFlag = cli.Float64Flag{
		Name:  "max-density",
		Usage: "maximal density of A used for the roulette survival probability; 0 uses the maximum of A",
		Value: 0,
	}
	DelayFlag = cli.DurationFlag{
		Name:  "delay",
		Usage: "artificial cost of every integrand evaluation in the roulette experiment",
		Value: 0,
	}
	DistributionFlag = cli.StringFlag{
		Name:  "distribution",
		Usage: "inspected distribution (\"a\", \"b\", \"uniform\", \"peaked\", \"bad\")",
		Value: "peaked",
	}
	MetricFlag = cli.StringFlag{
		Name:  "metric",
		Usage: "reported metric (\"relative-error\", \"estimate\", \"stddev\", \"milliseconds\")",
		Value: "relative-error",
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "CSV output file; compressed if the name ends in .gz",
		Value: "",
	}
	ChartFlag = cli.PathFlag{
		Name:  "chart",
		Usage: "HTML chart output file",
		Value: "",
	}
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "sqlite3 database collecting all results",
		Value: "",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable printing of the result table",
	}
)
