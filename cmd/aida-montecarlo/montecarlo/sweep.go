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
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/config"
	"github.com/0xsoniclabs/aida-montecarlo/logger"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/experiment"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/visualizer"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const (
	createResults = `CREATE TABLE IF NOT EXISTS results (
	experiment TEXT NOT NULL,
	power INTEGER NOT NULL,
	n INTEGER NOT NULL,
	estimator TEXT NOT NULL,
	estimate REAL,
	relative_error REAL,
	stddev REAL,
	nanoseconds INTEGER
)`
	insertResult = `INSERT INTO results (experiment, power, n, estimator, estimate, relative_error, stddev, nanoseconds)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

// sweepFlags are shared by all commands running a convergence sweep.
var sweepFlags = []cli.Flag{
	&logger.LogLevelFlag,
	&utils.SeedFlag,
	&utils.MinPowerFlag,
	&utils.MaxPowerFlag,
	&utils.RunsFlag,
	&utils.MetricFlag,
	&utils.OutputFlag,
	&utils.ChartFlag,
	&utils.DbFlag,
	&utils.QuietFlag,
}

// withSweepFlags appends the command specific flags to the sweep flags.
func withSweepFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, sweepFlags...), flags...)
}

// build constructs the experiment of a command from its configuration.
type build func(cfg *config.Config, f *experiment.Fixtures) (experiment.Experiment, error)

// sweepAction returns a command action running the experiment built by b
// and reporting its convergence.
func sweepAction(module string, b build) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := config.NewConfig(ctx)
		if err != nil {
			return err
		}
		log := logger.NewLogger(cfg.LogLevel, module)

		f, err := experiment.NewFixtures()
		if err != nil {
			return err
		}
		e, err := b(cfg, f)
		if err != nil {
			return err
		}
		return runSweep(cfg, e, log)
	}
}

// runSweep integrates with 2^MinPower ... 2^MaxPower samples and reports
// the selected metric to the console, CSV, chart and database outputs.
func runSweep(cfg *config.Config, e experiment.Experiment, log *logging.Logger) error {
	sweep, err := experiment.NewSweep(cfg.MinPower, cfg.MaxPower, cfg.Runs, cfg.Seed, e.Expected, log)
	if err != nil {
		return err
	}

	log.Noticef("Run %s experiment for n=2^%d..2^%d, expected value %.6f", e.Name, cfg.MinPower, cfg.MaxPower, e.Expected)
	start := time.Now()
	rows, err := sweep.Run(e.Candidates)
	if err != nil {
		return errors.Wrapf(err, "%s experiment failed", e.Name)
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("%s experiment finished after %vh %vm %vs", e.Name, hours, minutes, seconds)

	return report(cfg, e.Name, experiment.Names(e.Candidates), rows, log)
}

// report writes the rows of a sweep to all configured outputs.
func report(cfg *config.Config, name string, names []string, rows []experiment.Row, log *logging.Logger) (err error) {
	csv, err := experiment.CSV(names, rows, cfg.Metric)
	if err != nil {
		return err
	}

	printers := utils.NewPrinters().
		AddPrinterToTable(cfg.Quiet, name+": "+cfg.Metric.String(), func() ([]string, [][]string) {
			return experiment.Header(names), experiment.Records(rows, cfg.Metric)
		}).
		AddPrinterToFile(cfg.Output, func() string {
			return csv + "\n"
		})
	printers, err = printers.AddPrinterToSqlite3(cfg.Db, createResults, insertResult, func() [][]any {
		return experiment.SQLRows(name, names, rows)
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, printers.Close())
	}()
	if err = printers.Print(); err != nil {
		return err
	}
	if cfg.Output != "" {
		log.Noticef("Write %s to %s", cfg.Metric, cfg.Output)
	}

	if cfg.Chart != "" {
		log.Noticef("Write chart to %s", cfg.Chart)
		return writeConvergenceChart(cfg.Chart, name, names, rows, cfg.Metric)
	}
	return nil
}

func writeConvergenceChart(path, name string, names []string, rows []experiment.Row, m experiment.Metric) error {
	chart, err := visualizer.NewConvergenceChart(name, names, rows, m)
	if err != nil {
		return err
	}
	return visualizer.WriteHTML(path, chart)
}
