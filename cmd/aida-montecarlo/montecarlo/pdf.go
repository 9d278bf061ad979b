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
	"github.com/0xsoniclabs/aida-montecarlo/logger"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/experiment"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/uniform"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/visualizer"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// chartPoints is the resolution of the density chart.
const chartPoints = 501

// PdfCommand samples a piecewise distribution and compares the sampled
// bucket shares with the step probabilities.
var PdfCommand = cli.Command{
	Action:    pdfAction,
	Name:      "pdf",
	Usage:     "sample a piecewise constant distribution",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SeedFlag,
		&utils.MaxPowerFlag,
		&utils.DistributionFlag,
		&utils.OutputFlag,
		&utils.ChartFlag,
		&utils.QuietFlag,
	},
	Description: `The pdf command draws 2^max-power samples from one of the fixture
distributions by inverse transform sampling and reports the share of samples
per step next to the probability of the step.`,
}

// pdfAction samples the selected distribution and reports the histogram.
func pdfAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Pdf")

	f, err := experiment.NewFixtures()
	if err != nil {
		return err
	}
	d, err := f.Distribution(cfg.Distribution)
	if err != nil {
		return err
	}

	var src uniform.Source
	if cfg.Seed == 0 {
		src = uniform.NewTimeSeeded()
	} else {
		src = uniform.NewLCG(cfg.Seed)
	}
	n := 1 << cfg.MaxPower
	buckets, err := experiment.Histogram(d, n, src)
	if err != nil {
		return errors.Wrapf(err, "cannot sample %s distribution", cfg.Distribution)
	}
	chi2, p := experiment.GoodnessOfFit(buckets, n)
	log.Infof("Drew %d samples from %s distribution; chi-squared %.3f, p-value %.4f", n, cfg.Distribution, chi2, p)

	csv, err := experiment.BucketCSV(buckets)
	if err != nil {
		return err
	}
	printers := utils.NewPrinters().
		AddPrinterToTable(cfg.Quiet, cfg.Distribution, func() ([]string, [][]string) {
			return experiment.BucketHeader, experiment.BucketRecords(buckets)
		}).
		AddPrinterToFile(cfg.Output, func() string {
			return csv + "\n"
		})
	defer func() {
		err = errors.CombineErrors(err, printers.Close())
	}()
	if err = printers.Print(); err != nil {
		return err
	}

	if cfg.Chart != "" {
		log.Noticef("Write chart to %s", cfg.Chart)
		return writeDistributionChart(cfg.Chart, cfg.Distribution, f)
	}
	return nil
}

func writeDistributionChart(path, name string, f *experiment.Fixtures) error {
	d, err := f.Distribution(name)
	if err != nil {
		return err
	}
	chart, err := visualizer.NewDistributionChart(name, d, chartPoints)
	if err != nil {
		return err
	}
	return visualizer.WriteHTML(path, chart)
}
