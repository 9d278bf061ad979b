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

package visualizer

import (
	"io"
	"os"

	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/experiment"
	"github.com/0xsoniclabs/aida-montecarlo/montecarlo/piecewise"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Renderer is a chart that can be written as an HTML page.
type Renderer interface {
	Render(w io.Writer) error
}

// globalOptions are shared by all charts.
func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertPoints converts (x, y) points to chart points.
func convertPoints(data [][2]float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// convergenceSeries extracts the metric of candidate j for all rows.
func convergenceSeries(rows []experiment.Row, j int, m experiment.Metric) [][2]float64 {
	data := make([][2]float64, 0, len(rows))
	for _, r := range rows {
		data = append(data, [2]float64{float64(r.Power), m.Value(r, j)})
	}
	return data
}

// NewConvergenceChart creates a line chart with one series per candidate
// showing the metric over log2 of the number of samples.
func NewConvergenceChart(title string, names []string, rows []experiment.Row, m experiment.Metric) (*charts.Line, error) {
	for _, r := range rows {
		if len(r.Values) != len(names) || len(r.Errors) != len(names) ||
			len(r.StdDevs) != len(names) || len(r.Durations) != len(names) {
			return nil, errors.Newf("row for power %d has %d values, expected %d", r.Power, len(r.Values), len(names))
		}
	}
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions(title, m.String()),
		charts.WithXAxisOpts(opts.XAxis{Name: "log2(N)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: m.String(), Type: "value"}),
	)...)
	for j, name := range names {
		chart.AddSeries(name, convertPoints(convergenceSeries(rows, j, m)))
	}
	return chart, nil
}

// NewDistributionChart creates a line chart of the density and the
// cumulative distribution of d evaluated at the given number of points.
func NewDistributionChart(title string, d *piecewise.Distribution, points int) (*charts.Line, error) {
	if points < 2 {
		return nil, errors.Newf("need at least two points, got %d", points)
	}
	pdf := make([][2]float64, 0, points)
	step := (d.MaxX() - d.MinX()) / float64(points-1)
	for i := 0; i < points; i++ {
		x := d.MinX() + float64(i)*step
		pdf = append(pdf, [2]float64{x, d.PDF(x)})
	}
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions(title, "Piecewise Distribution"),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
	)...)
	chart.AddSeries("PDF", convertPoints(pdf)).
		AddSeries("CDF", convertPoints(d.ECDF()))
	return chart, nil
}

// WriteHTML renders the chart into the file at path.
func WriteHTML(path string, chart Renderer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart file %s", path)
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	if err = chart.Render(f); err != nil {
		return errors.Wrapf(err, "cannot render chart into %s", path)
	}
	return nil
}
