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

package experiment

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Metric selects the column values reported for a sweep.
type Metric int

const (
	RelativeErrors Metric = iota
	Estimates
	StdDevs
	Milliseconds
)

func (m Metric) String() string {
	switch m {
	case RelativeErrors:
		return "relative-error"
	case Estimates:
		return "estimate"
	case StdDevs:
		return "stddev"
	case Milliseconds:
		return "milliseconds"
	default:
		return "unknown"
	}
}

// ParseMetric converts a metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	for _, m := range []Metric{RelativeErrors, Estimates, StdDevs, Milliseconds} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown metric %q", s)
}

// Value returns the metric of candidate j in row r.
func (m Metric) Value(r Row, j int) float64 {
	switch m {
	case Estimates:
		return r.Values[j]
	case StdDevs:
		return r.StdDevs[j]
	case Milliseconds:
		return float64(r.Durations[j].Microseconds()) / 1000.0
	default:
		return r.Errors[j]
	}
}

// Header returns the column names: the power of two followed by the candidates.
func Header(names []string) []string {
	return append([]string{"N"}, names...)
}

// Records formats one record per row with the selected metric.
func Records(rows []Row, m Metric) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		record := make([]string, 0, len(r.Values)+1)
		record = append(record, strconv.Itoa(r.Power))
		for j := range r.Values {
			record = append(record, strconv.FormatFloat(m.Value(r, j), 'f', 3, 64))
		}
		records[i] = record
	}
	return records
}

// CSV renders header and records as comma separated values.
func CSV(names []string, rows []Row, m Metric) (string, error) {
	return toCSV(Header(names), Records(rows, m))
}

func toCSV(header []string, records [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// SQLRows flattens a sweep into one row per power and candidate:
// (experiment, power, n, estimator, estimate, relative error, stddev, nanoseconds).
func SQLRows(experiment string, names []string, rows []Row) [][]any {
	values := make([][]any, 0, len(rows)*len(names))
	for _, r := range rows {
		for j, name := range names {
			values = append(values, []any{
				experiment, r.Power, r.N, name,
				r.Values[j], r.Errors[j], r.StdDevs[j], r.Durations[j].Nanoseconds(),
			})
		}
	}
	return values
}
