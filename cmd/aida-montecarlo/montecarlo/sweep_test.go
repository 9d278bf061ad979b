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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xsoniclabs/aida-montecarlo/logger"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(cmd *cli.Command) *cli.App {
	app := cli.NewApp()
	app.Commands = []*cli.Command{cmd}
	return app
}

func sweepArgs(cmd *cli.Command) *utils.ArgsBuilder {
	return utils.NewArgs("test").
		Arg(cmd.Name).
		Flag(logger.LogLevelFlag.Name, "error").
		Flag(utils.SeedFlag.Name, uint64(42)).
		Flag(utils.MinPowerFlag.Name, 2).
		Flag(utils.MaxPowerFlag.Name, 5).
		Flag(utils.QuietFlag.Name, true)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func TestCommands_WriteCsv(t *testing.T) {
	tests := []struct {
		cmd    *cli.Command
		header string
	}{
		{&ImportanceCommand, "N,Uniform,Importance,Bad Importance"},
		{&MisCommand, "N,Uniform,A,B,Balanced MIS,Power MIS"},
		{&RouletteCommand, "N,no-roulette,roulette"},
		{&HemisphereCommand, "N,Uniform,Cosine"},
	}
	for _, test := range tests {
		t.Run(test.cmd.Name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "result.csv")
			args := sweepArgs(test.cmd).
				Flag(utils.OutputFlag.Name, output).
				Build()

			err := newTestApp(test.cmd).Run(args)
			require.NoError(t, err)

			lines := readLines(t, output)
			require.Len(t, lines, 5)
			assert.Equal(t, test.header, lines[0])
			assert.True(t, strings.HasPrefix(lines[1], "2,"))
			assert.True(t, strings.HasPrefix(lines[4], "5,"))
		})
	}
}

func TestCommands_AreReproducible(t *testing.T) {
	dir := t.TempDir()
	var outputs [2][]string
	for i := range outputs {
		output := filepath.Join(dir, "run"+string(rune('a'+i))+".csv")
		args := sweepArgs(&MisCommand).
			Flag(utils.MetricFlag.Name, "estimate").
			Flag(utils.OutputFlag.Name, output).
			Build()
		require.NoError(t, newTestApp(&MisCommand).Run(args))
		outputs[i] = readLines(t, output)
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestMisCommand_SelectsHeuristic(t *testing.T) {
	output := filepath.Join(t.TempDir(), "result.csv")
	args := sweepArgs(&MisCommand).
		Flag(utils.HeuristicFlag.Name, "balance").
		Flag(utils.SamplesAFlag.Name, 2).
		Flag(utils.SamplesBFlag.Name, 3).
		Flag(utils.OutputFlag.Name, output).
		Build()

	require.NoError(t, newTestApp(&MisCommand).Run(args))
	assert.Equal(t, "N,Uniform,A,B,Balanced MIS", readLines(t, output)[0])
}

func TestMisCommand_RejectsInvalidAllocation(t *testing.T) {
	args := sweepArgs(&MisCommand).
		Flag(utils.SamplesAFlag.Name, 0).
		Build()

	assert.Error(t, newTestApp(&MisCommand).Run(args))
}

func TestRouletteCommand_RejectsInvalidMaximum(t *testing.T) {
	args := sweepArgs(&RouletteCommand).
		Flag(utils.MaxDensityFlag.Name, -1.0).
		Build()

	assert.Error(t, newTestApp(&RouletteCommand).Run(args))
}

func TestRouletteCommand_Delay(t *testing.T) {
	output := filepath.Join(t.TempDir(), "time.csv")
	args := sweepArgs(&RouletteCommand).
		Flag(utils.MaxPowerFlag.Name, 3).
		Flag(utils.DelayFlag.Name, "1µs").
		Flag(utils.MetricFlag.Name, "milliseconds").
		Flag(utils.OutputFlag.Name, output).
		Build()

	require.NoError(t, newTestApp(&RouletteCommand).Run(args))
	assert.Len(t, readLines(t, output), 3)
}

func TestCommands_WriteCompressedCsv(t *testing.T) {
	output := filepath.Join(t.TempDir(), "result.csv.gz")
	args := sweepArgs(&HemisphereCommand).
		Flag(utils.OutputFlag.Name, output).
		Build()
	require.NoError(t, newTestApp(&HemisphereCommand).Run(args))

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()
	zr, err := gzip.NewReader(file)
	require.NoError(t, err)
	var sb bytes.Buffer
	_, err = sb.ReadFrom(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sb.String(), "N,Uniform,Cosine\n2,"))
}

func TestCommands_WriteChart(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "chart.html")
	args := sweepArgs(&ImportanceCommand).
		Flag(utils.ChartFlag.Name, chart).
		Build()
	require.NoError(t, newTestApp(&ImportanceCommand).Run(args))

	content, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Bad Importance")
}

func TestCommands_WriteDb(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "results.db")
	for _, cmd := range []*cli.Command{&MisCommand, &RouletteCommand} {
		args := sweepArgs(cmd).
			Flag(utils.DbFlag.Name, conn).
			Build()
		require.NoError(t, newTestApp(cmd).Run(args))
	}

	db, err := sqlx.Open("sqlite3", conn)
	require.NoError(t, err)
	defer db.Close()

	var counts []struct {
		Experiment string `db:"experiment"`
		Count      int    `db:"count"`
	}
	require.NoError(t, db.Select(&counts, "SELECT experiment, COUNT(*) AS count FROM results GROUP BY experiment ORDER BY experiment"))
	require.Len(t, counts, 2)
	assert.Equal(t, "mis", counts[0].Experiment)
	assert.Equal(t, 4*5, counts[0].Count)
	assert.Equal(t, "roulette", counts[1].Experiment)
	assert.Equal(t, 4*2, counts[1].Count)

	var n int
	require.NoError(t, db.Get(&n, "SELECT n FROM results WHERE experiment = 'mis' AND power = 5 AND estimator = 'Power MIS'"))
	assert.Equal(t, 32, n)
}

func TestCommands_RejectInvalidPowers(t *testing.T) {
	args := sweepArgs(&ImportanceCommand).
		Flag(utils.MinPowerFlag.Name, 6).
		Build()

	assert.Error(t, newTestApp(&ImportanceCommand).Run(args))
}
