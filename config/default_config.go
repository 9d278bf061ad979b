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

package config

import (
	"time"

	"github.com/0xsoniclabs/aida-montecarlo/logger"
	"github.com/0xsoniclabs/aida-montecarlo/utils"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Chart:        getFlagValue(ctx, utils.ChartFlag).(string),
		Db:           getFlagValue(ctx, utils.DbFlag).(string),
		Delay:        getFlagValue(ctx, utils.DelayFlag).(time.Duration),
		Distribution: getFlagValue(ctx, utils.DistributionFlag).(string),
		Heuristic:    getFlagValue(ctx, utils.HeuristicFlag).(string),
		LogLevel:     getFlagValue(ctx, logger.LogLevelFlag).(string),
		MaxDensity:   getFlagValue(ctx, utils.MaxDensityFlag).(float64),
		MaxPower:     getFlagValue(ctx, utils.MaxPowerFlag).(int),
		MetricName:   getFlagValue(ctx, utils.MetricFlag).(string),
		MinPower:     getFlagValue(ctx, utils.MinPowerFlag).(int),
		Output:       getFlagValue(ctx, utils.OutputFlag).(string),
		Quiet:        getFlagValue(ctx, utils.QuietFlag).(bool),
		Runs:         getFlagValue(ctx, utils.RunsFlag).(int),
		SamplesA:     getFlagValue(ctx, utils.SamplesAFlag).(int),
		SamplesB:     getFlagValue(ctx, utils.SamplesBFlag).(int),
		Seed:         getFlagValue(ctx, utils.SeedFlag).(uint64),
	}

	// commands without a sweep sample at the maximal power only
	if !hasFlag(ctx, utils.MinPowerFlag.Name) {
		cfg.MinPower = cfg.MaxPower
	}

	return cfg
}

// hasFlag reports whether the command in ctx defines the flag
func hasFlag(ctx *cli.Context, name string) bool {
	for _, cmdFlag := range ctx.Command.Flags {
		if cmdFlag.Names()[0] == name {
			return true
		}
	}
	return false
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.DurationFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Duration(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.DurationFlag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
