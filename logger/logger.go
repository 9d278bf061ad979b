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

package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const (
	defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"
	defaultLogLevel  = "INFO"
)

// LogLevelFlag defines the verbosity of the command line tools.
var LogLevelFlag = cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"log"},
	Usage:   "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

// NewLogger creates a logger writing to stdout for the given module. An
// unknown level falls back to INFO.
func NewLogger(level string, module string) *logging.Logger {
	return newLogger(level, module, logging.NewLogBackend(os.Stdout, "", 0))
}

func newLogger(level string, module string, backend logging.Backend) *logging.Logger {
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))
	leveled := logging.AddModuleLevel(formatter)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		fmt.Printf("cannot parse log level %q, using %s\n", level, defaultLogLevel)
		lvl, _ = logging.LogLevel(defaultLogLevel)
	}
	leveled.SetLevel(lvl, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return log
}

// ParseTime splits elapsed into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second) / time.Second)
	return total / 3600, total % 3600 / 60, total % 60
}
