// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/pkg/buildinfo"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/agent"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/cli"
)

func init() {
	if v := os.Getenv("TZ"); strings.HasPrefix(v, ":") {
		_ = os.Unsetenv("TZ")
	}
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("snmpcollect, version: %s\n", buildinfo.Version)
		return
	}

	if opts.LogLevel != "" && !logger.Level.SetByName(opts.LogLevel) {
		logger.Warningf("unknown log level '%s', ignored", opts.LogLevel)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	a := agent.New(agent.Config{
		ConfigPath: opts.ConfigPath,
		Listen:     opts.Listen,
		Once:       opts.Once,
		Out:        os.Stdout,
	})

	a.Infof("snmpcollect %s, config: %s", buildinfo.Version, opts.ConfigPath)

	if err := a.Run(); err != nil {
		a.Error(err)
		os.Exit(1)
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args[1:])
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
