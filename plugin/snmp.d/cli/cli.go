// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"github.com/jessevdk/go-flags"
)

const name = "snmpcollect"

// Option defines command line options.
type Option struct {
	ConfigPath string `short:"c" long:"config" description:"main configuration file" default:"/etc/snmpcollect/snmpcollect.yaml"`
	Listen     string `short:"l" long:"listen" description:"exporter address, overrides 'listen' of the configuration file"`
	Once       bool   `long:"once" description:"poll every host one time, print the metrics and exit"`
	LogLevel   string `long:"log-level" description:"log level (debug, info, warning, error)"`
	Debug      bool   `short:"d" long:"debug" description:"debug mode"`
	Version    bool   `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = name
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
