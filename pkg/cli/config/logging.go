package config

import (
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logging is a flag group of the global logger
type Logging struct {
	level  string
	format string
	output string
}

func (x *Logging) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Aliases:     []string{"L"},
			Sources:     cli.EnvVars("SURCH_LOG_LEVEL"),
			Destination: &x.level,
			Value:       "info",
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [text|json]",
			Sources:     cli.EnvVars("SURCH_LOG_FORMAT"),
			Destination: &x.format,
			Value:       "text",
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [-|stdout|stderr|<file>]",
			Sources:     cli.EnvVars("SURCH_LOG_OUTPUT"),
			Destination: &x.output,
			Value:       "-",
		},
	}
}

// Configure sets up the default logger. verbose overrides the level to debug.
func (x *Logging) Configure(verbose bool) error {
	level := x.level
	if verbose {
		level = "debug"
	}
	return logging.Configure(x.format, level, x.output)
}
