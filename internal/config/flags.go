package config

// This file binds the global CLI flags to Config.
// Flags are grouped into naming, persistence, and display.
// Values are applied only when the user set them, so settings-file values
// hold unless overridden on the command line.

import (
	"github.com/urfave/cli/v2"
)

// Global flag names.
const (
	FlagPolicy     = "policy"
	FlagExtensions = "extensions"
	FlagStateDir   = "state-dir"
	FlagSettings   = "settings"
	FlagFormat     = "format"
	FlagColor      = "color"
	FlagNoColor    = "no-color"
	FlagVerbose    = "verbose"
	FlagLog        = "log"
)

// GlobalFlags returns the flags shared by every picrename command.
func GlobalFlags() []cli.Flag {
	flags := namingFlags()
	flags = append(flags, persistenceFlags()...)
	return append(flags, displayFlags()...)
}

// namingFlags registers --policy and --extensions.
func namingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  FlagPolicy,
			Usage: "Naming policy: random | sequential",
		},
		&cli.StringFlag{
			Name:  FlagExtensions,
			Usage: "Image extension set: broad | narrow",
		},
	}
}

// persistenceFlags registers --state-dir and --settings.
func persistenceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagStateDir,
			Usage:   "Directory holding config.json (default: ~/.image_rename_tool)",
			EnvVars: []string{"PICRENAME_HOME"},
		},
		&cli.StringFlag{
			Name:  FlagSettings,
			Usage: "YAML settings file (default: <state dir>/settings.yaml when present)",
		},
	}
}

// displayFlags registers --format, --color, --no-color, -v/--verbose, -l/--log.
func displayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagFormat,
			Aliases: []string{"f"},
			Usage:   "Output format: table | json | yaml",
		},
		&cli.BoolFlag{
			Name:  FlagColor,
			Usage: "Force colored output",
		},
		&cli.BoolFlag{
			Name:  FlagNoColor,
			Usage: "Disable colored output",
		},
		&cli.BoolFlag{
			Name:    FlagVerbose,
			Aliases: []string{"v"},
			Usage:   "Verbose output",
		},
		&cli.StringFlag{
			Name:    FlagLog,
			Aliases: []string{"l"},
			Usage:   "Append logs to file",
		},
	}
}

// ApplyFlags copies explicitly set global flags into cfg.
func ApplyFlags(c *cli.Context, cfg *Config) error {
	if c.IsSet(FlagPolicy) {
		p, err := ParseNamingPolicy(c.String(FlagPolicy))
		if err != nil {
			return err
		}
		cfg.Policy = p
	}
	if c.IsSet(FlagExtensions) {
		e, err := ParseExtensionSet(c.String(FlagExtensions))
		if err != nil {
			return err
		}
		cfg.Extensions = e
	}
	if c.IsSet(FlagStateDir) {
		cfg.StateDir = NormalizeDirArg(c.String(FlagStateDir))
	}
	if c.IsSet(FlagSettings) {
		cfg.SettingsFile = c.String(FlagSettings)
	}
	if c.IsSet(FlagFormat) {
		f, err := ParseOutputFormat(c.String(FlagFormat))
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if c.Bool(FlagNoColor) {
		cfg.ColorMode = ColorNever
	} else if c.Bool(FlagColor) {
		cfg.ColorMode = ColorAlways
	}
	if c.IsSet(FlagVerbose) {
		cfg.Verbose = c.Bool(FlagVerbose)
	}
	if c.IsSet(FlagLog) {
		cfg.LogFile = c.String(FlagLog)
	}
	return nil
}
