package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/backmassage/picrename/internal/app"
	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/display"
	"github.com/backmassage/picrename/internal/logging"
	"github.com/backmassage/picrename/internal/state"
)

const envKey = "env"

// env is everything a command needs, built once in the Before hook.
type env struct {
	cfg      config.Config
	fs       afero.Fs
	log      *logging.Logger
	app      *app.App
	renderer *display.Renderer
}

// setup layers defaults, the settings file and flags into a Config, then
// builds the logger, the core App and the renderer.
func setup(c *cli.Context) error {
	cfg, warnings, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if cfg.Format == "" {
		cfg.Format = display.ResolveFormat(os.Stdout)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for _, w := range warnings {
		log.Warn("%s", w)
	}

	fs := afero.NewOsFs()
	e := &env{
		cfg:      cfg,
		fs:       fs,
		log:      log,
		renderer: display.NewRenderer(&cfg, os.Stdout),
	}
	e.app = app.New(&e.cfg, fs, nil, log)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[envKey] = e
	return nil
}

func teardown(c *cli.Context) error {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		e.log.Close()
	}
	return nil
}

func getEnv(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

// loadConfig applies defaults, then the settings file, then explicit flags.
// The flags are read twice: first only to locate the settings file.
// Warnings are returned for the logger, which does not exist yet.
func loadConfig(c *cli.Context) (config.Config, []string, error) {
	cfg := config.DefaultConfig()

	located := cfg
	if err := config.ApplyFlags(c, &located); err != nil {
		return cfg, nil, err
	}

	var warnings []string
	settings, err := loadSettings(located.SettingsFile, located.StateDir)
	switch {
	case err != nil && located.SettingsFile != "":
		return cfg, nil, err
	case err != nil:
		// An unusable state location never blocks renaming.
		warnings = append(warnings, fmt.Sprintf("Settings ignored: %v", err))
	case settings != nil:
		if err := settings.Apply(&cfg); err != nil {
			return cfg, nil, err
		}
	}

	if err := config.ApplyFlags(c, &cfg); err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, warnings, nil
}

// loadSettings reads an explicit settings file, or <state dir>/settings.yaml
// when it exists.
func loadSettings(explicit, stateDir string) (*config.Settings, error) {
	if explicit != "" {
		return config.LoadSettings(explicit)
	}
	dir, err := state.ResolveDir(stateDir)
	if errors.Is(err, state.ErrConfigUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return config.LoadSettingsIfExists(filepath.Join(dir, config.SettingsFileName))
}
