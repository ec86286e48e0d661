package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/backmassage/picrename/internal/check"
	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/display"
	"github.com/backmassage/picrename/internal/pipeline"
	"github.com/backmassage/picrename/internal/state"
)

// Command flag names.
const (
	flagPrefix       = "prefix"
	flagStart        = "start"
	flagRenameFolder = "rename-folder"
	flagDryRun       = "dry-run"
)

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "List the image files below a folder",
		ArgsUsage: "<folder>",
		Action:    scanAction,
	}
}

func scanAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("folder required", 1)
	}
	e := getEnv(c)
	files, err := e.app.ImageFiles(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return e.renderer.RenderFiles(files)
}

// batchFlags are shared by rename and preview.
func batchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagPrefix,
			Aliases: []string{"p"},
			Usage:   "Name prefix (default: last used)",
		},
		&cli.IntFlag{
			Name:    flagStart,
			Aliases: []string{"s"},
			Usage:   "First sequence number (default: where the last batch stopped)",
		},
	}
}

func renameCommand() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a folder's images, or the given files, as one batch",
		ArgsUsage: "<folder> | <file>...",
		Flags: append(batchFlags(),
			&cli.BoolFlag{
				Name:  flagRenameFolder,
				Usage: "Rename the first file's folder to the batch summary afterwards",
			},
			&cli.BoolFlag{
				Name:  flagDryRun,
				Usage: "Show the new names without renaming or saving state",
			},
		),
		Action: renameAction,
	}
}

func renameAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("folder or files required", 1)
	}
	e := getEnv(c)

	files, err := batchFiles(c, e)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	prefix, start, err := batchDefaults(c, e)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if e.cfg.Format == config.FormatTable {
		display.PrintBanner(c.App.Writer)
	}
	if !c.Bool(flagDryRun) {
		if err := check.CheckState(&e.cfg, e.fs); err != nil {
			e.log.Warn("%v; the next start number will not be remembered", err)
		}
	}

	out, err := e.app.RenameFiles(pipeline.Request{
		Files:        files,
		Prefix:       prefix,
		StartNumber:  start,
		RenameFolder: c.Bool(flagRenameFolder),
		DryRun:       c.Bool(flagDryRun),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := e.renderer.RenderOutcome(&out); err != nil {
		return err
	}
	if err := out.Err(); err != nil {
		e.log.Debug("Batch errors: %v", err)
		return cli.Exit("", 1)
	}
	return nil
}

// batchFiles expands a single directory argument by scanning it; otherwise
// the arguments are the batch, in the order given.
func batchFiles(c *cli.Context, e *env) ([]string, error) {
	args := c.Args().Slice()
	if len(args) == 1 {
		if fi, err := e.fs.Stat(args[0]); err == nil && fi.IsDir() {
			files, err := e.app.ImageFiles(args[0])
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w: no images in %s", pipeline.ErrEmptyBatch, args[0])
			}
			return files, nil
		}
	}
	files := make([]string, len(args))
	for i, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", pipeline.ErrInvalidPath, a)
		}
		files[i] = abs
	}
	return files, nil
}

// batchDefaults returns --prefix and --start, falling back to the
// persisted values for whichever was not given. When the state location is
// unusable the stock defaults apply.
func batchDefaults(c *cli.Context, e *env) (string, int, error) {
	def := state.Default()
	prefix := c.String(flagPrefix)
	if !c.IsSet(flagPrefix) {
		p, err := e.app.LastPrefix()
		switch {
		case errors.Is(err, state.ErrConfigUnavailable):
			e.log.Warn("%v; using prefix %q", err, def.LastPrefix)
			p = def.LastPrefix
		case err != nil:
			return "", 0, err
		}
		prefix = p
	}
	start := c.Int(flagStart)
	if !c.IsSet(flagStart) {
		n, err := e.app.LastNumber()
		switch {
		case errors.Is(err, state.ErrConfigUnavailable):
			e.log.Warn("%v; starting at %d", err, def.LastNumber)
			n = def.LastNumber
		case err != nil:
			return "", 0, err
		}
		start = n
	}
	return prefix, start, nil
}

func lastCommand() *cli.Command {
	return &cli.Command{
		Name:   "last",
		Usage:  "Show the saved next start number and prefix",
		Action: lastAction,
	}
}

func lastAction(c *cli.Context) error {
	e := getEnv(c)
	n, err := e.app.LastNumber()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	p, err := e.app.LastPrefix()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return e.renderer.Render(state.Record{LastNumber: n, LastPrefix: p})
}

// previewResult is what preview renders.
type previewResult struct {
	Policy  config.NamingPolicy `json:"policy" yaml:"policy"`
	Prefix  string              `json:"prefix" yaml:"prefix"`
	Start   int                 `json:"start" yaml:"start"`
	Example string              `json:"example" yaml:"example"`
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:   "preview",
		Usage:  "Show the name the first file of a batch would get",
		Flags:  batchFlags(),
		Action: previewAction,
	}
}

func previewAction(c *cli.Context) error {
	e := getEnv(c)
	prefix, start, err := batchDefaults(c, e)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return e.renderer.Render(previewResult{
		Policy:  e.cfg.Policy,
		Prefix:  prefix,
		Start:   start,
		Example: e.app.Preview(prefix, start),
	})
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Check the state directory and settings file",
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	e := getEnv(c)
	if e.cfg.Format == config.FormatTable {
		display.PrintBanner(c.App.Writer)
	}
	if !check.RunCheck(&e.cfg, e.fs, e.log) {
		return cli.Exit("", 1)
	}
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "picrename %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
