// Package app wires the scanner, renamer, name generator and state store
// into the operations both shells (CLI and desktop) expose.
package app

import (
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
	"github.com/backmassage/picrename/internal/naming"
	"github.com/backmassage/picrename/internal/pipeline"
	"github.com/backmassage/picrename/internal/state"
)

// App is the core facade. Build one per process.
type App struct {
	cfg     *config.Config
	store   state.Store
	scanner *pipeline.Scanner
	renamer *pipeline.Renamer
	log     *logging.Logger
	now     func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithClock fixes the clock for previews and batch date stamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New builds an App over fs. A nil store uses the file store in
// cfg.StateDir.
func New(cfg *config.Config, fs afero.Fs, store state.Store, log *logging.Logger, opts ...Option) *App {
	if store == nil {
		store = state.NewFileStore(fs, cfg.StateDir)
	}
	a := &App{cfg: cfg, store: store, log: log, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	a.scanner = pipeline.NewScanner(cfg, fs, log)
	a.renamer = pipeline.NewRenamer(cfg, fs, store, log, pipeline.WithClock(a.now))
	return a
}

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// LastNumber returns the persisted next start number.
func (a *App) LastNumber() (int, error) {
	rec, err := a.store.Load()
	if err != nil {
		return 0, err
	}
	return rec.LastNumber, nil
}

// LastPrefix returns the persisted prefix.
func (a *App) LastPrefix() (string, error) {
	rec, err := a.store.Load()
	if err != nil {
		return "", err
	}
	return rec.LastPrefix, nil
}

// ImageFiles lists the images below folder, sorted, as absolute paths.
func (a *App) ImageFiles(folder string) ([]string, error) {
	return a.scanner.Scan(folder)
}

// RenameFiles runs one batch.
func (a *App) RenameFiles(req pipeline.Request) (pipeline.Outcome, error) {
	return a.renamer.Rename(req)
}

// Preview returns the name the first file of a batch would get today.
func (a *App) Preview(prefix string, start int) string {
	return a.Generator().Preview(prefix, start, a.now())
}

// Generator exposes the active name generator.
func (a *App) Generator() *naming.Generator { return a.renamer.Generator() }
