// Package check provides diagnostics (the check command) and the
// pre-batch state validation (CheckState) run before a rename.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/state"
)

// Sentinel errors returned by CheckState.
var (
	ErrStateDirUnresolved  = errors.New("state directory cannot be resolved")
	ErrStateDirNotWritable = errors.New("state directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck prints where state and settings live and whether they are
// usable. It never stops early; the result is false when any check failed.
func RunCheck(cfg *config.Config, fs afero.Fs, log Logger) bool {
	log.Info("=== System Check ===")
	log.Info("Policy: %s, extensions: %s", cfg.Policy, cfg.Extensions)

	store := state.NewFileStore(fs, cfg.StateDir)
	dir, err := store.Dir()
	if err != nil {
		log.Error("State directory: %v", err)
		return false
	}
	log.Success("State directory: %s", dir)

	ok := true
	if err := checkWritable(fs, dir); err != nil {
		log.Error("Not writable: %v", err)
		ok = false
	} else {
		log.Success("Writable")
	}

	ok = checkRecord(store, log) && ok
	ok = checkSettings(cfg, dir, log) && ok
	return ok
}

// checkRecord reports the persisted record. A missing or unreadable record
// is only a warning: the next run recreates it.
func checkRecord(store *state.FileStore, log Logger) bool {
	rec, err := store.Peek()
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn("No saved state yet; next batch starts at %d with prefix %q",
			state.DefaultLastNumber, state.DefaultLastPrefix)
	case err != nil:
		log.Warn("Saved state unreadable (%v); defaults will be restored", err)
	default:
		log.Success("Saved state: next number %d, prefix %q", rec.LastNumber, rec.LastPrefix)
	}
	return true
}

// checkSettings parses the settings file that startup would load.
func checkSettings(cfg *config.Config, dir string, log Logger) bool {
	path := cfg.SettingsFile
	if path == "" {
		path = filepath.Join(dir, config.SettingsFileName)
	}
	s, err := config.LoadSettingsIfExists(path)
	if err != nil {
		log.Error("Settings: %v", err)
		return false
	}
	if s == nil {
		log.Info("Settings: none (%s)", path)
		return true
	}
	resolved := config.DefaultConfig()
	if err := s.Apply(&resolved); err != nil {
		log.Error("Settings %s: %v", path, err)
		return false
	}
	log.Success("Settings: %s", path)
	log.Debug("Settings resolve to policy=%s extensions=%s color=%s", resolved.Policy, resolved.Extensions, resolved.ColorMode)
	return true
}

// CheckState is the pre-batch validation: the state directory must resolve
// and accept writes, or the batch would silently lose its bookkeeping.
func CheckState(cfg *config.Config, fs afero.Fs) error {
	dir, err := state.ResolveDir(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateDirUnresolved, err)
	}
	if err := checkWritable(fs, dir); err != nil {
		return fmt.Errorf("%w: %v", ErrStateDirNotWritable, err)
	}
	return nil
}

// --- internal helpers ---

// checkWritable creates dir if needed and round-trips a temp file in it.
func checkWritable(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(fs, dir, ".check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return fs.Remove(name)
}
