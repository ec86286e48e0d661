package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
	"github.com/backmassage/picrename/internal/pipeline"
	"github.com/backmassage/picrename/internal/state"
)

var day = time.Date(2025, time.January, 2, 12, 0, 0, 0, time.Local)

func newTestApp(t *testing.T, policy config.NamingPolicy) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Policy = policy
	cfg.StateDir = t.TempDir()
	return New(&cfg, afero.NewOsFs(), nil, logging.Nop(), WithClock(func() time.Time { return day }))
}

func TestApp_DefaultsCreated(t *testing.T) {
	a := newTestApp(t, config.PolicyRandomSuffix)

	n, err := a.LastNumber()
	if err != nil || n != 1 {
		t.Errorf("LastNumber = %d, %v; want 1", n, err)
	}
	p, err := a.LastPrefix()
	if err != nil || p != "img" {
		t.Errorf("LastPrefix = %q, %v; want img", p, err)
	}
	if _, err := os.Stat(filepath.Join(a.Config().StateDir, "config.json")); err != nil {
		t.Errorf("default record not written: %v", err)
	}
}

func TestApp_ScanRenameRoundTrip(t *testing.T) {
	a := newTestApp(t, config.PolicySequential)
	dir := t.TempDir()
	for _, n := range []string{"b.png", "a.jpg", "skip.txt"} {
		os.WriteFile(filepath.Join(dir, n), nil, 0o644)
	}

	files, err := a.ImageFiles(dir)
	if err != nil {
		t.Fatalf("ImageFiles: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.jpg" {
		t.Fatalf("ImageFiles = %v", files)
	}

	out, err := a.RenameFiles(pipeline.Request{Files: files, Prefix: "home", StartNumber: 41})
	if err != nil {
		t.Fatalf("RenameFiles: %v", err)
	}
	if out.Err() != nil {
		t.Fatalf("Outcome.Err = %v", out.Err())
	}
	if got := out.Success[1].New; got != "home250102042.png" {
		t.Errorf("second name = %q, want home250102042.png", got)
	}

	n, _ := a.LastNumber()
	p, _ := a.LastPrefix()
	if n != 43 || p != "home" {
		t.Errorf("persisted = %d %q, want 43 home", n, p)
	}
}

func TestApp_ImageFilesNotADirectory(t *testing.T) {
	a := newTestApp(t, config.PolicyRandomSuffix)
	if _, err := a.ImageFiles(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, pipeline.ErrNotADirectory) {
		t.Errorf("got %v, want ErrNotADirectory", err)
	}
}

func TestApp_Preview(t *testing.T) {
	a := newTestApp(t, config.PolicySequential)
	if got := a.Preview("img", 1); got != "img250102001.jpg" {
		t.Errorf("Preview = %q, want img250102001.jpg", got)
	}
}

func TestApp_ConfigUnavailable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = "/state"
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	a := New(&cfg, fs, nil, logging.Nop())

	if _, err := a.LastNumber(); !errors.Is(err, state.ErrConfigUnavailable) {
		t.Errorf("LastNumber: got %v, want ErrConfigUnavailable", err)
	}
}
