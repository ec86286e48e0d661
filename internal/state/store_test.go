package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestFileStore_CreatesDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "/home/u/.image_rename_tool")

	rec, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec != Default() {
		t.Errorf("Load() = %+v, want default %+v", rec, Default())
	}

	b, err := afero.ReadFile(fs, "/home/u/.image_rename_tool/config.json")
	if err != nil {
		t.Fatalf("default not persisted: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("json: %v", err)
	}
	if raw["last_number"] != float64(1) || raw["last_prefix"] != "img" {
		t.Errorf("persisted default = %v", raw)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "/state")

	want := Record{LastNumber: 42, LastPrefix: "trip"}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestFileStore_ParseFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{{{"},
		{"missing prefix", `{"last_number": 7}`},
		{"missing number", `{"last_prefix": "abc"}`},
		{"negative number", `{"last_number": -3, "last_prefix": "abc"}`},
		{"wrong type", `{"last_number": "7", "last_prefix": "abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/state/config.json", []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewFileStore(fs, "/state")
			rec, err := s.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if rec != Default() {
				t.Errorf("Load() = %+v, want default", rec)
			}
			// The broken file is replaced by the default.
			b, _ := afero.ReadFile(fs, "/state/config.json")
			if got, err := decode(b); err != nil || got != Default() {
				t.Errorf("file after fallback = %s (%v)", b, err)
			}
		})
	}
}

func TestFileStore_Unavailable(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := NewFileStore(fs, "/nowhere/.image_rename_tool")

	if _, err := s.Load(); !errors.Is(err, ErrConfigUnavailable) {
		t.Errorf("Load() error = %v, want ErrConfigUnavailable", err)
	}
	if err := s.Save(Default()); !errors.Is(err, ErrConfigUnavailable) {
		t.Errorf("Save() error = %v, want ErrConfigUnavailable", err)
	}
}

func TestResolveDir(t *testing.T) {
	t.Setenv("PICRENAME_HOME", "/env/home")

	if got, _ := ResolveDir("/explicit"); got != "/explicit" {
		t.Errorf("ResolveDir(explicit) = %q", got)
	}
	if got, _ := ResolveDir(""); got != "/env/home" {
		t.Errorf("ResolveDir(env) = %q", got)
	}

	t.Setenv("PICRENAME_HOME", "")
	t.Setenv("HOME", "/home/tester")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatalf("ResolveDir: %v", err)
	}
	if got != filepath.Join("/home/tester", ".image_rename_tool") {
		t.Errorf("ResolveDir(home) = %q", got)
	}
}

func TestFileStore_EnvOverride(t *testing.T) {
	t.Setenv("PICRENAME_HOME", "/env/state")
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "")

	path, err := s.Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != "/env/state/config.json" {
		t.Errorf("Path() = %q", path)
	}
	if ok, _ := afero.DirExists(fs, "/env/state"); !ok {
		t.Error("state directory not created")
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	rec, _ := m.Load()
	if rec != Default() {
		t.Errorf("initial Load() = %+v", rec)
	}
	if err := m.Save(Record{LastNumber: 9, LastPrefix: "x"}); err != nil {
		t.Fatal(err)
	}
	rec, _ = m.Load()
	if rec.LastNumber != 9 || rec.LastPrefix != "x" || m.Saves() != 1 {
		t.Errorf("after Save: %+v saves=%d", rec, m.Saves())
	}

	m.Err = errors.New("disk full")
	if err := m.Save(Record{}); err == nil {
		t.Error("Save should fail when Err is set")
	}
}

func TestFileStore_PeekDoesNotWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "/state")

	if _, err := s.Peek(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Peek on empty: got %v, want ErrNotExist", err)
	}
	if ok, _ := afero.Exists(fs, "/state/config.json"); ok {
		t.Errorf("Peek created the record")
	}

	afero.WriteFile(fs, "/state/config.json", []byte(`{"last_number": -3, "last_prefix": "x"}`), 0o644)
	if _, err := s.Peek(); err == nil {
		t.Errorf("Peek accepted a negative number")
	}
}
