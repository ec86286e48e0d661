package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
)

func newTestScanner(t *testing.T, fs afero.Fs, set config.ExtensionSet) *Scanner {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Extensions = set
	return NewScanner(&cfg, fs, logging.Nop())
}

func TestScan_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "beach.jpg")
	touch(t, dir, "sunset.png")
	touch(t, dir, "notes.txt")
	touch(t, dir, "clip.mp4")
	touch(t, dir, "scan.tiff")
	touch(t, dir, "noext")

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{"beach.jpg", "scan.tiff", "sunset.png"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScan_AllImageExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.heic")
	touch(t, dir, "file.svg")

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != len(exts) {
		t.Errorf("got %d files, want %d", len(files), len(exts))
	}
}

func TestScan_NarrowSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")
	touch(t, dir, "b.JPEG")
	touch(t, dir, "c.png")
	touch(t, dir, "d.gif")
	touch(t, dir, "e.webp")

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsNarrow).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"a.jpg", "b.JPEG", "c.png"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScan_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "IMG_0001.JPG")
	touch(t, dir, "Shot.Png")

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2 (case-insensitive ext matching)", len(files))
	}
}

func TestScan_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "2023", "summer"), 0o755)
	os.MkdirAll(filepath.Join(dir, "2023", "winter"), 0o755)
	touch(t, filepath.Join(dir, "2023", "winter"), "snow.jpg")
	touch(t, filepath.Join(dir, "2023", "summer"), "sea.jpg")
	touch(t, filepath.Join(dir, "2023", "summer"), "beach.jpg")
	touch(t, dir, "top.png")

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("got %d files, want 4", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i] < files[i-1] {
			t.Errorf("not sorted: %q before %q", files[i-1], files[i])
		}
	}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("path not absolute: %q", f)
		}
	}
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestScan_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "photo.jpg")
	s := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad)

	for _, path := range []string{filepath.Join(dir, "photo.jpg"), filepath.Join(dir, "missing")} {
		if _, err := s.Scan(path); !errors.Is(err, ErrNotADirectory) {
			t.Errorf("Scan(%s): got %v, want ErrNotADirectory", filepath.Base(path), err)
		}
	}
}

func TestScan_SymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "album")
	os.MkdirAll(sub, 0o755)
	touch(t, sub, "a.jpg")
	if err := os.Symlink(dir, filepath.Join(sub, "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := newTestScanner(t, afero.NewOsFs(), config.ExtensionsBroad).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.jpg" {
		t.Errorf("got %v, want exactly a.jpg once", files)
	}
}

func TestScan_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/photos/trip/one.jpg", nil, 0o644)
	afero.WriteFile(fs, "/photos/trip/two.webp", nil, 0o644)
	afero.WriteFile(fs, "/photos/readme.md", nil, 0o644)
	afero.WriteFile(fs, "/photos/.jpg", nil, 0o644)

	files, err := newTestScanner(t, fs, config.ExtensionsBroad).Scan("/photos")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"/photos/trip/one.jpg", "/photos/trip/two.webp"}
	if !sliceEqual(files, want) {
		t.Errorf("got %v, want %v", files, want)
	}

	again, _ := newTestScanner(t, fs, config.ExtensionsBroad).Scan("/photos")
	if !sliceEqual(files, again) {
		t.Errorf("rescan differs: %v vs %v", files, again)
	}
}

func TestImageExt(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		ok   bool
	}{
		{"a.jpg", ".jpg", true},
		{"archive.tar.PNG", ".PNG", true},
		{".jpg", "", false},
		{"noext", "", false},
		{"trailing.", "", false},
	}
	for _, tt := range tests {
		ext, ok := imageExt(tt.name)
		if ext != tt.ext || ok != tt.ok {
			t.Errorf("imageExt(%q) = (%q, %v), want (%q, %v)", tt.name, ext, ok, tt.ext, tt.ok)
		}
	}
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
