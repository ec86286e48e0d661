package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
)

// Supported image extensions per set (lowercase, with leading dot).
var imageExtensions = map[config.ExtensionSet]map[string]bool{
	config.ExtensionsBroad: {
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".bmp":  true,
		".tiff": true,
		".webp": true,
	},
	config.ExtensionsNarrow: {
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	},
}

// ImageExtensions returns the extension set for set, falling back to the
// broad set for unknown values.
func ImageExtensions(set config.ExtensionSet) map[string]bool {
	if exts, ok := imageExtensions[set]; ok {
		return exts
	}
	return imageExtensions[config.ExtensionsBroad]
}

// imageExt returns the extension of name as found on disk. A bare dotfile
// such as ".jpg" has no extension.
func imageExt(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." || ext == name {
		return "", false
	}
	return ext, true
}

// Scanner collects image files below a directory.
type Scanner struct {
	fs   afero.Fs
	exts map[string]bool
	log  *logging.Logger
}

// NewScanner returns a Scanner using cfg's extension set.
func NewScanner(cfg *config.Config, fs afero.Fs, log *logging.Logger) *Scanner {
	return &Scanner{fs: fs, exts: ImageExtensions(cfg.Extensions), log: log}
}

// Supported reports whether path has an image extension from the active set.
func (s *Scanner) Supported(path string) bool {
	ext, ok := imageExt(filepath.Base(path))
	return ok && s.exts[strings.ToLower(ext)]
}

// Scan walks dir with an explicit stack, collects files with image extensions
// and returns their absolute paths sorted lexicographically. Symlinked
// directories are followed once: the visited set is keyed by the resolved
// directory, so link cycles end. Unreadable subdirectories are skipped.
func (s *Scanner) Scan(dir string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, dir, err)
	}
	fi, err := s.fs.Stat(root)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	var files []string
	visited := make(map[string]bool)
	stack := []string{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := s.identity(current)
		if visited[key] {
			s.log.Debug("Already visited, skipping: %s", current)
			continue
		}
		visited[key] = true

		entries, err := afero.ReadDir(s.fs, current)
		if err != nil {
			if current == root {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, dir, err)
			}
			s.log.Warn("Cannot read directory %s: %v", current, err)
			continue
		}

		for _, e := range entries {
			path := filepath.Join(current, e.Name())
			mode := e.Mode()
			if mode&os.ModeSymlink != 0 {
				target, err := s.fs.Stat(path)
				if err != nil {
					s.log.Debug("Broken link, skipping: %s", path)
					continue
				}
				mode = target.Mode()
			}

			switch {
			case mode.IsDir():
				stack = append(stack, path)
			case mode.IsRegular() && s.Supported(path):
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// identity returns the canonical key of a directory. On the OS filesystem
// symlinks are resolved; other filesystems have no links and use the
// cleaned path.
func (s *Scanner) identity(dir string) string {
	if _, ok := s.fs.(*afero.OsFs); ok {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			return real
		}
	}
	return filepath.Clean(dir)
}
