// Package state persists the "last used" sequence number and prefix between
// batches. The record lives at <home>/.image_rename_tool/config.json and is
// recreated with defaults whenever it is missing or unreadable.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Defaults written on first use or after a parse failure.
const (
	DefaultLastNumber = 1
	DefaultLastPrefix = "img"
)

const (
	dirName  = ".image_rename_tool"
	fileName = "config.json"
)

// ErrConfigUnavailable is returned when the state location cannot be
// resolved or created. Only the explicit read commands surface it.
var ErrConfigUnavailable = errors.New("config location unavailable")

// Record is the persisted state.
type Record struct {
	LastNumber int    `json:"last_number" yaml:"last_number"`
	LastPrefix string `json:"last_prefix" yaml:"last_prefix"`
}

// Default returns the record used when nothing valid is on disk.
func Default() Record {
	return Record{LastNumber: DefaultLastNumber, LastPrefix: DefaultLastPrefix}
}

// Store loads and saves the persisted record.
type Store interface {
	// Load returns the current record, falling back to (and writing) the
	// default when nothing valid is stored.
	Load() (Record, error)
	// Save overwrites the record. Callers treat failures as non-fatal.
	Save(Record) error
}

// FileStore is the JSON-file Store.
type FileStore struct {
	fs  afero.Fs
	dir string // Empty means: resolve from PICRENAME_HOME or the home directory.
}

// NewFileStore returns a store rooted at dir. An empty dir resolves to
// $PICRENAME_HOME or ~/.image_rename_tool on each access.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// ResolveDir returns the state directory without creating it.
func ResolveDir(override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("PICRENAME_HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	return filepath.Join(home, dirName), nil
}

// Path resolves the record path, creating the state directory if missing.
func (s *FileStore) Path() (string, error) {
	dir, err := ResolveDir(s.dir)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	return filepath.Join(dir, fileName), nil
}

// Dir returns the state directory without creating it.
func (s *FileStore) Dir() (string, error) {
	return ResolveDir(s.dir)
}

// Peek reads the stored record without creating or repairing anything.
// A missing file yields an error wrapping fs.ErrNotExist.
func (s *FileStore) Peek() (Record, error) {
	dir, err := s.Dir()
	if err != nil {
		return Record{}, err
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(dir, fileName))
	if err != nil {
		return Record{}, err
	}
	return decode(data)
}

// Load implements Store.
func (s *FileStore) Load() (Record, error) {
	path, err := s.Path()
	if err != nil {
		return Record{}, err
	}

	if data, err := afero.ReadFile(s.fs, path); err == nil {
		if rec, err := decode(data); err == nil {
			return rec, nil
		}
	}

	rec := Default()
	// Writing the default is best-effort; the caller still gets it.
	_ = s.write(path, rec)
	return rec, nil
}

// Save implements Store.
func (s *FileStore) Save(rec Record) error {
	path, err := s.Path()
	if err != nil {
		return err
	}
	return s.write(path, rec)
}

func (s *FileStore) write(path string, rec Record) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, path, b, 0o644)
}

// decode parses a record, rejecting missing fields and negative numbers so a
// truncated or hand-edited file falls back to defaults.
func decode(data []byte) (Record, error) {
	var raw struct {
		LastNumber *int    `json:"last_number"`
		LastPrefix *string `json:"last_prefix"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, err
	}
	if raw.LastNumber == nil || raw.LastPrefix == nil {
		return Record{}, errors.New("incomplete record")
	}
	if *raw.LastNumber < 0 {
		return Record{}, fmt.Errorf("negative last_number %d", *raw.LastNumber)
	}
	return Record{LastNumber: *raw.LastNumber, LastPrefix: *raw.LastPrefix}, nil
}

// MemoryStore is an in-process Store for tests and for runs that must not
// touch the user's state.
type MemoryStore struct {
	mu    sync.Mutex
	rec   *Record
	saves int
	Err   error // When set, Save fails with it.
}

// NewMemoryStore returns an empty MemoryStore; Load yields the default.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		rec := Default()
		m.rec = &rec
	}
	return *m.rec, nil
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.rec = &rec
	m.saves++
	return nil
}

// Saves reports how many successful Save calls were made.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
