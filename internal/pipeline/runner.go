package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/logging"
	"github.com/backmassage/picrename/internal/naming"
	"github.com/backmassage/picrename/internal/state"
)

// Renamer runs rename batches. It is not safe for concurrent batches over
// the same folder; nothing is locked.
type Renamer struct {
	fs    afero.Fs
	gen   *naming.Generator
	store state.Store
	exts  map[string]bool
	log   *logging.Logger
	now   func() time.Time
}

// RenamerOption configures a Renamer.
type RenamerOption func(*Renamer)

// WithClock overrides the clock used for the batch date stamp.
func WithClock(now func() time.Time) RenamerOption {
	return func(r *Renamer) { r.now = now }
}

// WithGenerator overrides the name generator built from cfg.Policy.
func WithGenerator(g *naming.Generator) RenamerOption {
	return func(r *Renamer) { r.gen = g }
}

// NewRenamer returns a Renamer for cfg's policy and extension set that
// persists its bookkeeping to store.
func NewRenamer(cfg *config.Config, fs afero.Fs, store state.Store, log *logging.Logger, opts ...RenamerOption) *Renamer {
	r := &Renamer{
		fs:    fs,
		gen:   naming.New(cfg.Policy),
		store: store,
		exts:  ImageExtensions(cfg.Extensions),
		log:   log,
		now:   time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Generator exposes the naming generator (used for previews).
func (r *Renamer) Generator() *naming.Generator { return r.gen }

// Rename is the batch entry point. It fails only on preconditions (empty
// batch, negative start); afterwards every problem is reported in the
// returned Outcome.
func (r *Renamer) Rename(req Request) (Outcome, error) {
	if len(req.Files) == 0 {
		return Outcome{}, ErrEmptyBatch
	}
	if req.StartNumber < 0 {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidStart, req.StartNumber)
	}

	batch := r.gen.NewBatch(req.Prefix, req.StartNumber, len(req.Files), r.now())
	out := Outcome{
		Success:     []FileRename{},
		Errors:      []FileError{},
		Prefix:      batch.Prefix,
		Date:        batch.Date,
		StartNumber: batch.Start,
		EndNumber:   batch.Start,
		DryRun:      req.DryRun,
	}
	// Only the folder rename uses it; files may live in different parents.
	targetFolder := filepath.Dir(req.Files[0])

	logBatchHeader(r.log, r.gen.Policy(), &req, batch)

	for i, path := range req.Files {
		r.log.Info("[%d/%d] %s", i+1, len(req.Files), filepath.Base(path))
		r.processFile(batch, i, path, req.DryRun, &out)
	}

	if req.RenameFolder && len(out.Success) > 0 {
		r.renameFolder(batch, targetFolder, req.DryRun, &out)
	} else if req.RenameFolder {
		r.log.Warn("Folder rename skipped: no file was renamed")
	}

	if !req.DryRun {
		// Never fails the caller: the files are already renamed.
		rec := state.Record{LastNumber: out.EndNumber + 1, LastPrefix: batch.Prefix}
		if err := r.store.Save(rec); err != nil {
			r.log.Debug("State not saved: %v", err)
		}
	}

	logSummary(r.log, &out)
	return out, nil
}

// processFile handles one input: validate → name → rename → record.
func (r *Renamer) processFile(batch naming.Batch, i int, path string, dryRun bool, out *Outcome) {
	name := filepath.Base(path)

	// --- Validate ---
	fi, err := r.fs.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		r.log.Error("File not found: %s", path)
		out.fail(name, KindFileNotFound, ErrFileNotFound.Error())
		return
	}
	ext, ok := imageExt(name)
	if !ok || !r.exts[strings.ToLower(ext)] {
		r.log.Warn("Skip (unsupported format): %s", name)
		out.fail(name, KindUnsupportedFormat, ErrUnsupportedFormat.Error())
		return
	}

	// --- Name ---
	// Skipped files above still consumed position i; only attempts move the end.
	number := batch.Number(i)
	out.EndNumber = number
	newName := batch.FileName(number, ext)
	newPath := filepath.Join(filepath.Dir(path), newName)

	// --- Rename ---
	if err := r.move(path, newPath, dryRun); err != nil {
		r.log.Error("Rename failed: %v", err)
		out.fail(name, KindRenameFailed, err.Error())
		return
	}

	if dryRun {
		r.log.Success("[DRY] Would rename -> %s", newName)
	} else {
		r.log.Success("  -> %s", newName)
	}
	out.Success = append(out.Success, FileRename{Original: name, New: newName})
}

// renameFolder renames the folder of the first input file to the batch
// summary name. Failure is recorded, never returned.
func (r *Renamer) renameFolder(batch naming.Batch, folder string, dryRun bool, out *Outcome) {
	parent := filepath.Dir(folder)
	if parent == folder {
		r.log.Warn("Folder rename skipped: %s has no parent directory", folder)
		return
	}

	newName := batch.FolderName(out.EndNumber, len(out.Success))
	newPath := filepath.Join(parent, newName)
	r.log.Info("Folder: %s -> %s", filepath.Base(folder), newName)

	if err := r.move(folder, newPath, dryRun); err != nil {
		r.log.Error("Folder rename failed: %v", err)
		msg := err.Error()
		out.FolderRenameError = &msg
		return
	}
	out.FolderRenamed = &FolderRename{Original: filepath.Base(folder), New: newName}
}

// move renames oldPath to newPath without clobbering: an existing entry at
// newPath fails with fs.ErrExist. A rename onto itself is a no-op.
func (r *Renamer) move(oldPath, newPath string, dryRun bool) error {
	if oldPath == newPath {
		return nil
	}
	if r.exists(newPath) {
		return &os.PathError{Op: "rename", Path: newPath, Err: fs.ErrExist}
	}
	if dryRun {
		return nil
	}
	return r.fs.Rename(oldPath, newPath)
}

func (r *Renamer) exists(path string) bool {
	if l, ok := r.fs.(afero.Lstater); ok {
		_, _, err := l.LstatIfPossible(path)
		return err == nil
	}
	_, err := r.fs.Stat(path)
	return err == nil
}

// --- Logging helpers ---

func logBatchHeader(log *logging.Logger, policy config.NamingPolicy, req *Request, batch naming.Batch) {
	log.Info("Found %d files", len(req.Files))
	log.Info("Policy: %s, prefix: %q (effective %q), start: %d, date: %s",
		policy, req.Prefix, batch.Prefix, batch.Start, batch.Date)
	if req.RenameFolder {
		log.Info("Folder: rename after batch")
	}
	if req.DryRun {
		log.Warn("DRY RUN: no files will be renamed")
	}
}

func logSummary(log *logging.Logger, out *Outcome) {
	log.Info("==============================")
	log.Info("Done: %d renamed, %d failed (numbers %d-%d)", out.Renamed(), out.Failed(), out.StartNumber, out.EndNumber)
	if out.FolderRenamed != nil {
		log.Success("Folder renamed: %s -> %s", out.FolderRenamed.Original, out.FolderRenamed.New)
	}
}
