package pipeline

import (
	"errors"
	"fmt"
)

// Renamed returns the number of files renamed (or, in a dry run, that
// would be renamed).
func (o *Outcome) Renamed() int { return len(o.Success) }

// Failed returns the number of files that were not renamed.
func (o *Outcome) Failed() int { return len(o.Errors) }

// Total returns the number of input files accounted for. It always equals
// the length of the request's file list.
func (o *Outcome) Total() int { return len(o.Success) + len(o.Errors) }

// Err joins every per-file failure and the folder rename failure, each
// wrapping its sentinel. It returns nil for a clean batch.
func (o *Outcome) Err() error {
	var errs []error
	for _, e := range o.Errors {
		sentinel := e.Kind.sentinel()
		if e.Message == sentinel.Error() {
			errs = append(errs, fmt.Errorf("%s: %w", e.File, sentinel))
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w: %s", e.File, sentinel, e.Message))
	}
	if o.FolderRenameError != nil {
		errs = append(errs, fmt.Errorf("%w: %s", ErrFolderRenameFailed, *o.FolderRenameError))
	}
	return errors.Join(errs...)
}
