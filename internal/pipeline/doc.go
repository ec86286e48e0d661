// Package pipeline discovers image files and runs rename batches over them.
//
// Types:
//   - Scanner: recursive, cycle-safe image discovery over an afero.Fs.
//   - Renamer: the rename-and-report transaction for one batch.
//   - Request / Outcome: the batch input and its in-band result.
//
// A batch never aborts after its preconditions pass: every input file ends up
// in exactly one of Outcome.Success or Outcome.Errors, the optional folder
// rename is recorded separately, and the "last used" state is saved
// best-effort at the end.
package pipeline
