package pipeline

import "errors"

// Precondition errors abort the whole call.
var (
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidPath   = errors.New("invalid path")
	ErrEmptyBatch    = errors.New("no files to process")
	ErrInvalidStart  = errors.New("start number must not be negative")
)

// Per-item errors are reported in-band; [Outcome.Err] wraps them.
var (
	ErrFileNotFound       = errors.New("file does not exist")
	ErrUnsupportedFormat  = errors.New("not a supported image format")
	ErrRenameFailed       = errors.New("rename failed")
	ErrFolderRenameFailed = errors.New("folder rename failed")
)

// ErrorKind classifies a FileError.
type ErrorKind string

const (
	KindFileNotFound      ErrorKind = "file_not_found"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindRenameFailed      ErrorKind = "rename_failed"
)

// sentinel maps a kind back to its error value.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileNotFound:
		return ErrFileNotFound
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	default:
		return ErrRenameFailed
	}
}
