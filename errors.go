package zipack

import (
	"errors"
	"fmt"
)

// Failure categories. Every error returned by Pack, Unpack and List wraps exactly one of
// these sentinels so callers can classify failures with [errors.Is].
var (
	// ErrSourceNotFound indicates the archive (or its name) failed the preconditions before
	// any I/O happened: empty name, wrong extension, or not an existing regular file.
	ErrSourceNotFound = errors.New("source not found")

	// ErrOpenFailed indicates the archive could not be created or opened, or contains no records.
	ErrOpenFailed = errors.New("open failed")

	// ErrReadFailed indicates a record could not be read back: missing password, rejected
	// credentials, an unusable record name, or a decode failure mid-stream.
	ErrReadFailed = errors.New("read failed")

	// ErrWriteFailed indicates a record or destination file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrChecksumMismatch indicates a record was fully read but its checksum did not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrSourceUnreadable indicates a source file handed to Pack could not be opened or read.
	ErrSourceUnreadable = errors.New("source unreadable")
)

// Error is the error type returned by Pack, Unpack and List.
//
// Kind is always one of the sentinel errors above; Err is the underlying cause and may be nil.
// Unwrap returns both so that errors.Is matches either.
type Error struct {
	// Op is the operation that failed: "pack", "unpack" or "list".
	Op string
	// Path is the file being processed when the failure happened; either a path on disk or
	// the name of a record in the archive.
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf(`%s "%s" error: %v`, e.Op, e.Path, e.Kind)
	}

	return fmt.Sprintf(`%s "%s" error: %v: %v`, e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
