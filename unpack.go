package zipack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yeka/zip"
)

// UnpackOptions customises Unpack.
type UnpackOptions struct {
	// Password decrypts encrypted records.
	//
	// An encrypted record fails with ErrReadFailed when no password is given.
	Password string

	// Overwrite replaces destination files that already exist.
	//
	// By default an existing file is kept: the record's payload is skipped but its bytes
	// still count towards progress, so partially unpacked trees can be resumed.
	Overwrite bool

	// BufferSize is the length of the transfer buffer, reused for every record.
	//
	// Default to DefaultBufferSize.
	BufferSize int

	// OnProgress receives a report after every record and a final report at ratio 1.
	OnProgress ProgressFunc
}

// Unpack extracts the archive at name into the directory dir, creating it as needed.
//
// Records are processed in stored order. Progress is measured in compressed bytes against the
// archive's size on disk, so intermediate ratios understate completion slightly; the final
// report is always exactly 1. A failed unpack leaves the partial tree in place.
//
// Record names are normalized to forward slashes before joining under dir; a record whose raw
// stored name ends in "/" or "\" recreates a directory instead of a file. Names that are
// empty after normalization or that would escape dir fail with ErrReadFailed. Extracted files
// keep the record's modification time; directories are stamped with the extraction time.
//
// Cancelling ctx aborts with ctx.Err().
func Unpack(ctx context.Context, name, dir string, optFns ...func(*UnpackOptions)) error {
	opts := &UnpackOptions{
		BufferSize: DefaultBufferSize,
	}
	for _, fn := range optFns {
		fn(opts)
	}

	if dir == "" {
		return &Error{Op: "unpack", Path: name, Kind: ErrSourceNotFound, Err: errors.New("empty destination directory")}
	}

	fi, err := statContainer("unpack", name)
	if err != nil {
		return err
	}
	pr := newProgress(opts.OnProgress, fi.Size())

	r, err := zip.OpenReader(name)
	if err != nil {
		return &Error{Op: "unpack", Path: name, Kind: ErrOpenFailed, Err: err}
	}
	defer r.Close()

	if len(r.File) == 0 {
		return &Error{Op: "unpack", Path: name, Kind: ErrOpenFailed, Err: errors.New("archive has no records")}
	}

	buf := make([]byte, opts.BufferSize)
	for _, f := range r.File {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = unpackRecord(ctx, f, dir, opts, buf); err != nil {
			return err
		}

		pr.add(int64(f.CompressedSize64))
	}

	pr.done()
	return nil
}

// statContainer checks the preconditions shared by Unpack and List: the name is not empty,
// carries the expected extension, and points at an existing regular file. All violations are
// ErrSourceNotFound; no archive I/O has happened yet.
func statContainer(op, name string) (os.FileInfo, error) {
	if name == "" {
		return nil, &Error{Op: op, Path: name, Kind: ErrSourceNotFound, Err: errors.New("empty archive name")}
	}
	if !strings.EqualFold(filepath.Ext(name), Ext) {
		return nil, &Error{Op: op, Path: name, Kind: ErrSourceNotFound, Err: fmt.Errorf(`not a "%s" file`, Ext)}
	}

	fi, err := os.Stat(name)
	if err != nil {
		return nil, &Error{Op: op, Path: name, Kind: ErrSourceNotFound, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return nil, &Error{Op: op, Path: name, Kind: ErrSourceNotFound, Err: errors.New("not a regular file")}
	}

	return fi, nil
}

// unpackRecord recreates one record under dir.
func unpackRecord(ctx context.Context, f *zip.File, dir string, opts *UnpackOptions, buf []byte) error {
	// directory detection must look at the raw stored name; archivers on some hosts write
	// backslash separators.
	raw := f.Name
	isDir := strings.HasSuffix(raw, "/") || strings.HasSuffix(raw, `\`)
	name := strings.TrimSuffix(strings.ReplaceAll(raw, `\`, "/"), "/")

	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return &Error{Op: "unpack", Path: raw, Kind: ErrReadFailed, Err: fmt.Errorf(`unusable record name "%s"`, raw)}
	}
	path := filepath.Join(dir, filepath.FromSlash(name))

	if isDir {
		if err := os.MkdirAll(path, 0755); err != nil {
			return &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: err}
		}

		return nil
	}

	if !opts.Overwrite {
		// the record still counts towards progress, its payload is just never read.
		if _, err := os.Lstat(path); err == nil {
			return nil
		}
	}

	if f.IsEncrypted() {
		if opts.Password == "" {
			return &Error{Op: "unpack", Path: raw, Kind: ErrReadFailed, Err: errors.New("record is encrypted and no password was given")}
		}

		f.SetPassword(opts.Password)
	}

	src, err := f.Open()
	if err != nil {
		return &Error{Op: "unpack", Path: raw, Kind: ErrReadFailed, Err: err}
	}
	defer src.Close()

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: err}
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, recordMode(f))
	if err != nil {
		return &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: err}
	}

	var terr error
copyLoop:
	for {
		nr, rerr := src.Read(buf)

		if nr > 0 {
			switch nw, werr := dst.Write(buf[0:nr]); {
			case werr != nil:
				terr = &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: werr}
				break copyLoop
			case nw < nr:
				terr = &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: io.ErrShortWrite}
				break copyLoop
			case nw != nr:
				terr = &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: fmt.Errorf("invalid write: expected to write %d bytes, wrote %d bytes instead", nr, nw)}
				break copyLoop
			}

			select {
			case <-ctx.Done():
				terr = ctx.Err()
				break copyLoop
			default:
			}
		}

		switch {
		case rerr == io.EOF:
			break copyLoop
		case errors.Is(rerr, zip.ErrChecksum):
			terr = &Error{Op: "unpack", Path: raw, Kind: ErrChecksumMismatch, Err: rerr}
			break copyLoop
		case rerr != nil:
			terr = &Error{Op: "unpack", Path: raw, Kind: ErrReadFailed, Err: rerr}
			break copyLoop
		}
	}

	if cerr := dst.Close(); terr == nil && cerr != nil {
		terr = &Error{Op: "unpack", Path: path, Kind: ErrWriteFailed, Err: cerr}
	}
	if terr != nil {
		return terr
	}

	// best effort restore of the record's timestamp.
	_ = os.Chtimes(path, time.Time{}, f.ModTime())

	return nil
}

// recordMode picks the permission bits for an extracted file: the record's own bits when it
// has any, 0644 otherwise.
func recordMode(f *zip.File) os.FileMode {
	if m := f.Mode().Perm(); m != 0 {
		return m
	}

	return 0644
}
