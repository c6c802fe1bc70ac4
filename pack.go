package zipack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/yeka/zip"
)

// PackOptions customises Pack.
type PackOptions struct {
	// Password encrypts every record with this password.
	//
	// The zero value writes plaintext records.
	Password string

	// Encryption selects the encryption method used when Password is given.
	//
	// Default to zip.StandardEncryption (ZipCrypto, readable by virtually every extractor);
	// zip.AES128Encryption, zip.AES192Encryption and zip.AES256Encryption are also available.
	Encryption zip.EncryptionMethod

	// Level is the DEFLATE level for file records, from flate.BestSpeed (1) to
	// flate.BestCompression (9).
	//
	// Default to flate.DefaultCompression. flate.NoCompression stores records verbatim.
	Level int

	// BufferSize is the length of the transfer buffer, reused for every entry.
	//
	// BufferSize indirectly controls how often the context is checked mid-transfer. Default
	// to DefaultBufferSize.
	BufferSize int

	// OnProgress receives a report after every entry and a final report at ratio 1.
	OnProgress ProgressFunc
}

// Pack writes the given entries, in order, to a new archive at name.
//
// The archive is created or truncated up front; a failed pack leaves whatever was written so
// far in place. The total for progress reports is the combined size of the source files,
// measured once before any writing starts; sources that cannot be measured count as zero
// bytes. Packing zero entries produces a valid empty archive and a single report at ratio 1.
//
// An entry whose source cannot be opened or read fails the whole operation with
// ErrSourceUnreadable; there is no skipping. Cancelling ctx aborts with ctx.Err().
func Pack(ctx context.Context, entries []Entry, name string, optFns ...func(*PackOptions)) error {
	opts := &PackOptions{
		Encryption: zip.StandardEncryption,
		Level:      flate.DefaultCompression,
		BufferSize: DefaultBufferSize,
	}
	for _, fn := range optFns {
		fn(opts)
	}

	if name == "" {
		return &Error{Op: "pack", Path: name, Kind: ErrSourceNotFound, Err: errors.New("empty archive name")}
	}

	// sizes are measured once so that every report is against the same total.
	sizes := make([]int64, len(entries))
	var total int64
	for i, e := range entries {
		if e.IsDir() {
			continue
		}

		if fi, err := os.Stat(e.Path); err == nil && fi.Mode().IsRegular() {
			sizes[i] = fi.Size()
			total += fi.Size()
		}
	}
	pr := newProgress(opts.OnProgress, total)

	dst, err := os.Create(name)
	if err != nil {
		return &Error{Op: "pack", Path: name, Kind: ErrOpenFailed, Err: err}
	}

	zw := zip.NewWriter(dst)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, opts.Level)
	})

	buf := make([]byte, opts.BufferSize)
	for i, e := range entries {
		select {
		case <-ctx.Done():
			_, _ = zw.Close(), dst.Close()
			return ctx.Err()
		default:
		}

		if err = packEntry(ctx, zw, e, sizes[i], opts, buf, pr); err != nil {
			_, _ = zw.Close(), dst.Close()
			return err
		}
	}

	if err = zw.Close(); err != nil {
		_ = dst.Close()
		return &Error{Op: "pack", Path: name, Kind: ErrWriteFailed, Err: err}
	}
	if err = dst.Close(); err != nil {
		return &Error{Op: "pack", Path: name, Kind: ErrWriteFailed, Err: err}
	}

	pr.done()
	return nil
}

// packEntry writes one record then advances progress by the entry's measured size.
func packEntry(ctx context.Context, zw *zip.Writer, e Entry, size int64, opts *PackOptions, buf []byte, pr *progress) error {
	// marker records carry no payload; the directory's own timestamp is used when it can
	// be read.
	if e.IsDir() {
		modTime := time.Now()
		if fi, err := os.Stat(e.Path); err == nil {
			modTime = fi.ModTime()
		}

		fh := &zip.FileHeader{Name: e.Name, Method: zip.Store}
		fh.SetModTime(modTime)

		if _, err := zw.CreateHeader(fh); err != nil {
			return &Error{Op: "pack", Path: e.Name, Kind: ErrWriteFailed, Err: err}
		}

		pr.add(0)
		return nil
	}

	src, err := os.Open(e.Path)
	if err != nil {
		return &Error{Op: "pack", Path: e.Path, Kind: ErrSourceUnreadable, Err: err}
	}
	defer src.Close()

	if e.Name == "" {
		return &Error{Op: "pack", Path: e.Path, Kind: ErrWriteFailed, Err: errors.New("empty record name")}
	}

	// the record keeps the source's modification time at 2-second DOS resolution; if the
	// source cannot be described, the current time is recorded instead.
	modTime := time.Now()
	if fi, err := src.Stat(); err == nil {
		modTime = fi.ModTime()
	}

	method := zip.Deflate
	if opts.Level == flate.NoCompression {
		method = zip.Store
	}

	fh := &zip.FileHeader{Name: e.Name, Method: method}
	fh.SetModTime(modTime)
	if opts.Password != "" {
		fh.SetPassword(opts.Password)
		fh.SetEncryptionMethod(opts.Encryption)
	}

	w, err := zw.CreateHeader(fh)
	if err != nil {
		return &Error{Op: "pack", Path: e.Name, Kind: ErrWriteFailed, Err: err}
	}

	for {
		nr, rerr := src.Read(buf)

		if nr > 0 {
			switch nw, werr := w.Write(buf[0:nr]); {
			case werr != nil:
				return &Error{Op: "pack", Path: e.Name, Kind: ErrWriteFailed, Err: werr}
			case nw < nr:
				return &Error{Op: "pack", Path: e.Name, Kind: ErrWriteFailed, Err: io.ErrShortWrite}
			case nw != nr:
				return &Error{Op: "pack", Path: e.Name, Kind: ErrWriteFailed, Err: fmt.Errorf("invalid write: expected to write %d bytes, wrote %d bytes instead", nr, nw)}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &Error{Op: "pack", Path: e.Path, Kind: ErrSourceUnreadable, Err: rerr}
		}
	}

	pr.add(size)
	return nil
}
