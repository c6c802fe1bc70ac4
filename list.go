package zipack

import (
	"strings"
	"time"

	"github.com/yeka/zip"
)

// EntryInfo describes one record of an archive.
type EntryInfo struct {
	// Name is the stored record name with separators normalized to "/".
	Name string

	// UncompressedSize and CompressedSize are the payload sizes in bytes.
	UncompressedSize uint64
	CompressedSize   uint64

	// Modified is the record's timestamp, at 2-second DOS resolution.
	Modified time.Time

	// Encrypted reports whether the payload requires a password to read.
	Encrypted bool

	// IsDir reports whether the record is a directory marker.
	IsDir bool
}

// List returns the metadata of every record in the archive at name, in stored order.
//
// Only headers are read; payloads are never opened, so no password is needed even for
// encrypted archives. The preconditions are the same as Unpack's.
func List(name string) ([]EntryInfo, error) {
	if _, err := statContainer("list", name); err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(name)
	if err != nil {
		return nil, &Error{Op: "list", Path: name, Kind: ErrOpenFailed, Err: err}
	}
	defer r.Close()

	infos := make([]EntryInfo, 0, len(r.File))
	for _, f := range r.File {
		raw := f.Name
		infos = append(infos, EntryInfo{
			Name:             strings.ReplaceAll(raw, `\`, "/"),
			UncompressedSize: f.UncompressedSize64,
			CompressedSize:   f.CompressedSize64,
			Modified:         f.ModTime(),
			Encrypted:        f.IsEncrypted(),
			IsDir:            strings.HasSuffix(raw, "/") || strings.HasSuffix(raw, `\`),
		})
	}

	return infos, nil
}
