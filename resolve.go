package zipack

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry pairs a source file on disk with the name it will carry in an archive.
//
// Name always uses forward slashes regardless of host. A Name with a trailing "/" is a
// directory marker: Pack writes it as a record with no payload so the directory itself,
// empty or not, survives a round trip.
type Entry struct {
	// Path is the location of the source on disk.
	Path string
	// Name is the record name in the archive.
	Name string
}

// IsDir reports whether the entry is a directory marker.
func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

// ResolveOptions customises Resolve.
type ResolveOptions struct {
	// DirMarkers will emit a marker entry for every directory encountered, including empty
	// ones, so that Unpack can recreate them.
	//
	// By default only regular files produce entries and empty directories are lost.
	DirMarkers bool
}

// WithDirMarkers turns on ResolveOptions.DirMarkers.
func WithDirMarkers(options *ResolveOptions) {
	options.DirMarkers = true
}

// Resolve expands the given paths into the ordered list of entries that Pack will write.
//
// A path naming a regular file becomes a single entry whose name is the file's base name. A
// path naming a directory is walked depth-first, and every regular file underneath becomes an
// entry named "<base>/<relative path>" where base is the directory's own base name; packing
// "path/to/docs" therefore produces records under "docs/". For example, given:
//
//	docs/a.txt
//	docs/sub/b.txt
//
// Resolve([]string{"path/to/docs"}) returns entries named:
//
//	docs/a.txt
//	docs/sub/b.txt
//
// Empty path strings are skipped. Paths that cannot be inspected and subtrees that cannot be
// listed contribute nothing; Resolve never fails, it only narrows. Symbolic links inside a
// walked directory produce no entries; a path argument that is itself a symbolic link is
// followed.
func Resolve(paths []string, optFns ...func(*ResolveOptions)) []Entry {
	opts := &ResolveOptions{}
	for _, fn := range optFns {
		fn(opts)
	}

	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}

		fi, err := os.Stat(path)
		switch {
		case err != nil:
			// contributes nothing.
		case fi.Mode().IsRegular():
			entries = append(entries, Entry{Path: path, Name: fi.Name()})
		case fi.IsDir():
			entries = appendDir(entries, path, opts.DirMarkers)
		}
	}

	return entries
}

// appendDir walks dir and appends one entry per regular file found, in lexical order.
func appendDir(entries []Entry, dir string, markers bool) []Entry {
	base := filepath.Base(dir)

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unlistable subtrees contribute nothing.
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}

		switch name := filepath.ToSlash(filepath.Join(base, rel)); {
		case d.IsDir():
			if markers {
				entries = append(entries, Entry{Path: path, Name: name + "/"})
			}
		case d.Type().IsRegular():
			entries = append(entries, Entry{Path: path, Name: name})
		}

		return nil
	})

	return entries
}
