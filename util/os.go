package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// OpenExclFile creates a file named stem+ext under parent, guaranteed to not have existed
// prior to this call.
//
// If the desired name is taken, numeric suffixes are tried (stem-1, stem-2, and so on)
// until creation with `os.O_RDWR|os.O_CREATE|os.O_EXCL` succeeds. Keeping the suffix in
// front of the extension reads better than appending it; see StemAndExt for splitting an
// existing name into the two parts. Caller is responsible for closing the returned file.
//
// Compared to os.CreateTemp, the resulting name is predictable but creation can race with
// other processes doing the same.
func OpenExclFile(parent, stem, ext string, perm os.FileMode) (file *os.File, err error) {
	name := filepath.Join(parent, stem+ext)
	for i := 0; ; {
		switch file, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm); {
		case err == nil:
			return
		case errors.Is(err, os.ErrExist):
			i++
			name = filepath.Join(parent, fmt.Sprintf("%s-%d%s", stem, i, ext))
		default:
			return nil, fmt.Errorf("create file error: %w", err)
		}
	}
}

// MkExclDir creates a directory named stem under parent, guaranteed to not have existed
// prior to this call.
//
// Like OpenExclFile, numeric suffixes (stem-1, stem-2, and so on) are tried until
// os.Mkdir succeeds; the name that was actually created is returned.
func MkExclDir(parent, stem string, perm os.FileMode) (name string, err error) {
	name = filepath.Join(parent, stem)
	for i := 0; ; {
		switch err = os.Mkdir(name, perm); {
		case err == nil:
			return
		case errors.Is(err, os.ErrExist):
			i++
			name = filepath.Join(parent, stem+"-"+strconv.Itoa(i))
		default:
			return "", fmt.Errorf("create directory error: %w", err)
		}
	}
}
