package util

import (
	"path/filepath"
	"strings"
)

// StemAndExt splits the base name of path around its final extension.
//
// For example, StemAndExt("docs/report.backup.zip") returns "report.backup" and ".zip".
// The stem is useful for deriving sibling names: "report.backup-1.zip" reads better than
// "report.backup.zip-1". Hidden files such as ".zipack" are treated as all stem with no
// extension.
func StemAndExt(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	if stem = strings.TrimSuffix(base, ext); stem == "" {
		return base, ""
	}

	return
}
