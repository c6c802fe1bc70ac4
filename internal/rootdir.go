package internal

import "strings"

// FindRootDir returns the directory that is ancestor to every record in an archive.
//
// Given these three record names (already normalized to "/" separators):
//
//	report/a.txt
//	report/path/b.txt
//	report/another/path/c.txt
//
// the root directory is "report". The returned value is empty if at least two records
// disagree on their first path segment, or any record sits at the top level: such archives
// need a containing directory to unpack into.
func FindRootDir(names []string) string {
	root := ""
	for _, name := range names {
		switch first, _, found := strings.Cut(name, "/"); {
		case !found, first == "":
			return ""
		case root == "":
			root = first
		case root != first:
			return ""
		}
	}

	return root
}
