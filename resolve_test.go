package zipack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	// the tree being resolved:
	//	docs/a.txt
	//	docs/empty/
	//	docs/sub/b.txt
	//	top.txt
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	top := filepath.Join(root, "top.txt")

	err := fill(filepath.Join(docs, "a.txt"), []byte("a"))
	if err == nil {
		err = fill(filepath.Join(docs, "sub", "b.txt"), []byte("bb"))
	}
	if err == nil {
		err = os.MkdirAll(filepath.Join(docs, "empty"), 0755)
	}
	if err == nil {
		err = fill(top, []byte("top"))
	}
	assert.NoErrorf(t, err, "create test tree error = %v", err)

	tests := []struct {
		name     string
		paths    []string
		optFns   []func(*ResolveOptions)
		expected []Entry
	}{
		{
			name:  "single file",
			paths: []string{top},
			expected: []Entry{
				{Path: top, Name: "top.txt"},
			},
		},
		{
			name:  "directory is flattened under its base name",
			paths: []string{docs},
			expected: []Entry{
				{Path: filepath.Join(docs, "a.txt"), Name: "docs/a.txt"},
				{Path: filepath.Join(docs, "sub", "b.txt"), Name: "docs/sub/b.txt"},
			},
		},
		{
			name:  "file then directory keeps input order",
			paths: []string{top, docs},
			expected: []Entry{
				{Path: top, Name: "top.txt"},
				{Path: filepath.Join(docs, "a.txt"), Name: "docs/a.txt"},
				{Path: filepath.Join(docs, "sub", "b.txt"), Name: "docs/sub/b.txt"},
			},
		},
		{
			name:     "empty and nonexistent paths contribute nothing",
			paths:    []string{"", filepath.Join(root, "missing"), filepath.Join(root, "missing.txt")},
			expected: []Entry{},
		},
		{
			name:   "dir markers include empty directories",
			paths:  []string{docs},
			optFns: []func(*ResolveOptions){WithDirMarkers},
			expected: []Entry{
				{Path: docs, Name: "docs/"},
				{Path: filepath.Join(docs, "a.txt"), Name: "docs/a.txt"},
				{Path: filepath.Join(docs, "empty"), Name: "docs/empty/"},
				{Path: filepath.Join(docs, "sub"), Name: "docs/sub/"},
				{Path: filepath.Join(docs, "sub", "b.txt"), Name: "docs/sub/b.txt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.paths, tt.optFns...)
			assert.Equalf(t, tt.expected, got, "Resolve(%v) = %v, want = %v", tt.paths, got, tt.expected)
		})
	}
}

func TestEntryIsDir(t *testing.T) {
	assert.True(t, Entry{Name: "docs/"}.IsDir())
	assert.False(t, Entry{Name: "docs/a.txt"}.IsDir())
	assert.False(t, Entry{Name: ""}.IsDir())
}

func fill(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE, 0644)
	if err == nil {
		_, err = f.Write(data)
		_ = f.Close()
	}
	return err
}
