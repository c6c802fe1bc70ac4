package zipack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeka/zip"
)

type report struct {
	processed, total int64
	ratio            float64
}

func collect(reports *[]report) ProgressFunc {
	return func(processed, total int64, ratio float64) {
		*reports = append(*reports, report{processed, total, ratio})
	}
}

func TestPack_Progress(t *testing.T) {
	root := t.TempDir()

	// three sources of 100, 50 and 25 bytes.
	sizes := []int{100, 50, 25}
	entries := make([]Entry, len(sizes))
	for i, size := range sizes {
		path := filepath.Join(root, string(rune('a'+i))+".txt")
		assert.NoError(t, fill(path, []byte(strings.Repeat("x", size))))
		entries[i] = Entry{Path: path, Name: filepath.Base(path)}
	}

	var reports []report
	err := Pack(context.Background(), entries, filepath.Join(root, "out.zip"), func(options *PackOptions) {
		options.OnProgress = collect(&reports)
	})
	assert.NoErrorf(t, err, "Pack() error = %v", err)

	// one report per entry plus the final one.
	assert.Equalf(t, len(sizes)+1, len(reports), "report count = %d, want %d", len(reports), len(sizes)+1)

	var prev float64
	for i, r := range reports {
		assert.Equalf(t, int64(175), r.total, "report %d total = %d, want 175", i, r.total)
		assert.GreaterOrEqualf(t, r.ratio, prev, "report %d ratio = %v, want non-decreasing", i, r.ratio)
		assert.LessOrEqualf(t, r.ratio, 1.0, "report %d ratio = %v, want at most 1", i, r.ratio)
		prev = r.ratio
	}

	assert.Equalf(t, int64(100), reports[0].processed, "first report processed = %d, want 100", reports[0].processed)
	assert.Equalf(t, int64(150), reports[1].processed, "second report processed = %d, want 150", reports[1].processed)

	last := reports[len(reports)-1]
	assert.Equalf(t, int64(175), last.processed, "final processed = %d, want 175", last.processed)
	assert.Equalf(t, 1.0, last.ratio, "final ratio = %v, want exactly 1", last.ratio)
}

func TestPack_ProgressZeroEntries(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.zip")

	var reports []report
	err := Pack(context.Background(), nil, name, func(options *PackOptions) {
		options.OnProgress = collect(&reports)
	})
	assert.NoErrorf(t, err, "Pack() error = %v", err)

	// zero bytes still ends with the single final report; no division by zero.
	assert.Equalf(t, []report{{0, 0, 1}}, reports, "reports = %v, want a single final report", reports)

	r, err := zip.OpenReader(name)
	assert.NoErrorf(t, err, "zip.OpenReader() error = %v", err)
	defer r.Close()
	assert.Emptyf(t, r.File, "empty pack should produce an archive with no records, got %d", len(r.File))
}

func TestUnpack_Progress(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")

	err := fill(filepath.Join(docs, "a.txt"), []byte(strings.Repeat("alpha ", 200)))
	if err == nil {
		err = fill(filepath.Join(docs, "b.txt"), []byte(strings.Repeat("bravo ", 100)))
	}
	assert.NoErrorf(t, err, "create test tree error = %v", err)

	name := filepath.Join(root, "docs.zip")
	assert.NoError(t, Pack(context.Background(), Resolve([]string{docs}), name))

	out := filepath.Join(root, "out")
	assert.NoError(t, os.Mkdir(out, 0755))

	var reports []report
	err = Unpack(context.Background(), name, out, func(options *UnpackOptions) {
		options.OnProgress = collect(&reports)
	})
	assert.NoErrorf(t, err, "Unpack() error = %v", err)

	// one report per record plus the final one.
	assert.Equalf(t, 3, len(reports), "report count = %d, want 3", len(reports))

	fi, err := os.Stat(name)
	assert.NoError(t, err)

	var prev float64
	for i, r := range reports {
		assert.Equalf(t, fi.Size(), r.total, "report %d total = %d, want the archive size %d", i, r.total, fi.Size())
		assert.GreaterOrEqualf(t, r.ratio, prev, "report %d ratio = %v, want non-decreasing", i, r.ratio)
		prev = r.ratio
	}

	// compressed payloads never add up to the whole archive, headers fill the difference;
	// only the final report reaches 1.
	last := reports[len(reports)-1]
	assert.Lessf(t, reports[len(reports)-2].ratio, 1.0, "intermediate ratio = %v, want below 1", reports[len(reports)-2].ratio)
	assert.Lessf(t, last.processed, fi.Size(), "processed = %d, want below the archive size %d", last.processed, fi.Size())
	assert.Equalf(t, 1.0, last.ratio, "final ratio = %v, want exactly 1", last.ratio)
}
