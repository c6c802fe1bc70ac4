package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindRootDir(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{
			name: "shared root",
			names: []string{
				"report/a.txt",
				"report/path/b.txt",
				"report/another/path/c.txt",
			},
			want: "report",
		},
		{
			name: "top-level file",
			names: []string{
				"a.txt",
				"path/b.txt",
			},
			want: "",
		},
		{
			name: "two roots",
			names: []string{
				"report/a.txt",
				"backup/b.txt",
			},
			want: "",
		},
		{
			name: "directory markers",
			names: []string{
				"report/",
				"report/a.txt",
				"report/path/",
			},
			want: "report",
		},
		{
			name:  "no records",
			names: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRootDir(tt.names)
			assert.Equalf(t, tt.want, got, "FindRootDir(%v) = %q, want %q", tt.names, got, tt.want)
		})
	}
}
