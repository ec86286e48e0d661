package display

import (
	"testing"

	"github.com/backmassage/picrename/internal/pipeline"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{12, "12 files"},
	}
	for _, tt := range tests {
		if got := Plural(tt.n, "file"); got != tt.want {
			t.Errorf("Plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"single", 5, 5, "5"},
		{"range", 5, 7, "5-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRange(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestOutcomeSummary(t *testing.T) {
	folderErr := "rename x: file exists"
	tests := []struct {
		name string
		out  pipeline.Outcome
		want string
	}{
		{
			name: "clean",
			out: pipeline.Outcome{
				Success:     []pipeline.FileRename{{}, {}},
				StartNumber: 1,
				EndNumber:   2,
			},
			want: "2 renamed, 0 failed, numbers 1-2",
		},
		{
			name: "folder renamed",
			out: pipeline.Outcome{
				Success:       []pipeline.FileRename{{}},
				Errors:        []pipeline.FileError{{}},
				StartNumber:   3,
				EndNumber:     4,
				FolderRenamed: &pipeline.FolderRename{Original: "trip", New: "trip_240309 3-4 1张"},
			},
			want: `1 renamed, 1 failed, numbers 3-4; folder "trip" -> "trip_240309 3-4 1张"`,
		},
		{
			name: "dry run folder error",
			out: pipeline.Outcome{
				Success:           []pipeline.FileRename{{}},
				StartNumber:       9,
				EndNumber:         9,
				FolderRenameError: &folderErr,
				DryRun:            true,
			},
			want: "[dry run] 1 renamed, 0 failed, numbers 9; folder not renamed: rename x: file exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeSummary(&tt.out); got != tt.want {
				t.Errorf("OutcomeSummary = %q, want %q", got, tt.want)
			}
		})
	}
}
