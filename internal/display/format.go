package display

import (
	"fmt"
	"strings"

	"github.com/backmassage/picrename/internal/pipeline"
)

// Plural returns "1 file", "3 files".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatRange returns "5-7", or just "5" for a single number.
func FormatRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// OutcomeSummary is the one-line batch summary printed under the table.
func OutcomeSummary(o *pipeline.Outcome) string {
	var sb strings.Builder
	if o.DryRun {
		sb.WriteString("[dry run] ")
	}
	fmt.Fprintf(&sb, "%d renamed, %d failed, numbers %s",
		o.Renamed(), o.Failed(), FormatRange(o.StartNumber, o.EndNumber))
	switch {
	case o.FolderRenamed != nil:
		fmt.Fprintf(&sb, "; folder %q -> %q", o.FolderRenamed.Original, o.FolderRenamed.New)
	case o.FolderRenameError != nil:
		fmt.Fprintf(&sb, "; folder not renamed: %s", *o.FolderRenameError)
	}
	return sb.String()
}
