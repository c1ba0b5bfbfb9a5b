// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"taskman/internal/service"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TITLE}\n" (4-wide right-aligned number,
// completion checkbox, title).
func FormatTask(w io.Writer, num int, task service.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, box, normalizeTitle(task.Title))
}

// FormatProgress formats the completion footer.
// Format: "{done}/{total} completed ({P}%)\n"; the percentage is
// rounded to the nearest integer.
func FormatProgress(w io.Writer, done, total int, ratio float64) {
	percent := int(math.Round(ratio * 100))
	fmt.Fprintf(w, "%d/%d completed (%d%%)\n", done, total, percent)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
