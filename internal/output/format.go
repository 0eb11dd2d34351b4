// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
	"todo/internal/task"
)

const (
	// DoneMark and OpenMark prefix completed and open tasks in listings.
	DoneMark = "[x]"
	OpenMark = "[ ]"
)

// FormatTask formats a task line.
// Format: "{N:>4}  {MARK} {DESCRIPTION}\n" (4-wide right-aligned number, two spaces, mark, description)
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Mark(t), NormalizeDescription(t.Description))
}

// FormatSummary prints the open/done counts line.
func FormatSummary(w io.Writer, tasks []task.Task) {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(w, "%d open, %d done\n", len(tasks)-done, done)
}

// Mark returns the listing mark for t.
func Mark(t task.Task) string {
	if t.Completed {
		return DoneMark
	}
	return OpenMark
}

// NormalizeDescription prepares a description for single-line display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}

// FormatListName prints a remote list title, marking the default list.
func FormatListName(w io.Writer, l service.TaskList) {
	if l.IsDefault {
		fmt.Fprintf(w, "%s [default]\n", l.Title)
		return
	}
	fmt.Fprintln(w, l.Title)
}
