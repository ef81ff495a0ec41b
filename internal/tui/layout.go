package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// clip truncates s to width cells, marking the cut with an ellipsis.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// fitLines pads every line of s to width so stale cells are overwritten on
// redraw.
func fitLines(s string, width int) string {
	lines := splitLines(s)
	for i, line := range lines {
		lines[i] = padRight(clip(line, width), width)
	}
	return strings.Join(lines, "\n")
}
