package pretty

import (
	"io"
	"strings"

	"golang.org/x/term"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// PadRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// Truncate shortens a string to at most width characters, appending an
// ellipsis when it was cut.
func Truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return s[:width-1] + "…"
}

// TerminalWidth attempts to get the terminal width from the writer.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
