// Package render fits text into terminal cells.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Clean makes metadata safe to print: control characters and invalid UTF-8
// are dropped, tabs and non-breaking spaces become spaces.
func Clean(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == ' ':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// TruncateEllipsis cleans s and cuts it to maxWidth cells, ending in "…"
// when something was cut.
func TruncateEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Clean(s), maxWidth, "…")
}

// PadRight appends spaces until the styled string s is width cells wide.
func PadRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Row puts left and right at the two ends of width cells, keeping at least
// one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
