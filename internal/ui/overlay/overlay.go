// Package overlay draws a panel on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws panel in the middle of base, a block of height lines of
// width columns.
func Center(base, panel string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
	return Compose(base, placed, width)
}

// Compose lays top over base line by line. On each line of top only the
// span between the first and last visible non-space cell is drawn, so
// blank margins leave base showing. Styles survive on both sides.
func Compose(base, top string, width int) string {
	lines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		if i >= len(lines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimRight(plain, " ")
		content := strings.TrimLeft(trimmed, " ")
		if content == "" {
			continue
		}
		from := ansi.StringWidth(trimmed) - ansi.StringWidth(content)
		to := ansi.StringWidth(trimmed)

		under := lines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}
		out := ansi.Cut(under, 0, from) + ansi.Cut(line, from, to)
		if to < width {
			out += ansi.Cut(under, to, width)
		}
		lines[i] = out
	}
	return strings.Join(lines, "\n")
}
