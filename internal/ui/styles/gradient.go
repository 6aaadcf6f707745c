package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackColor stands in for colors that are not #rrggbb.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// VideoTitle renders a title in bold, shading from the primary to the
// secondary color.
func VideoTitle(text string) string {
	t := T()
	return Gradient(text, lipgloss.NewStyle().Bold(true), t.Primary, t.Secondary)
}

// ChapterTitle renders a chapter name with the accent gradient.
func ChapterTitle(text string) string {
	t := T()
	return Gradient(text, lipgloss.NewStyle(), t.Primary, t.Secondary)
}

// Gradient renders every grapheme of text with base, its foreground
// blended in HCL space from from to to.
func Gradient(text string, base lipgloss.Style, from, to lipgloss.Color) string {
	var graphemes []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		graphemes = append(graphemes, g.Str())
	}
	switch len(graphemes) {
	case 0:
		return ""
	case 1:
		return base.Foreground(from).Render(text)
	}

	start, end := toColorful(from), toColorful(to)
	last := float64(len(graphemes) - 1)
	var b strings.Builder
	for i, cluster := range graphemes {
		c := start.BlendHcl(end, float64(i)/last).Clamped()
		b.WriteString(base.Foreground(lipgloss.Color(c.Hex())).Render(cluster))
	}
	return b.String()
}

func toColorful(c lipgloss.Color) colorful.Color {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackColor
	}
	return parsed
}
