// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flipplayer/internal/ui/render"
	"github.com/llehouerou/flipplayer/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

var (
	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render returns "Title │ Author" on the left and the badges on the right.
// The title is truncated first, then the author is dropped.
func Render(title, author string, badges []string, width int) string {
	if width < 20 {
		return ""
	}
	if title == "" {
		title = "Untitled video"
	}

	separator := separatorStyle.Render(" │ ")
	right := badgeStyle.Render(strings.Join(badges, " · "))
	available := width - lipgloss.Width(right) - 1

	titleWidth := lipgloss.Width(title)
	authorPart := ""
	if author != "" {
		authorPart = separator + authorStyle.Render(author)
	}
	if titleWidth+lipgloss.Width(authorPart) > available {
		authorPart = ""
	}

	left := styles.VideoTitle(render.TruncateEllipsis(title, available)) + authorPart
	return render.Row(left, right, width)
}
