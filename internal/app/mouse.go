package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
)

// handleMouse maps terminal mouse events onto pointer events, with cells as
// the pointer unit. A press on the seek track starts a drag; motion over the
// track shows the hover label; a release anywhere else is a click on the
// video surface or on the controls.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.controls == nil || m.showHelp {
		return m, nil
	}
	controls := m.controls
	geom := playerbar.TrackGeometry(m.width, m.barState())
	g := geom.Interaction(0)
	x := float64(msg.X)
	onTrack := m.ui.Visible && msg.Y == m.barTop()+playerbar.TrackRow() && geom.Contains(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onTrack {
			return m, nil
		}
		m.dragging = true
		m.post(func() { controls.BeginSeek(x, g) })

	case tea.MouseActionMotion:
		dragging := m.dragging
		m.post(func() {
			controls.PointerMove(interaction.PointerMouse)
			switch {
			case dragging:
				controls.DragSeek(x, g)
			case onTrack:
				controls.HoverSeek(x, g)
			default:
				controls.EndHover()
			}
		})

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.post(controls.EndSeek)
			return m, nil
		}
		target := interaction.TargetSurface
		if m.ui.Visible && msg.Y >= m.barTop() {
			target = interaction.TargetControls
		}
		m.post(func() { controls.PointerUp(interaction.PointerMouse, target) })
	}
	return m, nil
}
