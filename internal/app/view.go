// internal/app/view.go
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/ui/headerbar"
	"github.com/llehouerou/flipplayer/internal/ui/overlay"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
	"github.com/llehouerou/flipplayer/internal/ui/render"
	"github.com/llehouerou/flipplayer/internal/ui/styles"
)

// View renders the player: header, video area and, while the overlay is
// visible, the player bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || m.quitting {
		return ""
	}

	header := headerbar.Render(m.video.Title, m.video.Author, m.headerBadges(), m.width)
	bodyHeight := max(m.height-headerbar.Height-playerbar.Height, 0)

	var body string
	switch {
	case m.showHelp:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.help.View())
	case m.ui.SettingsOpen:
		body = overlay.Center(m.renderSurface(bodyHeight), m.settings.View(m.state), m.width, bodyHeight)
	default:
		body = m.renderSurface(bodyHeight)
	}

	bar := strings.Repeat("\n", playerbar.Height-1)
	if m.ui.Visible {
		bar = m.bar.Render(m.barState(), m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bar)
}

func (m Model) headerBadges() []string {
	var badges []string
	if m.ui.Fullscreen {
		badges = append(badges, "fullscreen")
	}
	return append(badges, m.badges...)
}

// renderSurface draws the video area: effects on the top row, the status
// message or poster in the middle, the skip prompt at the bottom.
func (m Model) renderSurface(height int) string {
	if height <= 0 {
		return ""
	}
	s := styles.T().S()

	var center string
	switch {
	case m.lastError != "":
		center = s.Error.Render(render.TruncateEllipsis(m.lastError, m.width-2))
	case m.state.Status() == playback.StatusBuffering && m.state.BufferMessage != "":
		center = s.Warning.Render(m.state.BufferMessage)
	case m.ui.PosterVisible:
		center = m.renderPoster()
	case m.state.Status() == playback.StatusPaused:
		center = s.Muted.Render("paused")
	case m.state.Status() == playback.StatusEnded:
		center = s.Muted.Render("ended")
	}

	lines := make([]string, height)
	lines[0] = m.renderEffects()
	lines[height/2] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, center)
	if m.ui.Skip != nil && height > 1 {
		lines[height-1] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderSkipPrompt())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPoster() string {
	s := styles.T().S()
	lines := []string{s.Title.Render(render.TruncateEllipsis(m.video.Title, m.width-4))}
	if m.video.Author != "" {
		lines = append(lines, s.Muted.Render(m.video.Author))
	}
	lines = append(lines, "", s.Subtle.Render("space to play · ? for help"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderSkipPrompt() string {
	p := m.ui.Skip
	return styles.T().S().Prompt.Render(fmt.Sprintf("Skip %s · press s", p.Category))
}

// renderEffects lays out the visible effects in three columns by position.
func (m Model) renderEffects() string {
	if len(m.ui.Effects) == 0 {
		return ""
	}
	cols := map[interaction.Position][]string{}
	for _, e := range m.ui.Effects {
		cols[e.Position] = append(cols[e.Position], m.effectLabel(e.Name))
	}

	third := max(m.width/3, 1)
	effect := styles.T().S().Effect
	cell := func(pos interaction.Position, align lipgloss.Position) string {
		if len(cols[pos]) == 0 {
			return strings.Repeat(" ", third)
		}
		return lipgloss.PlaceHorizontal(third, align, effect.Render(strings.Join(cols[pos], " ")))
	}
	return cell(interaction.PositionLeft, lipgloss.Left) +
		cell(interaction.PositionCenter, lipgloss.Center) +
		cell(interaction.PositionRight, lipgloss.Right)
}

func (m Model) effectLabel(e interaction.Effect) string {
	switch e {
	case interaction.EffectSkipForward:
		return "+5s »"
	case interaction.EffectSkipBackward:
		return "« -5s"
	case interaction.EffectVolumeUp, interaction.EffectVolumeDown:
		return playerbar.VolumeLabel(m.state.Volume, m.state.Muted)
	case interaction.EffectToggleCaptions:
		return "captions"
	}
	return string(e)
}
