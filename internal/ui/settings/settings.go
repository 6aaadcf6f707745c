// Package settings renders the player settings panel and turns panel
// navigation into player changes.
package settings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
	"github.com/llehouerou/flipplayer/internal/ui/styles"
)

// Player is what a panel change can act on.
type Player interface {
	SetPlaybackRate(rate float64)
	SetLoop(loop bool)
	SetVideoRepresentation(trackID, representationID string)
	SetAutoVideoQuality()
	SetLanguage(code string)
}

// Change is a panel edit, to run on the player loop.
type Change func(Player)

type row int

const (
	rowSpeed row = iota
	rowLoop
	rowQuality
	rowLanguage
	rowCount
)

var rowLabels = [rowCount]string{"Speed", "Loop", "Quality", "Language"}

const autoQuality = "auto"

// Model is the settings panel cursor.
type Model struct {
	cursor row
}

// New creates a panel with the cursor on the first row.
func New() Model {
	return Model{}
}

// Reset moves the cursor back to the first row.
func (m *Model) Reset() {
	m.cursor = rowSpeed
}

// Update moves the cursor with up/down and edits the selected row with
// left/right. The returned change is nil when nothing is edited.
func (m Model) Update(msg tea.KeyMsg, s playback.State) (Model, Change) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor + rowCount - 1) % rowCount
	case "down", "j":
		m.cursor = (m.cursor + 1) % rowCount
	case "left", "h":
		return m, m.step(s, -1)
	case "right", "l", "enter":
		return m, m.step(s, 1)
	}
	return m, nil
}

func (m Model) step(s playback.State, dir int) Change {
	switch m.cursor {
	case rowSpeed:
		speeds := interaction.PlaybackSpeeds
		i := slices.Index(speeds, s.PlaybackRate)
		if i < 0 {
			i = slices.Index(speeds, 1)
		}
		next := i + dir
		if next < 0 || next >= len(speeds) {
			return nil
		}
		rate := speeds[next]
		return func(p Player) { p.SetPlaybackRate(rate) }
	case rowLoop:
		loop := !s.Loop
		return func(p Player) { p.SetLoop(loop) }
	case rowQuality:
		return qualityStep(s, dir)
	case rowLanguage:
		langs := Languages(s)
		if len(langs) == 0 {
			return nil
		}
		i := slices.Index(langs, s.SelectedLanguage)
		lang := langs[(i+dir+len(langs))%len(langs)]
		if i < 0 && dir < 0 {
			lang = langs[len(langs)-1]
		}
		return func(p Player) { p.SetLanguage(lang) }
	}
	return nil
}

// qualityStep walks "auto" followed by the video representations.
func qualityStep(s playback.State, dir int) Change {
	options := QualityOptions(s)
	if len(options) <= 1 {
		return nil
	}
	i := slices.Index(options, currentQuality(s))
	next := (max(i, 0) + dir + len(options)) % len(options)
	if next == 0 {
		return func(p Player) { p.SetAutoVideoQuality() }
	}
	trackID := s.VideoTracks[0].ID
	repID := options[next]
	return func(p Player) { p.SetVideoRepresentation(trackID, repID) }
}

// QualityOptions lists "auto" then the representation ids of the first
// video track.
func QualityOptions(s playback.State) []string {
	options := []string{autoQuality}
	if len(s.VideoTracks) == 0 {
		return options
	}
	for _, r := range s.VideoTracks[0].Representations {
		options = append(options, r.ID)
	}
	return options
}

func currentQuality(s playback.State) string {
	if s.AutomaticVideoQuality || len(s.VideoTracks) == 0 {
		return autoQuality
	}
	if s.PendingVideoRepresentation != "" {
		return s.PendingVideoRepresentation
	}
	return s.VideoTracks[0].ActiveRepresentationID
}

// Languages lists the distinct audio track languages in track order.
func Languages(s playback.State) []string {
	var langs []string
	for _, t := range s.AudioTracks {
		if t.Language != "" && !slices.Contains(langs, t.Language) {
			langs = append(langs, t.Language)
		}
	}
	return langs
}

// View renders the panel.
func (m Model) View(s playback.State) string {
	st := styles.T().S()

	values := [rowCount]string{
		playerbar.SpeedLabel(s.PlaybackRate),
		onOff(s.Loop),
		qualityValue(s),
		languageValue(s),
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Settings"))
	b.WriteString("\n\n")
	for r := range rowCount {
		label := lipgloss.NewStyle().Width(10).Render(rowLabels[r])
		value := "‹ " + values[r] + " ›"
		if r == m.cursor {
			b.WriteString(st.Active.Render("› " + label + value))
		} else {
			b.WriteString(st.Base.Render("  " + label + value))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("↑/↓ select · ←/→ change · esc close"))

	return st.Panel.Render(b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func qualityValue(s playback.State) string {
	if label := playerbar.QualityLabel(s); label != "" {
		return label
	}
	return autoQuality
}

func languageValue(s playback.State) string {
	if s.SelectedLanguage != "" {
		return s.SelectedLanguage
	}
	if langs := Languages(s); len(langs) > 0 {
		return langs[0]
	}
	return "default"
}
