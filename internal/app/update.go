// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/keymap"
	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
	"github.com/llehouerou/flipplayer/internal/ui/settings"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, max(msg.Height-playerbar.Height, 0))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		if controls := m.controls; controls != nil {
			m.post(func() { controls.PointerLeave(interaction.PointerMouse) })
		}
		return m, nil

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case UIChangedMsg:
		if msg.UI.SettingsOpen && !m.ui.SettingsOpen {
			m.settings.Reset()
		}
		m.ui = msg.UI
		return m, m.WatchUI()

	case SegmentsLoadedMsg:
		m.segments = msg.Segments
		return m, nil
	}
	return m, nil
}

func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		m.state = msg.State
		if m.state.PlayerError == nil && !m.state.Ended {
			m.lastError = ""
		}
	case PlayerErrorMsg:
		m.lastError = errmsg.Format(msg.Event.Operation, msg.Event.Err)
	case SubscriptionClosedMsg:
		return m, nil
	}
	return m, m.WatchPlayerEvents()
}

// handleKey routes a key: quit and help are handled here, the settings
// panel gets navigation keys while open, everything else goes to the
// window on the loop.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		var closed bool
		m.help, closed = m.help.Update(msg)
		if closed {
			m.showHelp = false
		}
		return m, nil
	}

	key := msg.String()
	action := m.keys.Resolve(key)
	switch action { //nolint:exhaustive // player actions are resolved by the controller
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionHelp:
		if !m.ui.SettingsOpen {
			m.showHelp = true
			return m, nil
		}
	}

	if m.ui.SettingsOpen && action != keymap.ActionCloseSettings {
		var change settings.Change
		m.settings, change = m.settings.Update(msg, m.state)
		if change != nil {
			player := m.player
			m.post(func() { change(player) })
		}
		return m, nil
	}

	window := m.window
	m.post(func() { window.KeyDown(key) })
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.quitting = true
	controls, onQuit := m.controls, m.onQuit
	m.post(func() {
		if controls != nil {
			controls.Unmount()
		}
		if onQuit != nil {
			onQuit()
		}
	})
	logger.Log.Debug().Msg("quit requested")
	return m, tea.Quit
}
