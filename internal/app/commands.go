// internal/app/commands.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchPlayerEvents waits for the next orchestrator event and converts it to
// a tea.Msg.
func (m Model) WatchPlayerEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg{State: e.Current}
		case e := <-sub.Error:
			return PlayerErrorMsg{Event: e}
		case <-sub.Done:
			return SubscriptionClosedMsg{}
		}
	}
}

// WatchUI waits for the next interaction snapshot.
func (m Model) WatchUI() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	ch := m.bridge.Updates()
	return func() tea.Msg {
		return UIChangedMsg{UI: <-ch}
	}
}
