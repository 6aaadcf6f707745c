// Package app is the terminal host of the player: a bubbletea program that
// renders the playback state and forwards input to the interaction
// controller on the player loop.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
)

// PlaybackMessage is implemented by messages coming from the orchestrator.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// StateChangedMsg carries a new playback state.
type StateChangedMsg struct {
	State playback.State
}

func (StateChangedMsg) playbackMessage() {}

// PlayerErrorMsg carries an error the orchestrator surfaced.
type PlayerErrorMsg struct {
	Event playback.ErrorEvent
}

func (PlayerErrorMsg) playbackMessage() {}

// SubscriptionClosedMsg is sent once the orchestrator closed its
// subscriptions.
type SubscriptionClosedMsg struct{}

func (SubscriptionClosedMsg) playbackMessage() {}

// UIChangedMsg carries a new interaction snapshot.
type UIChangedMsg struct {
	UI interaction.UI
}

// SegmentsLoadedMsg delivers the skip segments of the current video for the
// seek bar markers.
type SegmentsLoadedMsg struct {
	Segments []sponsorblock.Segment
}
