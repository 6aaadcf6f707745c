package app

import "github.com/llehouerou/flipplayer/internal/interaction"

// UIBridge carries interaction snapshots from the loop to the program. Only
// the latest snapshot is kept; a slow reader skips intermediate ones.
type UIBridge struct {
	ch chan interaction.UI
}

// NewUIBridge creates an empty bridge.
func NewUIBridge() *UIBridge {
	return &UIBridge{ch: make(chan interaction.UI, 1)}
}

// Publish replaces the pending snapshot. It is the controller's OnChange
// and runs on the loop, the only writer.
func (b *UIBridge) Publish(ui interaction.UI) {
	select {
	case <-b.ch:
	default:
	}
	b.ch <- ui
}

// Updates returns the snapshot channel.
func (b *UIBridge) Updates() <-chan interaction.UI {
	return b.ch
}
