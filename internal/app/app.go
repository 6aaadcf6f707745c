// internal/app/app.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/keymap"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/runloop"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
	"github.com/llehouerou/flipplayer/internal/ui/helpbindings"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
	"github.com/llehouerou/flipplayer/internal/ui/settings"
)

// Controls is the part of the interaction controller driven by the mouse.
type Controls interface {
	PointerMove(pt interaction.PointerType)
	PointerLeave(pt interaction.PointerType)
	PointerUp(pt interaction.PointerType, target interaction.Target)
	BeginSeek(pageX float64, g interaction.Geometry)
	DragSeek(pageX float64, g interaction.Geometry)
	EndSeek()
	HoverSeek(pageX float64, g interaction.Geometry)
	EndHover()
	Unmount()
}

// Options wires the host. Every call into Player, Controls and Window is
// posted to Loop.
type Options struct {
	Loop     *runloop.Loop
	Player   settings.Player
	Controls Controls
	Window   *interaction.Window
	// Subscription delivers orchestrator events; nil disables them.
	Subscription *playback.Subscription
	Bridge       *UIBridge
	Keys         *keymap.Resolver

	Video    playback.Video
	Chapters []chapters.Chapter
	// Badges are shown at the right of the header.
	Badges []string
	// OnQuit runs on the loop when the user quits, after the controller is
	// unmounted.
	OnQuit func()
}

// Model is the bubbletea model of the player.
type Model struct {
	loop     *runloop.Loop
	player   settings.Player
	controls Controls
	window   *interaction.Window
	sub      *playback.Subscription
	bridge   *UIBridge
	keys     *keymap.Resolver
	onQuit   func()

	video    playback.Video
	chapters []chapters.Chapter
	segments []sponsorblock.Segment
	badges   []string

	state     playback.State
	ui        interaction.UI
	lastError string

	bar      playerbar.Model
	help     helpbindings.Model
	showHelp bool
	settings settings.Model

	width, height int
	dragging      bool
	quitting      bool
}

// New creates the model.
func New(opts Options) Model {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.NewResolver(keymap.All)
	}
	return Model{
		loop:     opts.Loop,
		player:   opts.Player,
		controls: opts.Controls,
		window:   opts.Window,
		sub:      opts.Subscription,
		bridge:   opts.Bridge,
		keys:     keys,
		onQuit:   opts.OnQuit,
		video:    opts.Video,
		chapters: opts.Chapters,
		badges:   opts.Badges,
		state:    playback.State{Volume: 1, PlaybackRate: 1},
		ui:       interaction.UI{Visible: true, PosterVisible: true},
		bar:      playerbar.New(),
		help:     helpbindings.New(),
		settings: settings.New(),
	}
}

// Init starts listening for player and interaction updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchPlayerEvents(), m.WatchUI())
}

// post runs fn on the player loop.
func (m Model) post(fn func()) {
	if m.loop == nil {
		return
	}
	m.loop.Post(fn)
}

// barTop is the first row of the player bar.
func (m Model) barTop() int {
	return max(m.height-playerbar.Height, 0)
}

func (m Model) barState() playerbar.State {
	return playerbar.NewState(m.state, m.ui, m.segments, m.chapters)
}
