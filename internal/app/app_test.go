package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/runloop"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
	"github.com/llehouerou/flipplayer/internal/ui/playerbar"
)

type fakeControls struct {
	calls []string
	xs    []float64
}

func (f *fakeControls) PointerMove(interaction.PointerType)  { f.calls = append(f.calls, "move") }
func (f *fakeControls) PointerLeave(interaction.PointerType) { f.calls = append(f.calls, "leave") }
func (f *fakeControls) PointerUp(_ interaction.PointerType, t interaction.Target) {
	if t == interaction.TargetSurface {
		f.calls = append(f.calls, "up:surface")
	} else {
		f.calls = append(f.calls, "up:controls")
	}
}

func (f *fakeControls) BeginSeek(x float64, _ interaction.Geometry) {
	f.calls = append(f.calls, "begin")
	f.xs = append(f.xs, x)
}

func (f *fakeControls) DragSeek(x float64, _ interaction.Geometry) {
	f.calls = append(f.calls, "drag")
	f.xs = append(f.xs, x)
}

func (f *fakeControls) EndSeek()                                { f.calls = append(f.calls, "end") }
func (f *fakeControls) HoverSeek(float64, interaction.Geometry) { f.calls = append(f.calls, "hover") }
func (f *fakeControls) EndHover()                               { f.calls = append(f.calls, "endhover") }
func (f *fakeControls) Unmount()                                { f.calls = append(f.calls, "unmount") }

type fakePlayer struct {
	rates []float64
}

func (p *fakePlayer) SetPlaybackRate(rate float64)       { p.rates = append(p.rates, rate) }
func (p *fakePlayer) SetLoop(bool)                       {}
func (p *fakePlayer) SetVideoRepresentation(_, _ string) {}
func (p *fakePlayer) SetAutoVideoQuality()               {}
func (p *fakePlayer) SetLanguage(string)                 {}

type harness struct {
	loop     *runloop.Loop
	window   *interaction.Window
	controls *fakeControls
	player   *fakePlayer
	keys     []string
	quits    int
	m        Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		loop:     runloop.New(),
		window:   interaction.NewWindow(),
		controls: &fakeControls{},
		player:   &fakePlayer{},
	}
	h.window.AddKeyListener(func(k string) { h.keys = append(h.keys, k) })
	h.m = New(Options{
		Loop:     h.loop,
		Player:   h.player,
		Controls: h.controls,
		Window:   h.window,
		Bridge:   NewUIBridge(),
		Video:    playback.Video{ID: "v1", Title: "Big Buck Bunny", Author: "Blender"},
		OnQuit:   func() { h.quits++ },
	})
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	m, cmd := h.m.Update(msg)
	h.m = m.(Model)
	h.loop.Drain()
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeys_ForwardedToWindowOnLoop(t *testing.T) {
	h := newHarness(t)

	h.m, _ = func() (Model, tea.Cmd) {
		m, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeySpace})
		return m.(Model), cmd
	}()
	assert.Empty(t, h.keys, "delivered on the loop")
	h.loop.Drain()
	assert.Equal(t, []string{" "}, h.keys)

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	h.send(runes("f"))
	assert.Equal(t, []string{" ", "right", "f"}, h.keys)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, []string{"unmount"}, h.controls.calls)
	assert.Equal(t, 1, h.quits)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, h.quits, "quit once")
	assert.Empty(t, h.keys)
	assert.Empty(t, h.m.View())
}

func TestHelp_SwallowsKeysUntilClosed(t *testing.T) {
	h := newHarness(t)

	h.send(runes("?"))
	assert.True(t, h.m.showHelp)
	assert.Contains(t, ansi.Strip(h.m.View()), "Help")

	h.send(runes("f"))
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.showHelp)
	assert.Empty(t, h.keys)
}

func TestSettings_PanelKeysChangePlayer(t *testing.T) {
	h := newHarness(t)
	h.send(UIChangedMsg{UI: interaction.UI{Visible: true, SettingsOpen: true}})

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, []float64{1.25}, h.player.rates)
	assert.Empty(t, h.keys, "panel keys stay in the panel")
	assert.Contains(t, ansi.Strip(h.m.View()), "Settings")

	h.send(runes("?"))
	assert.False(t, h.m.showHelp, "no help over settings")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"esc"}, h.keys, "escape goes to the window")
}

func TestMouse_SeekDrag(t *testing.T) {
	h := newHarness(t)
	h.send(UIChangedMsg{UI: interaction.UI{Visible: true}})
	h.send(StateChangedMsg{State: playback.State{Duration: 600, PlaybackRate: 1, Volume: 1}})

	g := playerbar.TrackGeometry(80, h.m.barState())
	row := 24 - playerbar.Height + playerbar.TrackRow()

	h.send(tea.MouseMsg{X: g.Left + 10, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(tea.MouseMsg{X: g.Left + 20, Y: row + 3, Action: tea.MouseActionMotion})
	h.send(tea.MouseMsg{X: g.Left + 20, Y: row + 3, Action: tea.MouseActionRelease})

	assert.Equal(t, []string{"begin", "move", "drag", "end"}, h.controls.calls)
	assert.Equal(t, []float64{float64(g.Left + 10), float64(g.Left + 20)}, h.controls.xs)
}

func TestMouse_HoverAndClicks(t *testing.T) {
	h := newHarness(t)
	h.send(UIChangedMsg{UI: interaction.UI{Visible: true}})

	g := playerbar.TrackGeometry(80, h.m.barState())
	row := 24 - playerbar.Height + playerbar.TrackRow()

	h.send(tea.MouseMsg{X: g.Left + 1, Y: row, Action: tea.MouseActionMotion})
	h.send(tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionMotion})
	h.send(tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionRelease})
	h.send(tea.MouseMsg{X: 5, Y: 23, Action: tea.MouseActionRelease})
	h.send(tea.BlurMsg{})

	assert.Equal(t, []string{
		"move", "hover",
		"move", "endhover",
		"up:surface",
		"up:controls",
		"leave",
	}, h.controls.calls)
}

func TestPlaybackMessages(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(StateChangedMsg{State: playback.State{CurrentTime: 75, Duration: 600, Volume: 0.5, PlaybackRate: 1}})
	assert.Nil(t, cmd, "no subscription to re-arm")
	assert.InDelta(t, 75.0, h.m.state.CurrentTime, 1e-9)

	h.send(PlayerErrorMsg{Event: playback.ErrorEvent{Operation: errmsg.OpLoadSource, Err: errors.New("404")}})
	assert.Equal(t, "Failed to load video: 404", h.m.lastError)
	assert.Contains(t, ansi.Strip(h.m.View()), "Failed to load video: 404")

	h.send(StateChangedMsg{State: playback.State{Playing: true, PlaybackRate: 1}})
	assert.Empty(t, h.m.lastError, "cleared by a healthy state")
}

func TestView_Overlay(t *testing.T) {
	h := newHarness(t)
	h.send(SegmentsLoadedMsg{Segments: []sponsorblock.Segment{{Category: "sponsor", StartPercentage: 0, EndPercentage: 10}}})
	h.send(UIChangedMsg{UI: interaction.UI{
		Visible:       true,
		PosterVisible: true,
		Effects:       []interaction.VisibleEffect{{Name: interaction.EffectSkipForward, Position: interaction.PositionRight}},
		Skip:          &interaction.SkipPrompt{Category: "selfpromo", EndTime: 30},
	}})

	view := ansi.Strip(h.m.View())
	assert.Contains(t, view, "Big Buck Bunny")
	assert.Contains(t, view, "+5s »")
	assert.Contains(t, view, "Skip selfpromo · press s")
	assert.Contains(t, view, "0:00 / --:--")
	assert.Len(t, h.m.segments, 1)

	h.send(UIChangedMsg{UI: interaction.UI{Visible: false}})
	assert.NotContains(t, ansi.Strip(h.m.View()), "--:--", "bar hidden with the overlay")
}

func TestUIBridge_KeepsLatest(t *testing.T) {
	b := NewUIBridge()
	b.Publish(interaction.UI{Seeking: true})
	b.Publish(interaction.UI{Fullscreen: true})

	got := <-b.Updates()
	assert.True(t, got.Fullscreen)
	assert.False(t, got.Seeking)

	select {
	case <-b.Updates():
		t.Fatal("only one snapshot expected")
	default:
	}
}
