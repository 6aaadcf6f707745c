package interaction

import (
	"math"
	"slices"

	"github.com/llehouerou/flipplayer/internal/adapter"
	"github.com/llehouerou/flipplayer/internal/keymap"
)

// PlaybackSpeeds are the steps of the speed shortcuts and the settings panel.
var PlaybackSpeeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// onKey handles the player shortcuts. Nothing fires while a modal surface
// is open.
func (c *Controller) onKey(key string) {
	if c.window.Modal() {
		return
	}
	switch c.keys.Resolve(key) { //nolint:exhaustive // global actions belong to the host
	case keymap.ActionPlayPause:
		c.player.TogglePlay()
	case keymap.ActionSeekBack:
		c.seekBy(-seekStep)
	case keymap.ActionSeekForward:
		c.seekBy(seekStep)
	case keymap.ActionVolumeUp:
		c.stepVolume(volumeStep)
	case keymap.ActionVolumeDown:
		c.stepVolume(-volumeStep)
	case keymap.ActionToggleCaptions:
		c.ToggleCaptions()
	case keymap.ActionToggleFullscreen:
		c.ToggleFullscreen()
	case keymap.ActionToggleMute:
		c.player.SetMuted(!c.player.State().Muted)
	case keymap.ActionSkipSegment:
		c.SkipCurrentSegment()
	case keymap.ActionToggleLoop:
		c.player.SetLoop(!c.player.State().Loop)
	case keymap.ActionSpeedDown:
		c.stepSpeed(-1)
	case keymap.ActionSpeedUp:
		c.stepSpeed(1)
	case keymap.ActionCycleQuality:
		c.cycleQuality()
	case keymap.ActionNextLanguage:
		c.nextLanguage()
	case keymap.ActionSettings:
		c.OpenSettings()
	}
}

func (c *Controller) stepVolume(delta float64) {
	v := c.player.State().Volume + delta
	v = math.Round(min(max(v, 0), 1)*100) / 100
	c.player.SetVolume(v)
	if delta > 0 {
		c.TriggerEffect(EffectVolumeUp)
	} else {
		c.TriggerEffect(EffectVolumeDown)
	}
}

// stepSpeed moves to the neighbouring speed step in dir.
func (c *Controller) stepSpeed(dir int) {
	cur := c.player.State().PlaybackRate
	i, found := slices.BinarySearch(PlaybackSpeeds, cur)
	switch {
	case dir > 0 && found:
		i++
	case dir < 0:
		i--
	}
	if i < 0 || i >= len(PlaybackSpeeds) {
		return
	}
	c.player.SetPlaybackRate(PlaybackSpeeds[i])
}

// cycleQuality walks the representations of the first video track in
// order, then returns to automatic selection.
func (c *Controller) cycleQuality() {
	s := c.player.State()
	if len(s.VideoTracks) == 0 {
		return
	}
	t := s.VideoTracks[0]
	if len(t.Representations) == 0 {
		return
	}
	if s.AutomaticVideoQuality {
		c.player.SetVideoRepresentation(t.ID, t.Representations[0].ID)
		return
	}
	current := t.ActiveRepresentationID
	if s.PendingVideoRepresentation != "" {
		current = s.PendingVideoRepresentation
	}
	i := slices.IndexFunc(t.Representations, func(r adapter.Representation) bool {
		return r.ID == current
	})
	if i < 0 || i+1 >= len(t.Representations) {
		c.player.SetAutoVideoQuality()
		return
	}
	c.player.SetVideoRepresentation(t.ID, t.Representations[i+1].ID)
}

// nextLanguage selects the language of the audio track after the selected
// one.
func (c *Controller) nextLanguage() {
	s := c.player.State()
	var langs []string
	for _, t := range s.AudioTracks {
		if t.Language != "" && !slices.Contains(langs, t.Language) {
			langs = append(langs, t.Language)
		}
	}
	if len(langs) == 0 {
		return
	}
	i := slices.Index(langs, s.SelectedLanguage)
	c.player.SetLanguage(langs[(i+1)%len(langs)])
}

// OpenSettings opens the settings panel. While open, the window is modal
// and Escape closes the panel.
func (c *Controller) OpenSettings() {
	if c.settingsOpen {
		return
	}
	c.settingsOpen = true
	c.window.SetModal(true)
	c.settingsOff = c.window.AddKeyListener(func(key string) {
		if c.keys.Resolve(key) == keymap.ActionCloseSettings {
			c.CloseSettings()
		}
	})
	c.changed()
}

// CloseSettings closes the settings panel and removes its key listener.
func (c *Controller) CloseSettings() {
	if !c.settingsOpen {
		return
	}
	c.settingsOff()
	c.settingsOff = nil
	c.settingsOpen = false
	c.window.SetModal(false)
	c.changed()
}
