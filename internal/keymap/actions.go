// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit     Action = "quit"
	ActionHelp     Action = "help"
	ActionSettings Action = "settings"

	// Player shortcuts
	ActionPlayPause        Action = "play_pause"
	ActionSeekBack         Action = "seek_back"
	ActionSeekForward      Action = "seek_forward"
	ActionVolumeUp         Action = "volume_up"
	ActionVolumeDown       Action = "volume_down"
	ActionToggleCaptions   Action = "toggle_captions"
	ActionToggleFullscreen Action = "toggle_fullscreen"
	ActionToggleMute       Action = "toggle_mute"
	ActionSkipSegment      Action = "skip_segment"

	// Player options
	ActionToggleLoop   Action = "toggle_loop"
	ActionSpeedDown    Action = "speed_down"
	ActionSpeedUp      Action = "speed_up"
	ActionCycleQuality Action = "cycle_quality" // Q - next video quality, then auto
	ActionNextLanguage Action = "next_language"

	// Settings panel
	ActionCloseSettings Action = "close_settings" // esc
)
