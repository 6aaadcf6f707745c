package keymap

import "github.com/samber/lo"

// Binding contexts, used to group the help screen.
const (
	ContextGlobal   = "global"
	ContextPlayer   = "player"
	ContextOptions  = "options"
	ContextSettings = "settings"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All is the default key table.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionSettings, []string{"o"}, "Settings", ContextGlobal},

	// Player
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextPlayer},
	{ActionSeekBack, []string{"left"}, "Seek -5s", ContextPlayer},
	{ActionSeekForward, []string{"right"}, "Seek +5s", ContextPlayer},
	{ActionVolumeUp, []string{"up"}, "Volume +10%", ContextPlayer},
	{ActionVolumeDown, []string{"down"}, "Volume -10%", ContextPlayer},
	{ActionToggleCaptions, []string{"c"}, "Toggle captions", ContextPlayer},
	{ActionToggleFullscreen, []string{"f"}, "Toggle fullscreen", ContextPlayer},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", ContextPlayer},
	{ActionSkipSegment, []string{"s"}, "Skip segment", ContextPlayer},

	// Options
	{ActionToggleLoop, []string{"l"}, "Toggle loop", ContextOptions},
	{ActionSpeedDown, []string{"<", "["}, "Slower", ContextOptions},
	{ActionSpeedUp, []string{">", "]"}, "Faster", ContextOptions},
	{ActionCycleQuality, []string{"Q"}, "Cycle video quality", ContextOptions},
	{ActionNextLanguage, []string{"a"}, "Next audio language", ContextOptions},

	// Settings panel
	{ActionCloseSettings, []string{"esc"}, "Close settings", ContextSettings},
}

// ByContext returns the bindings of one context, in table order.
func ByContext(context string) []Binding {
	return lo.Filter(All, func(b Binding, _ int) bool { return b.Context == context })
}
