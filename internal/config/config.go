package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Player       PlayerConfig       `koanf:"player"`
	SponsorBlock SponsorBlockConfig `koanf:"sponsorblock"`

	// Backend endpoints (history saving is disabled without api.url)
	API APIConfig `koanf:"api"`

	MPV MPVConfig `koanf:"mpv"`
	Log LogConfig `koanf:"log"`
}

// PlayerConfig holds playback preferences.
type PlayerConfig struct {
	SaveVideoHistory  *bool   `koanf:"save_video_history"`  // default: true
	AlwaysLoopVideo   bool    `koanf:"always_loop_video"`   // default: false
	DefaultVideoSpeed float64 `koanf:"default_video_speed"` // default: 1
	MaxVideoQuality   int     `koanf:"max_video_quality"`   // tallest automatic format in lines, 0 = no cap
	Autoplay          *bool   `koanf:"autoplay"`            // default: true
	Embed             bool    `koanf:"embed"`               // minimal player: no history saving
}

// SponsorBlockConfig holds segment skipping preferences.
type SponsorBlockConfig struct {
	Enabled    *bool             `koanf:"enabled"`    // default: true
	Categories map[string]string `koanf:"categories"` // category -> "skip", "ask" or "none"
}

// APIConfig holds backend URLs.
type APIConfig struct {
	URL             string `koanf:"url"`              // e.g., "https://example.com/api/"
	SponsorBlockURL string `koanf:"sponsorblock_url"` // default: public instance
}

// MPVConfig holds the mpv process settings.
type MPVConfig struct {
	Binary string   `koanf:"binary"` // default: "mpv" on PATH
	Args   []string `koanf:"args"`   // extra command line flags
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Pretty bool   `koanf:"pretty"` // human readable lines instead of JSON
}

// defaultPolicies apply to categories the config does not mention.
var defaultPolicies = map[string]string{
	"sponsor":   "skip",
	"selfpromo": "ask",
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Missing files are skipped; later files win
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize API URL so that paths can be appended
	if cfg.API.URL != "" && !strings.HasSuffix(cfg.API.URL, "/") {
		cfg.API.URL += "/"
	}
	cfg.API.SponsorBlockURL = strings.TrimSuffix(cfg.API.SponsorBlockURL, "/")

	if cfg.MPV.Binary != "" {
		cfg.MPV.Binary = expandPath(cfg.MPV.Binary)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/flipplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "flipplayer", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasAPI returns true if a backend is configured.
func (c *Config) HasAPI() bool {
	return c.API.URL != ""
}

// SaveVideoHistory reports whether watch progress is sent to the backend.
func (c *Config) SaveVideoHistory() bool {
	return boolOr(c.Player.SaveVideoHistory, true)
}

func (c *Config) AlwaysLoopVideo() bool {
	return c.Player.AlwaysLoopVideo
}

// DefaultVideoSpeed returns the start speed, 1 when unset or invalid.
func (c *Config) DefaultVideoSpeed() float64 {
	if c.Player.DefaultVideoSpeed <= 0 {
		return 1
	}
	return c.Player.DefaultVideoSpeed
}

func (c *Config) MaxVideoQuality() int {
	return max(c.Player.MaxVideoQuality, 0)
}

func (c *Config) Autoplay() bool {
	return boolOr(c.Player.Autoplay, true)
}

func (c *Config) SponsorBlockEnabled() bool {
	return boolOr(c.SponsorBlock.Enabled, true)
}

// SponsorBlockPolicy returns the raw policy string for category. Categories
// absent from the config fall back to the built-in defaults, then to "none".
func (c *Config) SponsorBlockPolicy(category string) string {
	if p, ok := c.SponsorBlock.Categories[category]; ok {
		return strings.ToLower(strings.TrimSpace(p))
	}
	if p, ok := defaultPolicies[category]; ok {
		return p
	}
	return "none"
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
