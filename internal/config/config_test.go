//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/bin/mpv",
			expected: filepath.Join(home, "bin", "mpv"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/bin/mpv",
			expected: "/usr/bin/mpv",
		},
		{
			name:     "relative path unchanged",
			input:    "bin/mpv",
			expected: "bin/mpv",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "flipplayer", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom([]string{writeConfig(t, "")})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if !cfg.SaveVideoHistory() {
		t.Error("SaveVideoHistory() = false, want true")
	}
	if cfg.AlwaysLoopVideo() {
		t.Error("AlwaysLoopVideo() = true, want false")
	}
	if cfg.DefaultVideoSpeed() != 1 {
		t.Errorf("DefaultVideoSpeed() = %v, want 1", cfg.DefaultVideoSpeed())
	}
	if cfg.MaxVideoQuality() != 0 {
		t.Errorf("MaxVideoQuality() = %d, want 0", cfg.MaxVideoQuality())
	}
	if !cfg.Autoplay() {
		t.Error("Autoplay() = false, want true")
	}
	if !cfg.SponsorBlockEnabled() {
		t.Error("SponsorBlockEnabled() = false, want true")
	}
	if cfg.HasAPI() {
		t.Error("HasAPI() = true, want false")
	}
}

func TestLoad_MissingFilesSkipped(t *testing.T) {
	cfg, err := loadFrom([]string{filepath.Join(t.TempDir(), "nope.toml")})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("loadFrom() returned nil config")
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	path := writeConfig(t, `
[player]
save_video_history = false
always_loop_video = true
default_video_speed = 1.5
max_video_quality = 720
autoplay = false
embed = true

[sponsorblock]
enabled = false

[sponsorblock.categories]
sponsor = " Ask "
intro = "skip"

[api]
url = "https://example.com/api"
sponsorblock_url = "https://sb.example.com/"

[mpv]
args = ["--hwdec=auto"]

[log]
level = "debug"
pretty = true
`)

	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.SaveVideoHistory() {
		t.Error("SaveVideoHistory() = true, want false")
	}
	if !cfg.AlwaysLoopVideo() {
		t.Error("AlwaysLoopVideo() = false, want true")
	}
	if cfg.DefaultVideoSpeed() != 1.5 {
		t.Errorf("DefaultVideoSpeed() = %v, want 1.5", cfg.DefaultVideoSpeed())
	}
	if cfg.MaxVideoQuality() != 720 {
		t.Errorf("MaxVideoQuality() = %d, want 720", cfg.MaxVideoQuality())
	}
	if cfg.Autoplay() {
		t.Error("Autoplay() = true, want false")
	}
	if !cfg.Player.Embed {
		t.Error("Player.Embed = false, want true")
	}
	if cfg.SponsorBlockEnabled() {
		t.Error("SponsorBlockEnabled() = true, want false")
	}
	if got := cfg.SponsorBlockPolicy("sponsor"); got != "ask" {
		t.Errorf("SponsorBlockPolicy(sponsor) = %q, want %q", got, "ask")
	}
	if got := cfg.SponsorBlockPolicy("intro"); got != "skip" {
		t.Errorf("SponsorBlockPolicy(intro) = %q, want %q", got, "skip")
	}

	// Trailing slash added to the API URL, removed from the SponsorBlock URL
	if cfg.API.URL != "https://example.com/api/" {
		t.Errorf("API.URL = %q, want %q", cfg.API.URL, "https://example.com/api/")
	}
	if cfg.API.SponsorBlockURL != "https://sb.example.com" {
		t.Errorf("API.SponsorBlockURL = %q, want %q", cfg.API.SponsorBlockURL, "https://sb.example.com")
	}
	if len(cfg.MPV.Args) != 1 || cfg.MPV.Args[0] != "--hwdec=auto" {
		t.Errorf("MPV.Args = %v, want [--hwdec=auto]", cfg.MPV.Args)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Errorf("Log = %+v, want debug/pretty", cfg.Log)
	}
}

func TestLoad_LaterFileWins(t *testing.T) {
	first := writeConfig(t, "[player]\ndefault_video_speed = 2\nalways_loop_video = true\n")
	second := writeConfig(t, "[player]\ndefault_video_speed = 1.25\n")

	cfg, err := loadFrom([]string{first, second})
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.DefaultVideoSpeed() != 1.25 {
		t.Errorf("DefaultVideoSpeed() = %v, want 1.25", cfg.DefaultVideoSpeed())
	}
	if !cfg.AlwaysLoopVideo() {
		t.Error("AlwaysLoopVideo() = false, want true (kept from first file)")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	if _, err := loadFrom([]string{writeConfig(t, "[player\n")}); err == nil {
		t.Error("loadFrom() error = nil, want parse error")
	}
}

func TestSponsorBlockPolicy_Defaults(t *testing.T) {
	tests := []struct {
		category string
		expected string
	}{
		{"sponsor", "skip"},
		{"selfpromo", "ask"},
		{"outro", "none"},
		{"unknown", "none"},
	}

	cfg := &Config{}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := cfg.SponsorBlockPolicy(tt.category); got != tt.expected {
				t.Errorf("SponsorBlockPolicy(%q) = %q, want %q", tt.category, got, tt.expected)
			}
		})
	}
}

func TestDefaultVideoSpeed_InvalidFallsBack(t *testing.T) {
	cfg := &Config{Player: PlayerConfig{DefaultVideoSpeed: -2}}
	if cfg.DefaultVideoSpeed() != 1 {
		t.Errorf("DefaultVideoSpeed() = %v, want 1", cfg.DefaultVideoSpeed())
	}
}
