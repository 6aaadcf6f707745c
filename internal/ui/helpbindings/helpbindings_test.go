package helpbindings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/flipplayer/internal/keymap"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func newSized(height int) Model {
	m := New()
	m.SetSize(80, height)
	return m
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"esc", "q", "?"} {
		t.Run(key, func(t *testing.T) {
			_, closed := newSized(24).Update(keyMsg(key))
			if !closed {
				t.Errorf("Update(%q) closed = false, want true", key)
			}
		})
	}
}

func TestHelpBindings_OtherKeysKeepOpen(t *testing.T) {
	_, closed := newSized(24).Update(keyMsg("x"))
	if closed {
		t.Error("Update(x) closed = true, want false")
	}
	_, closed = newSized(24).Update(tea.WindowSizeMsg{})
	if closed {
		t.Error("non-key message closed the panel")
	}
}

func TestHelpBindings_ScrollBounded(t *testing.T) {
	m := newSized(12)
	limit := m.maxScroll()
	if limit == 0 {
		t.Fatal("expected content taller than the panel")
	}

	for range limit + 5 {
		m, _ = m.Update(keyMsg("j"))
	}
	if m.scrollOffset != limit {
		t.Errorf("scrollOffset = %d, want %d", m.scrollOffset, limit)
	}

	for range limit + 5 {
		m, _ = m.Update(keyMsg("k"))
	}
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d, want 0", m.scrollOffset)
	}
}

func TestHelpBindings_ContentListsContexts(t *testing.T) {
	m := newSized(100)
	view := ansi.Strip(m.View())

	for _, want := range []string{"Global", "Player", "Options", "Settings Panel", "Toggle fullscreen", "?/esc close"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "j/k scroll") {
		t.Error("scroll hint shown although everything fits")
	}
}

func TestHelpBindings_SetContexts(t *testing.T) {
	m := newSized(100)
	m.SetContexts([]string{keymap.ContextOptions})

	view := ansi.Strip(m.View())
	if strings.Contains(view, "Toggle fullscreen") {
		t.Error("player bindings shown for options context only")
	}
	if !strings.Contains(view, "Toggle loop") {
		t.Error("options bindings missing")
	}
}

func TestKeyLabel_DropsLiteralSpace(t *testing.T) {
	got := keyLabel(keymap.Binding{Keys: []string{" ", "space"}})
	if got != "space" {
		t.Errorf("keyLabel() = %q, want %q", got, "space")
	}
}

func TestHelpBindings_ZeroSizeRendersNothing(t *testing.T) {
	if New().View() != "" {
		t.Error("View() without size should be empty")
	}
}
