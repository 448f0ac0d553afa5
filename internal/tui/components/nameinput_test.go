package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNameInput_EditsWhenFocused(t *testing.T) {
	m := NewNameInput("Alpha", "alpha")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if m.GetValue() != "Alpha" {
		t.Fatalf("unfocused input changed: %q", m.GetValue())
	}
	if m.Dirty() {
		t.Fatalf("expected clean input")
	}

	m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if got := m.GetValue(); got != "Alpha!" {
		t.Fatalf("GetValue() = %q, want %q", got, "Alpha!")
	}
	if !m.Dirty() {
		t.Fatalf("expected dirty input after edit")
	}
}

func TestNameInput_UneditedValueIsLossless(t *testing.T) {
	long := strings.Repeat("x", 300)

	for _, value := range []string{long, "Line1\nLine2", "tab\tseparated"} {
		m := NewNameInput(value, "alpha")
		m.Focus()

		if m.Dirty() {
			t.Fatalf("NewNameInput(%q) reports dirty", value)
		}
		if got := m.GetValue(); got != value {
			t.Fatalf("GetValue() = %q, want %q", got, value)
		}
	}
}

func TestNameInput_LongValueIsNotTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	m := NewNameInput(long, "alpha")
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if got := m.GetValue(); got != long+"y" {
		t.Fatalf("GetValue() has %d runes, want %d", len([]rune(got)), 301)
	}
}
