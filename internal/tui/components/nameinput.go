package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NameInputModel wraps the bubbles textinput for editing a project name
type NameInputModel struct {
	input textinput.Model

	// original is the value as loaded. The textinput may hold a sanitized
	// copy of it (newlines and tabs become spaces), which is kept in shown.
	original string
	shown    string
}

// NewNameInput creates an unfocused name input pre-filled with value.
// placeholder is shown while the text is empty.
func NewNameInput(value, placeholder string) NameInputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = 40
	ti.SetValue(value)

	return NameInputModel{
		input:    ti,
		original: value,
		shown:    ti.Value(),
	}
}

// Update handles messages
func (m NameInputModel) Update(msg tea.Msg) (NameInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the component, marking edits made since it was rendered
func (m NameInputModel) View() string {
	if m.Dirty() {
		return m.input.View() + " *"
	}
	return m.input.View()
}

// GetValue returns the current text. An unedited input returns the loaded
// value unchanged, even when it could not be displayed verbatim.
func (m NameInputModel) GetValue() string {
	if !m.Dirty() {
		return m.original
	}
	return m.input.Value()
}

// Dirty reports whether the user changed the text
func (m NameInputModel) Dirty() bool {
	return m.input.Value() != m.shown
}

// Focus focuses the input
func (m *NameInputModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur unfocuses the input
func (m *NameInputModel) Blur() {
	m.input.Blur()
}
