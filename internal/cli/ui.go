package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-subprojects/internal/tui"
	"github.com/jakoblorz/go-subprojects/internal/tui/browser"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// UI runs the parts that need a terminal.
type UI interface {
	RunBrowser(b *browser.Browser) error
	PromptName(dirName, current string) (string, error)
}

// TerminalUI is the UI backed by bubbletea and huh.
type TerminalUI struct {
	theme *huh.Theme
}

// NewTerminalUI creates a TerminalUI with the browser palette.
func NewTerminalUI() *TerminalUI {
	return &TerminalUI{theme: tui.NewHuhTheme()}
}

// RunBrowser blocks until the user quits the browser.
func (u *TerminalUI) RunBrowser(b *browser.Browser) error {
	return browser.Run(b, tea.WithAltScreen())
}

// PromptName asks for a project name, pre-filled with current.
func (u *TerminalUI) PromptName(dirName, current string) (string, error) {
	name := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Project name for %s", dirName)).
				Placeholder("e.g. Alpha Project").
				Value(&name),
		),
	).
		WithTheme(u.theme).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}

	return name, nil
}
