package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-subprojects/internal/models"
)

var (
	accent  = lipgloss.Color("#7D56F4")
	green   = lipgloss.Color("#04B575")
	red     = lipgloss.Color("#FF0000")
	amber   = lipgloss.Color("#FFB000")
	gray    = lipgloss.Color("#888888")
	dimGray = lipgloss.Color("#666666")
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	// Directory label of a row
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Width(24)

	// Directory label of the focused row
	FocusedLabelStyle = LabelStyle.
				Foreground(accent).
				Bold(true)

	// Help text styling
	HelpStyle = lipgloss.NewStyle().
			Foreground(gray).
			MarginTop(1)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(amber)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(dimGray)
)

// NoticeStyle picks the style matching a notice level.
func NoticeStyle(level models.NoticeLevel) lipgloss.Style {
	switch level {
	case models.NoticeSuccess:
		return SuccessStyle
	case models.NoticeError:
		return ErrorStyle
	case models.NoticeWarning:
		return WarningStyle
	default:
		return SubtleStyle
	}
}

// NewHuhTheme returns the huh theme matching the browser palette.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
