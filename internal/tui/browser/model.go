package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jakoblorz/go-subprojects/internal/events"
	"github.com/jakoblorz/go-subprojects/internal/models"
	"github.com/jakoblorz/go-subprojects/internal/tui"
	"github.com/jakoblorz/go-subprojects/internal/tui/components"
	"github.com/sahilm/fuzzy"
)

// focusPath marks the path field as focused; any other value indexes visible.
const focusPath = -1

type row struct {
	record models.Subproject
	input  components.NameInputModel
}

// Browser is the bubbletea model listing subprojects. It renders what it is
// handed and turns key presses into reload and save events; it never touches
// the filesystem itself.
type Browser struct {
	reloads *events.Topic[events.ReloadRequested]
	saves   *events.Topic[events.SaveRequested]

	path   textinput.Model
	filter textinput.Model
	rows   []row

	// visible holds indices into rows that match the current filter.
	visible   []int
	focus     int
	searching bool

	notice   models.Notice
	keys     keyMap
	help     help.Model
	quitting bool
}

// New creates a Browser with an empty list and the path field focused.
func New() *Browser {
	path := textinput.New()
	path.Prompt = "Path: "
	path.Placeholder = "/path/to/projects"
	path.CharLimit = 4096
	path.Width = 60
	path.Focus()

	filter := textinput.New()
	filter.Prompt = "Search: "
	filter.Placeholder = "directory or project name"

	return &Browser{
		reloads: events.NewTopic[events.ReloadRequested](),
		saves:   events.NewTopic[events.SaveRequested](),
		path:    path,
		filter:  filter,
		focus:   focusPath,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Reloads is the topic carrying reload requests.
func (b *Browser) Reloads() *events.Topic[events.ReloadRequested] {
	return b.reloads
}

// Saves is the topic carrying save requests.
func (b *Browser) Saves() *events.Topic[events.SaveRequested] {
	return b.saves
}

// Show fills the path field. An empty path leaves the field empty.
func (b *Browser) Show(rootPath string) {
	b.path.SetValue(rootPath)
	b.path.CursorEnd()
}

// Render clears the rows and rebuilds them from records.
func (b *Browser) Render(records []models.Subproject) {
	b.rows = make([]row, 0, len(records))
	for _, record := range records {
		b.rows = append(b.rows, row{record: record, input: components.NewNameInput(record.DisplayName, record.Label())})
	}

	b.applyFilter()
	b.setFocus(b.focus)
}

// Notify shows notice in the status line until the next one arrives.
func (b *Browser) Notify(notice models.Notice) {
	b.notice = notice
}

// Records returns the records currently rendered, in display order.
func (b *Browser) Records() []models.Subproject {
	records := make([]models.Subproject, 0, len(b.visible))
	for _, idx := range b.visible {
		records = append(records, b.rows[idx].record)
	}
	return records
}

// Init initializes the model
func (b *Browser) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
		return b, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			b.quitting = true
			return b, tea.Quit
		}
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateKeys(msg)
	}

	return b, b.updateFocused(msg)
}

func (b *Browser) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		b.quitting = true
		return b, tea.Quit

	case key.Matches(msg, b.keys.Next):
		return b, b.setFocus(b.focus + 1)

	case key.Matches(msg, b.keys.Prev):
		return b, b.setFocus(b.focus - 1)

	case key.Matches(msg, b.keys.Search):
		b.searching = true
		b.blurAll()
		return b, b.filter.Focus()

	case key.Matches(msg, b.keys.Reload):
		b.reloads.Publish(events.ReloadRequested{RootPath: b.path.Value()})
		return b, nil

	case key.Matches(msg, b.keys.Save):
		b.saveFocused()
		return b, nil

	case key.Matches(msg, b.keys.Submit):
		if b.focus == focusPath {
			b.reloads.Publish(events.ReloadRequested{RootPath: b.path.Value()})
		} else {
			b.saveFocused()
		}
		return b, nil
	}

	return b, b.updateFocused(msg)
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Cancel):
		b.filter.SetValue("")
		b.searching = false
		b.filter.Blur()
		b.applyFilter()
		return b, b.setFocus(b.focus)

	case key.Matches(msg, b.keys.Submit), key.Matches(msg, b.keys.Next):
		b.searching = false
		b.filter.Blur()
		if len(b.visible) > 0 {
			return b, b.setFocus(0)
		}
		return b, b.setFocus(focusPath)
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.applyFilter()
	return b, cmd
}

// saveFocused raises a save for the focused row. The identity comes from the
// stored record, never from what is on screen.
func (b *Browser) saveFocused() {
	r := b.focusedRow()
	if r == nil {
		return
	}
	b.saves.Publish(events.SaveRequested{
		DirName: r.record.DirName,
		Name:    r.input.GetValue(),
	})
}

func (b *Browser) focusedRow() *row {
	if b.focus < 0 || b.focus >= len(b.visible) {
		return nil
	}
	return &b.rows[b.visible[b.focus]]
}

func (b *Browser) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if r := b.focusedRow(); r != nil {
		r.input, cmd = r.input.Update(msg)
		return cmd
	}
	if b.focus == focusPath {
		b.path, cmd = b.path.Update(msg)
	}
	return cmd
}

func (b *Browser) blurAll() {
	b.path.Blur()
	for i := range b.rows {
		b.rows[i].input.Blur()
	}
}

// setFocus moves focus to target, clamped to the path field and the visible
// rows.
func (b *Browser) setFocus(target int) tea.Cmd {
	if target < focusPath {
		target = focusPath
	}
	if target >= len(b.visible) {
		target = len(b.visible) - 1
	}
	b.focus = target

	b.blurAll()
	if b.searching {
		return nil
	}
	if r := b.focusedRow(); r != nil {
		return r.input.Focus()
	}
	return b.path.Focus()
}

// applyFilter narrows the visible rows to fuzzy matches of the search text
// against directory and project names, keeping list order.
func (b *Browser) applyFilter() {
	pattern := strings.TrimSpace(b.filter.Value())

	b.visible = b.visible[:0]
	if pattern == "" {
		for i := range b.rows {
			b.visible = append(b.visible, i)
		}
		return
	}

	matched := make(map[int]struct{})
	for _, m := range fuzzy.FindFrom(pattern, searchSource(b.rows)) {
		matched[m.Index] = struct{}{}
	}
	for i := range b.rows {
		if _, ok := matched[i]; ok {
			b.visible = append(b.visible, i)
		}
	}

	if b.focus >= len(b.visible) {
		b.focus = len(b.visible) - 1
	}
}

type searchSource []row

func (s searchSource) String(i int) string {
	return s[i].record.DirName + " " + s[i].input.GetValue()
}

func (s searchSource) Len() int {
	return len(s)
}

// View renders the current state
func (b *Browser) View() string {
	if b.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(tui.TitleStyle.Render("Subprojects"))
	sb.WriteString("\n")
	sb.WriteString(b.path.View())
	sb.WriteString("\n\n")

	if b.searching || b.filter.Value() != "" {
		sb.WriteString(b.filter.View())
		sb.WriteString("\n\n")
	}

	switch {
	case len(b.rows) == 0:
		sb.WriteString(tui.SubtleStyle.Render("No subprojects."))
		sb.WriteString("\n")
	case len(b.visible) == 0:
		sb.WriteString(tui.SubtleStyle.Render("No matches."))
		sb.WriteString("\n")
	default:
		for i, idx := range b.visible {
			r := b.rows[idx]
			label := tui.LabelStyle.Render(r.record.DirName)
			if i == b.focus {
				label = tui.FocusedLabelStyle.Render(r.record.DirName)
			}
			sb.WriteString(fmt.Sprintf("%s %s\n", label, r.input.View()))
		}
	}

	if b.notice.Message != "" {
		msg := b.notice.Message
		if b.notice.IsFailure() {
			msg = "✗ " + msg
		}
		sb.WriteString("\n")
		sb.WriteString(tui.NoticeStyle(b.notice.Level).Render(msg))
		sb.WriteString("\n")
	}

	sb.WriteString(tui.HelpStyle.Render(b.help.View(b.keys)))

	return sb.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(b *Browser, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(b, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
