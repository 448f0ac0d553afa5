package controller

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jakoblorz/go-subprojects/internal/events"
	"github.com/jakoblorz/go-subprojects/internal/models"
	"github.com/jakoblorz/go-subprojects/internal/subproject"
)

// View is what the controller needs from the presentation layer.
type View interface {
	// Show sets the path field without scanning.
	Show(rootPath string)
	// Render replaces the displayed rows with records.
	Render(records []models.Subproject)
	// Notify acknowledges the outcome of an action.
	Notify(notice models.Notice)
}

// State represents what the controller is currently doing
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

// Controller is the only component that mutates the model in response to
// view events.
type Controller struct {
	model  *subproject.Model
	view   View
	logger *slog.Logger
	state  State
}

// New creates a Controller and subscribes it once to each topic.
func New(model *subproject.Model, view View, reloads *events.Topic[events.ReloadRequested], saves *events.Topic[events.SaveRequested], logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		model:  model,
		view:   view,
		logger: logger,
		state:  StateIdle,
	}

	reloads.Subscribe(c.handleReload)
	saves.Subscribe(c.handleSave)

	return c
}

// State returns the current controller state.
func (c *Controller) State() State {
	return c.state
}

// Start performs the initial display. With no stored root path nothing is
// scanned and the list stays empty.
func (c *Controller) Start() {
	rootPath := c.model.RootPath()
	c.view.Show(rootPath)

	if strings.TrimSpace(rootPath) == "" {
		c.view.Render([]models.Subproject{})
		return
	}

	c.state = StateLoading
	defer func() { c.state = StateIdle }()

	c.load()
}

func (c *Controller) handleReload(e events.ReloadRequested) {
	rootPath := strings.TrimSpace(e.RootPath)
	if rootPath == "" {
		return
	}

	if c.state != StateIdle {
		c.logger.Warn("reload dropped while busy", slog.String("state", c.state.String()))
		return
	}

	c.state = StateLoading
	defer func() { c.state = StateIdle }()

	if err := c.model.SetRootPath(rootPath); err != nil {
		c.logger.Warn("root path not persisted", slog.String("error", err.Error()))
		c.view.Notify(models.Notice{
			Level:   models.NoticeWarning,
			Message: "Could not remember this path for next time",
		})
	}

	c.load()
}

func (c *Controller) load() {
	items, err := c.model.Load()
	c.view.Render(items)

	if err != nil {
		// err already says whether the root is missing or not a directory.
		c.view.Notify(models.Notice{
			Level:   models.NoticeError,
			Message: fmt.Sprintf("Could not load subprojects: %v", err),
		})
		return
	}

	c.view.Notify(models.Notice{
		Level:   models.NoticeInfo,
		Message: fmt.Sprintf("%d subproject(s) in %s", len(items), c.model.RootPath()),
	})
}

func (c *Controller) handleSave(e events.SaveRequested) {
	if c.state != StateIdle {
		c.logger.Warn("save dropped while busy", slog.String("state", c.state.String()))
		return
	}

	c.state = StateSaving
	defer func() { c.state = StateIdle }()

	if err := c.model.SetInfo(e.DirName, e.Name); err != nil {
		c.logger.Error("save failed", slog.String("dir", e.DirName), slog.String("error", err.Error()))
		c.view.Notify(models.Notice{
			Level:   models.NoticeError,
			Message: fmt.Sprintf("Save failed for %s: %v", e.DirName, err),
		})
		return
	}

	c.view.Notify(models.Notice{
		Level:   models.NoticeSuccess,
		Message: fmt.Sprintf("Saved %s", e.DirName),
	})
}
