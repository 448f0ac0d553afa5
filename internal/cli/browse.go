package cli

import (
	"strings"

	"github.com/jakoblorz/go-subprojects/internal/controller"
	"github.com/jakoblorz/go-subprojects/internal/events"
	"github.com/jakoblorz/go-subprojects/internal/tui/browser"
	"github.com/spf13/cobra"
)

// BrowseCommand runs the interactive browser
type BrowseCommand struct {
	*session
}

// Run executes the browse command. A path argument is submitted as if the
// user had typed it and pressed enter.
func (c *BrowseCommand) Run(cmd *cobra.Command, args []string) error {
	model := c.newModel()

	b := browser.New()
	ctrl := controller.New(model, b, b.Reloads(), b.Saves(), c.logger)

	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		b.Show(args[0])
		b.Reloads().Publish(events.ReloadRequested{RootPath: args[0]})
	} else {
		ctrl.Start()
	}

	return c.ui.RunBrowser(b)
}
