package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootPathCommand handles the root command
type RootPathCommand struct {
	*session
}

// NewRootPathCommand creates a new root command
func NewRootPathCommand(s *session) *cobra.Command {
	cmd := &RootPathCommand{session: s}

	return &cobra.Command{
		Use:   "root [path]",
		Short: "Print or change the remembered root path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the root command
func (c *RootPathCommand) Run(cmd *cobra.Command, args []string) error {
	model := c.newModel()

	if len(args) == 1 {
		if err := model.SetRootPath(args[0]); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), model.RootPath())
	return nil
}
