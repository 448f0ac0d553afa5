package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	*session
	asJSON bool
}

// NewListCommand creates a new list command
func NewListCommand(s *session) *cobra.Command {
	cmd := &ListCommand{session: s}

	cobraCmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Print the subprojects of the root path",
		Long: `Prints one line per subproject: the directory name, a tab, and the
project name. A path argument becomes the remembered root path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.asJSON, "json", false, "Print as a JSON array")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	model := c.newModel()

	if len(args) == 1 {
		if err := model.SetRootPath(args[0]); err != nil {
			return err
		}
	}

	items, err := model.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if c.asJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode subprojects: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	for _, item := range items {
		if item.DisplayName == "" {
			_, _ = fmt.Fprintln(out, item.DirName)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\n", item.DirName, item.DisplayName)
	}

	return nil
}
