package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/tui"
	"github.com/spf13/cobra"
)

// SetCommand handles the set command
type SetCommand struct {
	*session
	root string
}

// NewSetCommand creates a new set command
func NewSetCommand(s *session) *cobra.Command {
	cmd := &SetCommand{session: s}

	cobraCmd := &cobra.Command{
		Use:   "set <dir> [name]",
		Short: "Store the project name of a subdirectory",
		Long: `Writes the project name into the metadata file of <dir>, a directory
directly below the root path. Without a name you are prompted for one.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.root, "root", "", "Root path (default: the remembered one)")

	return cobraCmd
}

// Run executes the set command
func (c *SetCommand) Run(cmd *cobra.Command, args []string) error {
	model := c.newModel()

	if c.root != "" {
		if err := model.SetRootPath(c.root); err != nil {
			return err
		}
	}
	if strings.TrimSpace(model.RootPath()) == "" {
		return errors.New("no root path set: pass --root or choose one in the browser")
	}

	dirName := args[0]
	dir := filepath.Join(model.RootPath(), dirName)
	if !filesystem.IsDir(c.fs, dir) {
		return fmt.Errorf("%s is not a directory below %s", dirName, model.RootPath())
	}

	var name string
	if len(args) == 2 {
		name = args[1]
	} else {
		current := c.metadataStore().Read(dir).Name

		var err error
		name, err = c.ui.PromptName(dirName, current)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return fmt.Errorf("failed to prompt for name: %w", err)
		}
	}

	if err := model.SetInfo(dirName, name); err != nil {
		return fmt.Errorf("failed to save %s: %w", dirName, err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(fmt.Sprintf("✓ Saved %s: %q", dirName, name)))
	return nil
}
