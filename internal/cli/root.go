package cli

import (
	"fmt"

	"github.com/jakoblorz/go-subprojects/internal/config"
	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/logging"
	"github.com/spf13/cobra"
)

// Option configures the root command.
type Option func(*session)

// WithUI replaces the terminal UI, e.g. with a scripted one in tests.
func WithUI(ui UI) Option {
	return func(s *session) {
		s.ui = ui
	}
}

// WithLogOpener replaces how the log is opened.
func WithLogOpener(open LogOpener) Option {
	return func(s *session) {
		s.openLog = open
	}
}

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, options ...Option) *cobra.Command {
	s := &session{
		fs:      fs,
		ui:      NewTerminalUI(),
		openLog: logging.OpenFile,
	}
	for _, option := range options {
		option(s)
	}

	rootCmd := &cobra.Command{
		Use:   "subprojects [path]",
		Short: "Browse and name the projects in a directory",
		Long: `Lists the immediate subdirectories of a projects directory and lets you
give each one a human-readable name, stored in a db.json file inside it.

Without a subcommand the interactive browser starts.`,
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		PersistentPreRunE:  s.setup,
		PersistentPostRunE: s.teardown,
		RunE:               (&BrowseCommand{session: s}).Run,
	}

	rootCmd.PersistentFlags().StringVar(&s.cfgFile, "config", "", "Config file (default <config dir>/subprojects/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&s.sidecar, "sidecar", "db.json", "Name of the per-project metadata file")

	// Add subcommands
	rootCmd.AddCommand(NewListCommand(s))
	rootCmd.AddCommand(NewSetCommand(s))
	rootCmd.AddCommand(NewRootPathCommand(s))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	config.LoadDotEnv()

	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
