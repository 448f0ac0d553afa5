package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jakoblorz/go-subprojects/internal/config"
	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/metadata"
	"github.com/jakoblorz/go-subprojects/internal/prefs"
	"github.com/jakoblorz/go-subprojects/internal/subproject"
	"github.com/spf13/cobra"
)

// LogOpener opens the logger described by the config.
type LogOpener func(fsys filesystem.FileSystem, path, level string) (*slog.Logger, io.Closer, error)

// session carries what every command needs once flags are parsed.
type session struct {
	fs      filesystem.FileSystem
	ui      UI
	openLog LogOpener

	cfgFile  string
	logLevel string
	sidecar  string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// setup loads config, applies flag overrides and opens the log.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.fs, s.cfgFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if cmd.Flags().Changed("sidecar") {
		cfg.SidecarFileName = s.sidecar
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, closer, err := s.openLog(s.fs, cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.logger = logger
	s.closer = closer
	return nil
}

func (s *session) teardown(*cobra.Command, []string) error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// newModel builds the subproject model with the remembered root path
// restored. A failed restore starts from an empty path.
func (s *session) newModel() *subproject.Model {
	meta := metadata.NewStore(s.fs, s.cfg.SidecarFileName, s.logger)
	store := prefs.NewFileStore(s.fs, s.cfg.PrefsFile)

	model := subproject.NewModel(s.fs, meta, store,
		subproject.WithGitIgnore(s.cfg.RespectGitIgnore),
		subproject.WithHidden(s.cfg.IncludeHidden),
		subproject.WithLogger(s.logger),
	)

	if err := model.Restore(); err != nil {
		s.logger.Warn("starting without a root path", slog.String("error", err.Error()))
	}

	return model
}

func (s *session) metadataStore() *metadata.Store {
	return metadata.NewStore(s.fs, s.cfg.SidecarFileName, s.logger)
}
