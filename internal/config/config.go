// Package config loads the optional config file, environment overrides and
// defaults into a validated Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jakoblorz/go-subprojects/internal/filesystem"
	"github.com/jakoblorz/go-subprojects/internal/metadata"
	"github.com/jakoblorz/go-subprojects/internal/prefs"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the directory below the user config dir.
const AppName = "subprojects"

// EnvPrefix prefixes environment overrides, e.g. SUBPROJECTS_LOG_LEVEL.
const EnvPrefix = "SUBPROJECTS"

// Config holds every recognized option.
type Config struct {
	SidecarFileName  string `mapstructure:"sidecar_file_name"`
	PrefsFile        string `mapstructure:"prefs_file"`
	LogFile          string `mapstructure:"log_file"`
	LogLevel         string `mapstructure:"log_level"`
	RespectGitIgnore bool   `mapstructure:"respect_gitignore"`
	IncludeHidden    bool   `mapstructure:"include_hidden"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SidecarFileName, validation.Required, validation.By(singleSegment)),
		validation.Field(&c.PrefsFile, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

func singleSegment(value interface{}) error {
	name, _ := value.(string)
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.New("must be a plain file name")
	}
	return nil
}

// Dir returns <user config dir>/subprojects.
func Dir(fsys filesystem.FileSystem) (string, error) {
	base, err := fsys.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load reads configuration. cfgFile may be empty, in which case
// <config dir>/config.yaml is used when present. Environment variables
// override file values.
func Load(fsys filesystem.FileSystem, cfgFile string) (*Config, error) {
	dir, err := Dir(fsys)
	if err != nil {
		return nil, err
	}

	prefsPath, err := prefs.DefaultPath(fsys)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("sidecar_file_name", metadata.DefaultFileName)
	v.SetDefault("prefs_file", prefsPath)
	v.SetDefault("log_file", filepath.Join(dir, AppName+".log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("respect_gitignore", false)
	v.SetDefault("include_hidden", true)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = filepath.Join(dir, "config.yaml")
	}

	data, err := fsys.ReadFile(cfgFile)
	switch {
	case err == nil:
		v.SetConfigType(configType(cfgFile))
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", cfgFile, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file, defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment if one exists. Variables already set win.
func LoadDotEnv() {
	_ = godotenv.Load()
}
