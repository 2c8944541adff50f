package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shorts-cli/shorts/internal/fs"
	"github.com/shorts-cli/shorts/internal/shortcut"
	"github.com/shorts-cli/shorts/internal/store"
)

const (
	// ConfigDir is the directory name for shorts configuration.
	ConfigDir = ".config/shorts"
	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes environment variable overrides, e.g. SHORTS_SHORTCUT_DIR.
	EnvPrefix = "SHORTS"
)

// BrokerConfig selects and tunes the privilege elevation broker.
type BrokerConfig struct {
	// Command is tried before the built-in candidates (pkexec, sudo).
	Command string `mapstructure:"command" yaml:"command,omitempty"`
	// Args are passed to pkexec before the install script.
	Args         []string      `mapstructure:"args" yaml:"args,omitempty"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	DirTimeout   time.Duration `mapstructure:"dir_timeout" yaml:"dir_timeout"`
}

// Config represents the user configuration.
type Config struct {
	ShortcutDir  string       `mapstructure:"shortcut_dir" yaml:"shortcut_dir"`
	Interpreter  string       `mapstructure:"interpreter" yaml:"interpreter"`
	StrictSyntax bool         `mapstructure:"strict_syntax" yaml:"strict_syntax"`
	LogLevel     string       `mapstructure:"log_level" yaml:"log_level"`
	Broker       BrokerConfig `mapstructure:"broker" yaml:"broker"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ShortcutDir: store.DefaultDir,
		Interpreter: shortcut.DefaultInterpreter,
		LogLevel:    "warn",
		Broker: BrokerConfig{
			Args:         []string{"--disable-internal-agent"},
			WriteTimeout: store.DefaultWriteTimeout,
			DirTimeout:   store.DefaultDirTimeout,
		},
	}
}

// Validate checks values viper cannot check on its own.
func (c *Config) Validate() error {
	if c.ShortcutDir == "" {
		return fmt.Errorf("shortcut_dir must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Broker.WriteTimeout <= 0 || c.Broker.DirTimeout <= 0 {
		return fmt.Errorf("broker timeouts must be positive")
	}
	return nil
}

// Level returns the configured log level, falling back to warn.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// StoreOptions returns store options for this configuration.
func (c *Config) StoreOptions(fsys fs.System, logger *log.Logger) (store.Options, error) {
	dir, err := ExpandPath(fsys, c.ShortcutDir)
	if err != nil {
		return store.Options{}, err
	}
	return store.Options{
		Dir:          dir,
		WriteTimeout: c.Broker.WriteTimeout,
		DirTimeout:   c.Broker.DirTimeout,
		Logger:       logger,
	}, nil
}

// Candidates returns broker commands in the order they should be tried.
func (b BrokerConfig) Candidates(defaults []string) []string {
	if b.Command == "" {
		return defaults
	}
	return append([]string{b.Command}, defaults...)
}

// GlobalConfigPath returns the path to the global config file (~/.config/shorts/config.yaml).
func GlobalConfigPath(fsys fs.System) (string, error) {
	home, err := fsys.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return fsys.Join(home, ConfigDir, ConfigFileName), nil
}

// ExpandPath expands ~ in a path to the home directory.
func ExpandPath(fsys fs.System, path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] == '~' {
		home, err := fsys.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home + path[1:], nil
	}

	return path, nil
}
