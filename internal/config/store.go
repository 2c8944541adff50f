package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/shorts-cli/shorts/internal/fs"
)

// Store manages config file persistence.
type Store struct {
	fs fs.System
}

// NewStore creates a new Store.
func NewStore(fsys fs.System) *Store {
	return &Store{fs: fsys}
}

// Load loads the configuration from path, or the global config path when
// path is empty. A missing file yields the defaults. SHORTS_* environment
// variables override file values.
func (s *Store) Load(path string) (*Config, string, error) {
	var err error
	if path == "" {
		path, err = s.GlobalConfigPath()
	} else {
		path, err = ExpandPath(s.fs, path)
	}
	if err != nil {
		return nil, "", err
	}

	v := newViper()

	if s.fs.Exists(path) {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save saves the configuration to a specific path.
func (s *Store) Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := s.fs.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GlobalConfigPath returns the path to the global config file.
func (s *Store) GlobalConfigPath() (string, error) {
	return GlobalConfigPath(s.fs)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("shortcut_dir", defaults.ShortcutDir)
	v.SetDefault("interpreter", defaults.Interpreter)
	v.SetDefault("strict_syntax", defaults.StrictSyntax)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("broker.command", defaults.Broker.Command)
	v.SetDefault("broker.args", defaults.Broker.Args)
	v.SetDefault("broker.write_timeout", defaults.Broker.WriteTimeout)
	v.SetDefault("broker.dir_timeout", defaults.Broker.DirTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
