package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/shorts-cli/shorts/internal/config"
	"github.com/shorts-cli/shorts/internal/elevate"
	"github.com/shorts-cli/shorts/internal/fs"
	"github.com/shorts-cli/shorts/internal/registry"
	"github.com/shorts-cli/shorts/internal/shortcut"
	"github.com/shorts-cli/shorts/internal/store"
)

var (
	// version is set via ldflags during build: -ldflags "-X github.com/shorts-cli/shorts/internal/cli.version=v1.0.0"
	version = "v0.0.0"
)

func init() {
	if !semver.IsValid(version) {
		panic(fmt.Sprintf("invalid version set via ldflags: %q (must be valid semver)", version))
	}
}

// app represents the CLI application with its dependencies.
type app struct {
	fs          fs.System
	config      *config.Config
	configPath  string
	configStore *config.Store
	logger      *log.Logger

	cfgFile string
	verbose bool

	// discover finds the elevation broker. Replaced in tests.
	discover func(cfg config.BrokerConfig) (elevate.Broker, error)
	// ask prompts the user for a yes/no answer. Replaced in tests.
	ask func(message string) (bool, error)
}

// newApp creates a new app instance.
func newApp() *app {
	fsys := fs.New()
	return &app{
		fs:          fsys,
		configStore: config.NewStore(fsys),
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "shorts"}),
		discover:    discoverBroker,
		ask:         askConfirm,
	}
}

func discoverBroker(cfg config.BrokerConfig) (elevate.Broker, error) {
	return elevate.Discover(cfg.Args, cfg.Candidates(elevate.DefaultCandidates)...)
}

// newStore creates a store.Store for the configured shortcut directory.
func (a *app) newStore() (*store.Store, error) {
	opts, err := a.config.StoreOptions(a.fs, a.logger)
	if err != nil {
		return nil, err
	}

	// A missing broker only matters once a write needs one.
	var broker elevate.Broker
	if b, err := a.discover(a.config.Broker); err != nil {
		a.logger.Debug("no elevation broker", "err", err)
	} else {
		broker = b
	}

	return store.New(a.fs, broker, opts), nil
}

// newSession creates a registry.Session over a new store. yes answers
// every prompt.
func (a *app) newSession(yes bool) (*registry.Session, *store.Store, error) {
	st, err := a.newStore()
	if err != nil {
		return nil, nil, err
	}
	session := registry.New(st, a.confirmer(yes), registry.Options{
		Composer:     shortcut.Composer{Interpreter: a.config.Interpreter},
		StrictSyntax: a.config.StrictSyntax,
		Logger:       a.logger,
	})
	return session, st, nil
}

// newRootCmd creates the root command for shorts.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shorts",
		Short: "Command-line shortcut manager",
		Long: `Shorts turns long commands into short named executables.

Each shortcut is a small script in a protected directory (default /usr/local/bin).
Saving into that directory asks for your password through pkexec or sudo.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.configStore.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.config = cfg
			a.configPath = path

			a.logger.SetLevel(cfg.Level())
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
			a.logger.Debug("loaded config", "path", path, "dir", cfg.ShortcutDir)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file path (default ~/.config/shorts/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newSaveCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// Execute runs the CLI application.
func Execute() {
	a := newApp()
	rootCmd := newRootCmd(a)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
