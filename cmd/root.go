package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parleychat/parley/internal/app"
	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/flags"
	"github.com/parleychat/parley/internal/history"
	"github.com/parleychat/parley/internal/infrastructure/sqlite"
	"github.com/parleychat/parley/internal/log"
	"github.com/parleychat/parley/internal/paths"
	"github.com/parleychat/parley/internal/settings"
	"github.com/parleychat/parley/internal/tags"
	"github.com/parleychat/parley/internal/tracing"
	"github.com/parleychat/parley/internal/ui/console"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "parley",
	Short:   "A terminal chat console with a tag registry",
	Long:    `A terminal chat console whose extension commands create, check, and list tags stored in a shared settings file.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/parley/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "",
		"directory for parley data (settings, history, traces)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log to the data directory")
	rootCmd.Flags().Bool("no-watch", false,
		"disable automatic settings reload when the file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("theme", defaults.Theme)
	viper.SetDefault("tags.matching", defaults.Tags.Matching)
	viper.SetDefault("tags.sort_unfiltered", defaults.Tags.SortUnfiltered)
	viper.SetDefault("tags.legacy_aliases", defaults.Tags.LegacyAliases)
	viper.SetDefault("settings.autosave_debounce_ms", defaults.Settings.AutosaveDebounceMs)
	viper.SetDefault("settings.auto_reload", defaults.Settings.AutoReload)
	viper.SetDefault("history.enabled", defaults.History.Enabled)
	viper.SetDefault("history.limit", defaults.History.Limit)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	for name, enabled := range defaults.Flags {
		viper.SetDefault("flags."+name, enabled)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .parley/config.yaml (current directory)
		// 2. ~/.config/parley/config.yaml (user config)
		if _, err := os.Stat(".parley/config.yaml"); err == nil {
			viper.SetConfigFile(".parley/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "parley"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .parley/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".parley/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dataDir := paths.ResolveDataDir(cfg.DataDir)
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Debug logging is opt-in; without the flag log calls are no-ops.
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cleanup, err := log.InitWithTeaLog(paths.LogPath(dataDir), "parley")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	provider, err := tracing.NewProvider(tracingConfig(cfg, dataDir))
	if err != nil {
		// Tracing is observability tooling; a broken exporter must not
		// keep the console from starting.
		log.ErrorErr(log.CatTrace, "Failed to initialize tracing, continuing without", err)
		provider, _ = tracing.NewProvider(tracing.Config{Enabled: false})
	}

	store := settings.New(paths.SettingsPath(dataDir),
		settings.WithDebounce(cfg.Settings.AutosaveDebounce()))
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	var hist *history.Service
	var db *sqlite.DB
	if cfg.History.Enabled {
		db, err = sqlite.NewDB(paths.HistoryDBPath(dataDir))
		if err != nil {
			log.ErrorErr(log.CatDB, "Failed to open history database, continuing without history", err)
		} else {
			hist = history.NewService(db.HistoryRepository(), cfg.History.Limit)
		}
	}

	registry, err := buildCommandRegistry(cfg, store, hist)
	if err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}

	con := console.New(console.Config{
		Registry: registry,
		History:  hist,
		Flags:    flags.New(cfg.Flags),
		Tracer:   provider.Tracer(),
		Store:    store,
		Theme:    cfg.Theme,
		Version:  version,
	})

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	model := app.New(app.Config{
		Console:    con,
		Store:      store,
		AutoReload: cfg.Settings.AutoReload && !noWatch,
	})

	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, runErr := p.Run()

	// Teardown order: stop the watcher and flush the pending save first,
	// then the history database, then the trace pipeline.
	if closeErr := model.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if db != nil {
		if closeErr := db.Close(); closeErr != nil && runErr == nil {
			runErr = closeErr
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := provider.Shutdown(shutdownCtx); shutdownErr != nil && runErr == nil {
		runErr = shutdownErr
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// buildCommandRegistry wires the host commands and the tag command set
// over the settings store.
func buildCommandRegistry(cfg config.Config, store *settings.Store, hist *history.Service) (*command.Registry, error) {
	registry := command.NewRegistry()

	if err := console.RegisterHostCommands(registry, hist); err != nil {
		return nil, err
	}

	tagRegistry := tags.New(store,
		tags.WithMatching(cfg.Tags.MatchingMode()),
		tags.WithSortedListing(cfg.Tags.SortUnfiltered))
	tags.NewCommandSet(tagRegistry,
		tags.WithLegacyAliases(cfg.Tags.LegacyAliases)).RegisterAll(registry)

	return registry, nil
}

// tracingConfig maps the file config onto the tracing subsystem, filling
// the default trace file path inside the data directory.
func tracingConfig(cfg config.Config, dataDir string) tracing.Config {
	filePath := cfg.Tracing.FilePath
	if filePath == "" {
		filePath = paths.TracesPath(dataDir)
	}
	return tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
