// Package cmd implements the datecalc command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/datecalc/internal/app"
	"github.com/zjrosen/datecalc/internal/cachemanager"
	"github.com/zjrosen/datecalc/internal/config"
	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/infrastructure/sqlite"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/querystore"
	"github.com/zjrosen/datecalc/internal/tracing"
	"github.com/zjrosen/datecalc/internal/ui/styles"
	"github.com/zjrosen/datecalc/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can race the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// localConfigPath is checked before the user config directory.
var localConfigPath = filepath.Join(".datecalc", "config.yaml")

// options carries the state shared by every subcommand.
type options struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	// cfgPath is the config file in use, where theme changes are saved.
	cfgPath string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "datecalc [query]",
		Short: "A terminal date range calculator",
		Long: `A terminal date range calculator.

Pick a start and an end date, or a start date and a duration, and datecalc
shows the span in days, weeks, months, years, hours, minutes and seconds.
The state lives in a location query string such as

  ?start=2024-01-01&months=2

which is kept in a history with back and forward navigation. Pass a query to
open it as a new history entry.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: ~/.config/datecalc/config.yaml)")
	cmd.PersistentFlags().String("db", "", "path to the history database")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write a debug log next to the config file")
	cmd.Flags().Bool("ephemeral", false, "keep history in memory only")
	cmd.Flags().Bool("no-watch", false, "do not follow history changes made by other processes")

	_ = opts.v.BindPFlag(config.Key("db_path"), cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(newOpenCmd(opts), newCalcCmd(opts), newHistoryCmd(opts))
	return cmd
}

// initConfig finds the config file, writing the default one when there is
// none, and loads it.
func (o *options) initConfig() error {
	path := o.cfgFile
	if path == "" {
		path = localConfigPath
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(config.Dir(), "config.yaml")
		}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.WriteDefaultConfig(path); err != nil {
			log.ErrorErr(log.CatConfig, "writing default config", err, "path", path)
		}
	}

	o.v.SetConfigFile(path)
	o.v.SetConfigType("yaml")
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		path = ""
	}
	o.cfgPath = path

	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// setupLogging installs the debug log when --debug or DATECALC_DEBUG asks
// for it.
func (o *options) setupLogging() (func(), error) {
	if !o.debug && !log.DebugFromEnv() {
		return func() {}, nil
	}
	dir := config.Dir()
	if o.cfgPath != "" {
		dir = filepath.Dir(o.cfgPath)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	o.debug = true
	return log.InitWithTeaLog(filepath.Join(dir, "debug.log"), "datecalc")
}

// openHistory opens the history database, or an in-memory history when
// ephemeral is set.
func (o *options) openHistory(ephemeral bool) (location.HistoryRepository, func(), error) {
	if ephemeral {
		return location.NewMemoryHistory(), func() {}, nil
	}
	db, err := sqlite.NewDB(o.cfg.ResolvedDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	return db.History(), func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing database", err)
		}
	}, nil
}

func runApp(cmd *cobra.Command, opts *options, args []string) error {
	closeLog, err := opts.setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := opts.cfg
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing.TracerConfig())
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
	}()

	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	repo, closeDB, err := opts.openHistory(ephemeral)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	router, err := location.NewRouter(ctx, repo, location.WithTracer(provider.Tracer()))
	if err != nil {
		return err
	}
	defer router.Close()

	if len(args) == 1 {
		q, err := location.Parse(args[0])
		if err != nil {
			return err
		}
		if err := router.Push(ctx, q); err != nil {
			return err
		}
	}

	var w *watcher.Watcher
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if cfg.Watch && !noWatch && !ephemeral {
		w, err = watcher.New(watcher.Config{DBPath: cfg.ResolvedDBPath(), Debounce: cfg.WatchDebounce})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "starting watcher", err)
			w = nil
		}
	}

	clock := daterange.RealClock{}
	store := querystore.New(daterange.Registry(clock), router, querystore.WithTracer(provider.Tracer()))
	cache := cachemanager.NewInMemoryCacheManager[string, daterange.Summary]("summary", cfg.Cache.TTL, cfg.Cache.CleanupInterval)

	zone.NewGlobal()
	model := app.New(app.Services{
		Store:      store,
		Router:     router,
		Summarizer: daterange.NewSummarizer(cache, cfg.Cache.TTL),
		Watcher:    w,
		Clock:      clock,
		Clipboard:  app.SystemClipboard{},
		Config:     cfg,
		ConfigPath: opts.cfgPath,
		Debug:      opts.debug,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	model.Close()
	store.Unmount()
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil {
			log.ErrorErr(log.CatWatcher, "stopping watcher", stopErr)
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
