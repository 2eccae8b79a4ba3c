package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/config"
	"github.com/five82/curio/internal/logging"
	"github.com/five82/curio/internal/prefs"
	"github.com/five82/curio/internal/router"
	"github.com/five82/curio/internal/state"
	"github.com/five82/curio/internal/ui"
)

// Options configure the curio application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/curio/prefs.toml
	LogLevel   string // overrides log_level from the config when set
	StartPath  string // initial route; empty opens home
	Resume     bool   // start from the last visited path

	// LogWriter sends logs to w instead of the configured log file.
	LogWriter io.Writer
}

// App holds the wired dependencies shared by the TUI and the CLI commands.
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Client    *api.Client
	Store     *state.Store
	Router    *router.Router
	Prefs     prefs.Prefs
	PrefsPath string
}

// Build loads configuration and constructs every dependency.
func Build(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		level = v
	}

	var logger *logging.Logger
	if opts.LogWriter != nil {
		logger = logging.NewWriter(opts.LogWriter, level)
	} else {
		logger, err = logging.New(cfg.LogPath, level)
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
	}

	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithLogger(logger.Logger),
	)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", prefsPath, "error", err)
	}

	store := state.New(client, state.WithLogger(logger.Logger))

	logger.Debug("curio configured",
		"api_url", client.BaseURL(),
		"base_path", cfg.BasePath,
		"timeout", cfg.RequestTimeout,
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Store:     store,
		Router:    router.New(cfg.BasePath),
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
	}, nil
}

// Close releases the log file.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Logger.Close()
}

// StartPath picks the initial route for the TUI.
func (a *App) StartPath(opts Options) string {
	if p := strings.TrimSpace(opts.StartPath); p != "" {
		return p
	}
	if opts.Resume && a.Prefs.LastPath != "" {
		return a.Prefs.LastPath
	}
	return a.Router.HomePath()
}

// Run boots the curio TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	a, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	a.Logger.Info("curio starting", "api_url", a.Client.BaseURL(), "log_path", a.Logger.Path())

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     a.Store,
		Router:    a.Router,
		Config:    a.Config,
		Logger:    a.Logger.Logger,
		Levels:    a.Logger,
		Prefs:     a.Prefs,
		PrefsPath: a.PrefsPath,
		LogPath:   a.Logger.Path(),
		StartPath: a.StartPath(opts),
	})
	if err != nil {
		a.Logger.Error("ui exited with error", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	a.Logger.Info("curio stopped")
	return nil
}
