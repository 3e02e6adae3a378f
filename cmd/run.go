package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/app"
	"github.com/ssmythe/tactics-manager/internal/config"
	"github.com/ssmythe/tactics-manager/internal/console"
	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/selector"
	"github.com/ssmythe/tactics-manager/internal/session"
	"github.com/ssmythe/tactics-manager/internal/store"
	"github.com/ssmythe/tactics-manager/internal/ui/theme"
)

// runtime bundles what a command needs: the resolved config, the opened
// store and the application built on top of it.
type runtime struct {
	cfg     config.Config
	logger  *log.Logger
	db      *store.Store // nil for the json backend
	events  store.EventRepo
	console *console.Console
	app     *app.App
}

// openRuntime resolves config, opens the configured store and builds the app.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  cfg.Level(),
		Prefix: "tactics",
	})

	rt := &runtime{cfg: cfg, logger: logger}

	var snapshots store.SnapshotRepo
	switch cfg.Backend {
	case config.BackendJSON:
		path, err := resolveFilePath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve data file: %w", err)
		}
		logger.Debug("using json backend", "path", path)
		snapshots = store.NewFileRepo(path)
	default:
		path, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		logger.Debug("using sqlite backend", "path", path)
		db, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.db = db
		rt.events = db.EventRepo()
		snapshots = db.SnapshotRepo()
	}

	out := cmd.OutOrStdout()
	rt.console = console.New(cmd.InOrStdin(), out, theme.Detect(cfg.Color, out))

	tracker := difficulty.NewTracker(cfg.Difficulty())
	rt.app = app.New(app.Options{
		Snapshots:    snapshots,
		Events:       rt.events,
		Selector:     selector.New(cfg.Selector()),
		Tracker:      tracker,
		Recorder:     session.NewRecorder(tracker, rt.events, cfg.Ladder.PuzzlesPerSession),
		Console:      rt.console,
		Logger:       logger,
		SnapshotKeep: cfg.SnapshotKeep,
	})
	return rt, nil
}

// Close releases the store.
func (rt *runtime) Close() error {
	if rt.db == nil {
		return nil
	}
	return rt.db.Close()
}

// resolveDBPath returns the database path using --db or TACTICS_DB
// (highest priority), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveFilePath returns the JSON data file path using --file or
// TACTICS_FILE, then the default XDG path.
func resolveFilePath(cfg config.Config) (string, error) {
	if cfg.FilePath != "" {
		return cfg.FilePath, store.EnsureDir(cfg.FilePath)
	}
	return store.DefaultFilePath()
}
