package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/reminders"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/spf13/cobra"
)

// app is one process worth of wiring: config, logger, storage, the board and
// the reminder service sharing a single store.
type app struct {
	cfg       config.RuntimeConfig
	logger    *log.Logger
	kv        storage.KV
	store     *store.Store
	board     *board.Board
	reminders *reminders.Service
	engine    *scheduler.Engine
	closers   []io.Closer
}

// newApp wires everything around the sink built by sinkFor. logFallback
// receives log lines when no log file is configured.
func newApp(ctx context.Context, cfg config.RuntimeConfig, sinkFor func(*log.Logger) notify.Sink, logFallback io.Writer) (*app, error) {
	logger, logCloser, err := logging.Open(cfg.LogPath, logFallback, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	kv, kvCloser, err := storage.Open(storage.Backend(cfg.Backend), cfg.DataPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	a.kv = kv
	a.closers = append(a.closers, kvCloser)
	logger.Debug("storage opened", "backend", cfg.Backend, "path", cfg.DataPath)

	sinks := notify.Multi{sinkFor(logger)}
	if cfg.DesktopNotifications {
		sinks = append(sinks, notify.NewDesktop(logger))
	}

	a.store = store.New(storage.Slot{KV: kv, Key: store.StorageKey}, logger)
	a.store.Load(ctx)
	a.board = board.New(a.store, sinks, board.WithLogger(logger))
	a.engine = scheduler.NewEngine()
	a.reminders = reminders.NewService(a.store, sinks, a.engine,
		reminders.WithInterval(cfg.ReminderInterval),
		reminders.WithLogger(logger),
	)
	return a, nil
}

func (a *app) Close() error {
	if a.engine != nil {
		a.reminders.Shutdown()
		a.engine.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadConfig layers CLI flags over config.Load.
func loadConfig(flags *globalFlags, cmd *cobra.Command) (config.RuntimeConfig, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	pf := cmd.Flags()
	if pf.Changed("backend") {
		if !pf.Changed("data") && cfg.DataPath == config.DefaultDataPath(cfg.Backend) {
			cfg.DataPath = config.DefaultDataPath(flags.backend)
		}
		cfg.Backend = flags.backend
	}
	if pf.Changed("data") {
		cfg.DataPath = flags.dataPath
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Finalize(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

// printSink writes notifications for one-shot CLI commands.
func printSink(w io.Writer) notify.Sink {
	return notify.Func(func(n notify.Notification) {
		if n.Body == "" {
			fmt.Fprintln(w, n.Title)
			return
		}
		fmt.Fprintf(w, "%s: %s\n", n.Title, n.Body)
	})
}

// openCLI wires an app for a one-shot command: notifications print to stdout
// and logs go to stderr unless a log file is configured.
func openCLI(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(flags, cmd)
	if err != nil {
		return nil, err
	}
	out := printSink(cmd.OutOrStdout())
	return newApp(cmd.Context(), cfg, func(*log.Logger) notify.Sink { return out }, cmd.ErrOrStderr())
}
