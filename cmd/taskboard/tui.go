package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/update"
	"github.com/spf13/cobra"
)

// runTUI starts the interactive board. Logs go to the configured log file
// only, so they never draw over the screen.
func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := loadConfig(flags, cmd)
	if err != nil {
		return err
	}
	queue := notify.NewQueue(cfg.NotificationBuffer)
	a, err := newApp(ctx, cfg, func(logger *log.Logger) notify.Sink {
		return notify.Multi{queue, notify.LogSink{Logger: logger}}
	}, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	// Resume before the program starts so the first notifications queue up.
	if err := a.reminders.Resume(ctx); err != nil {
		a.logger.Warn("resume reminders", "err", err)
	}

	m := update.NewModel(update.Deps{
		Context:       ctx,
		Board:         a.board,
		Reminders:     a.reminders,
		Notifications: queue.C(),
		Logger:        a.logger,
		Now:           time.Now,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("taskboard failed: %w", err)
	}
	if dropped := queue.Dropped(); dropped > 0 {
		a.logger.Warn("notifications dropped", "count", dropped)
	}
	return nil
}
