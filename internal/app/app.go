// Package app assembles the store, calendar, reminder pipeline and sync
// engine from a resolved configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/calendar"
	"github.com/sandeepkv93/taskquest/internal/config"
	"github.com/sandeepkv93/taskquest/internal/permission"
	"github.com/sandeepkv93/taskquest/internal/reminder"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/storage"
	"github.com/sandeepkv93/taskquest/internal/tasksync"
)

type App struct {
	Config    config.Runtime
	Store     *storage.SQLiteRepository
	Perms     *permission.Static
	Calendar  calendar.Gateway
	Timers    *scheduler.Engine
	Reminders *reminder.Scheduler
	Engine    *tasksync.Engine

	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// Open starts the reminder pipeline and returns a ready engine. Extra
// notifiers receive every reminder alongside the configured one. Persisted
// reminders stay disarmed until RestoreReminders.
func Open(ctx context.Context, cfg config.Runtime, logger *log.Logger, notifiers ...reminder.Notifier) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	perms := permission.NewStatic()
	perms.Set(permission.Calendar, cfg.CalendarEnabled)
	perms.Set(permission.Notifications, cfg.NotificationsEnabled)

	var cal calendar.Gateway = calendar.Disabled{}
	if cfg.CalendarEnabled {
		cal = calendar.NewFileGateway(cfg.CalendarPath, perms, logger)
	}

	timers := scheduler.NewEngine(cfg.SchedulerBuffer)
	timers.Start()
	reminders := reminder.NewScheduler(store, timers, logger)

	var base reminder.Notifier = reminder.LogNotifier{Logger: logger}
	if cfg.DesktopNotifications {
		base = reminder.ExecNotifier{}
	}
	fanout := append(reminder.Multi{base}, notifiers...)
	dispatcher := reminder.NewDispatcher(timers.C(), store, perms, fanout, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	a := &App{
		Config:    cfg,
		Store:     store,
		Perms:     perms,
		Calendar:  cal,
		Timers:    timers,
		Reminders: reminders,
		Engine:    tasksync.New(store, cal, reminders, logger),
		logger:    logger,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go func() {
		defer close(a.done)
		dispatcher.Run(runCtx)
	}()

	if _, err := a.Engine.EnsureDefaultRewards(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed rewards: %w", err)
	}
	if name := strings.TrimSpace(cfg.UserName); name != "" {
		if err := a.applyUserName(ctx, name); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) applyUserName(ctx context.Context, name string) error {
	p, err := a.Engine.Profile(ctx)
	if err != nil {
		return err
	}
	if p.Name == name {
		return nil
	}
	_, err = a.Engine.RenameProfile(ctx, name)
	return err
}

// RestoreReminders re-arms persisted reminders for a long-running session.
// Short CLI invocations skip it so past-due reminders wait for the next one.
func (a *App) RestoreReminders(ctx context.Context) int {
	n, err := a.Reminders.Restore(ctx)
	if err != nil {
		a.logger.Printf("warning: restore reminders: %v", err)
		return 0
	}
	if n > 0 {
		a.logger.Printf("restored %d reminder(s)", n)
	}
	return n
}

// Close stops reminder delivery and closes the store.
func (a *App) Close() error {
	a.cancel()
	<-a.done
	a.Timers.Stop()
	return a.Store.Close()
}

// OpenLog returns a logger appending to path. An empty path discards output.
func OpenLog(path string) (*log.Logger, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "taskquest ", log.LstdFlags), f, nil
}
