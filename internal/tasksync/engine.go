// Package tasksync coordinates the task store with the calendar and the
// reminder scheduler. The store is authoritative: its failures abort an
// operation. Calendar and reminder failures are logged and never fail the
// caller.
package tasksync

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/sandeepkv93/taskquest/internal/calendar"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

// Reminders arms and cancels the per-task reminder.
type Reminders interface {
	Schedule(ctx context.Context, taskID int64, title string, rewardGold int, start time.Time) error
	Cancel(ctx context.Context, taskID int64) error
}

// Engine serializes task, profile, shop and milestone operations over the store.
type Engine struct {
	store     storage.Repository
	calendar  calendar.Gateway
	reminders Reminders
	logger    *log.Logger
	now       func() time.Time
	locks     *keyedMutex
}

// New returns an Engine. A nil calendar, reminders or logger is replaced by a no-op.
func New(store storage.Repository, cal calendar.Gateway, reminders Reminders, logger *log.Logger) *Engine {
	if cal == nil {
		cal = calendar.Disabled{}
	}
	if reminders == nil {
		reminders = noReminders{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		store:     store,
		calendar:  cal,
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
		locks:     newKeyedMutex(),
	}
}

func (e *Engine) ActiveTasks(ctx context.Context) *storage.Subscription[[]model.Task] {
	return e.store.ActiveTasks(ctx)
}

func (e *Engine) CompletedTasks(ctx context.Context) *storage.Subscription[[]model.Task] {
	return e.store.CompletedTasks(ctx)
}

func (e *Engine) CompletedCount(ctx context.Context) *storage.Subscription[int] {
	return e.store.CompletedCount(ctx)
}

func (e *Engine) ProfileUpdates(ctx context.Context) *storage.Subscription[model.Profile] {
	return e.store.Profile(ctx)
}

func (e *Engine) RewardUpdates(ctx context.Context) *storage.Subscription[[]model.RewardItem] {
	return e.store.Rewards(ctx)
}

func (e *Engine) MilestoneUpdates(ctx context.Context) *storage.Subscription[[]model.Milestone] {
	return e.store.Milestones(ctx)
}

type noReminders struct{}

func (noReminders) Schedule(context.Context, int64, string, int, time.Time) error { return nil }

func (noReminders) Cancel(context.Context, int64) error { return nil }
