// Package reminder schedules one local notification per task, shortly before
// the task starts, and delivers it when due.
package reminder

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
)

type JobStore interface {
	UpsertReminderJob(ctx context.Context, job model.ReminderJob) error
	GetReminderJob(ctx context.Context, key string) (model.ReminderJob, error)
	DeleteReminderJob(ctx context.Context, key string) error
	ListReminderJobs(ctx context.Context) ([]model.ReminderJob, error)
}

type Timers interface {
	Schedule(ev scheduler.Event) error
	Cancel(key string) bool
}

type Scheduler struct {
	jobs   JobStore
	timers Timers
	logger *log.Logger
	now    func() time.Time
}

func NewScheduler(jobs JobStore, timers Timers, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scheduler{jobs: jobs, timers: timers, logger: logger, now: time.Now}
}

// Schedule arms the reminder for a task, replacing any pending one. A reminder
// whose fire time has already passed is skipped and the pending one dropped.
func (s *Scheduler) Schedule(ctx context.Context, taskID int64, title string, rewardGold int, start time.Time) error {
	now := s.now()
	fireAt := model.ReminderFireTime(start)
	if !fireAt.After(now) {
		s.logger.Printf("reminder for task %d skipped: fire time %s already passed", taskID, fireAt.Format(time.RFC3339))
		return s.Cancel(ctx, taskID)
	}
	job := model.ReminderJob{
		Key:        model.ReminderKey(taskID),
		TaskID:     taskID,
		Title:      title,
		RewardGold: rewardGold,
		FireAt:     fireAt,
		CreatedAt:  now,
	}
	if err := job.Validate(); err != nil {
		return err
	}
	if err := s.jobs.UpsertReminderJob(ctx, job); err != nil {
		return fmt.Errorf("persist reminder %s: %w", job.Key, err)
	}
	if err := s.timers.Schedule(scheduler.Event{Key: job.Key, TaskID: taskID, TriggerAt: fireAt}); err != nil {
		return fmt.Errorf("arm reminder %s: %w", job.Key, err)
	}
	return nil
}

// Cancel removes the pending reminder for a task. It is a no-op when none exists.
func (s *Scheduler) Cancel(ctx context.Context, taskID int64) error {
	key := model.ReminderKey(taskID)
	s.timers.Cancel(key)
	if err := s.jobs.DeleteReminderJob(ctx, key); err != nil {
		return fmt.Errorf("delete reminder %s: %w", key, err)
	}
	return nil
}

// Restore re-arms persisted jobs. Jobs already due fire immediately.
func (s *Scheduler) Restore(ctx context.Context) (int, error) {
	jobs, err := s.jobs.ListReminderJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reminders: %w", err)
	}
	n := 0
	for _, job := range jobs {
		if err := s.timers.Schedule(scheduler.Event{Key: job.Key, TaskID: job.TaskID, TriggerAt: job.FireAt}); err != nil {
			s.logger.Printf("warning: restore reminder %s: %v", job.Key, err)
			continue
		}
		n++
	}
	return n, nil
}
