package tasksync

import (
	"context"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
)

// CompleteTaskAndSync grants the task's rewards and marks it completed, then
// cancels its reminder and tags its calendar event. The stored task is
// reloaded first: completing an already completed task returns
// ErrAlreadyCompleted and grants nothing. If the task cannot be marked
// completed the prior profile is written back, so a retry grants once.
func (e *Engine) CompleteTaskAndSync(ctx context.Context, task model.Task) (model.Profile, error) {
	unlockTask := e.locks.lock(taskLockKey(task.ID))
	defer unlockTask()

	current, err := e.Task(ctx, task.ID)
	if err != nil {
		return model.Profile{}, err
	}
	if current.Completed {
		return model.Profile{}, ErrAlreadyCompleted
	}

	unlockProfile := e.locks.lock(profileLockKey)
	profile, err := e.store.GetProfile(ctx)
	if err != nil {
		unlockProfile()
		return model.Profile{}, critical("complete task: read profile", err)
	}
	updated := reward.Apply(profile, current.ExpReward, current.GoldReward)
	if err := e.store.PutProfile(ctx, updated); err != nil {
		unlockProfile()
		return model.Profile{}, critical("complete task: save profile", err)
	}

	current.Completed = true
	if err := e.store.UpdateTask(ctx, current); err != nil {
		if rbErr := e.store.PutProfile(ctx, profile); rbErr != nil {
			e.logger.Printf("error: restore profile after failed completion of task %d: %v", current.ID, rbErr)
		}
		unlockProfile()
		return model.Profile{}, critical("complete task: mark completed", err)
	}
	unlockProfile()

	if err := e.reminders.Cancel(ctx, current.ID); err != nil {
		e.logger.Printf("warning: cancel reminder for task %d: %v", current.ID, err)
	}
	if current.HasCalendarEvent() {
		if title, ok := current.CompletedTitle(); ok && !e.calendar.RenameEvent(ctx, *current.CalendarEventID, title) {
			e.logger.Printf("warning: calendar event %s for task %d not renamed", *current.CalendarEventID, current.ID)
		}
	}
	return updated, nil
}
