package tasksync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

// AddTask mirrors the task into the calendar, stores it and arms its reminder.
// A calendar that yields no event id leaves the task without a reference.
func (e *Engine) AddTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	task := in.Task(e.now())
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	if id, ok := e.calendar.CreateEvent(ctx, task.Label, task.StartAt, task.EndAt, task.Recurrence); ok && id != "" {
		task.CalendarEventID = &id
	} else {
		e.logger.Printf("warning: task %q saved without calendar event", task.Label)
	}

	id, err := e.store.InsertTask(ctx, task)
	if err != nil {
		if task.HasCalendarEvent() && !e.calendar.DeleteEvent(ctx, *task.CalendarEventID) {
			e.logger.Printf("warning: orphaned calendar event %s for unsaved task %q", *task.CalendarEventID, task.Label)
		}
		return model.Task{}, critical("add task", err)
	}
	task.ID = id

	if err := e.reminders.Schedule(ctx, task.ID, task.Label, task.GoldReward, task.StartAt); err != nil {
		e.logger.Printf("warning: schedule reminder for task %d: %v", task.ID, err)
	}
	return task, nil
}

// UpdateTask replaces the stored task and re-arms its reminder. The completion
// flag and the calendar reference are owned by the engine: a task that tries
// to change either is rejected.
func (e *Engine) UpdateTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	unlock := e.locks.lock(taskLockKey(task.ID))
	defer unlock()

	stored, err := e.Task(ctx, task.ID)
	if err != nil {
		return err
	}
	if task.Completed != stored.Completed {
		return ErrCompletionChange
	}
	if !sameEventRef(task.CalendarEventID, stored.CalendarEventID) {
		return ErrCalendarRefChange
	}

	if err := e.store.UpdateTask(ctx, task); err != nil {
		return critical("update task", err)
	}

	if task.Completed {
		if err := e.reminders.Cancel(ctx, task.ID); err != nil {
			e.logger.Printf("warning: cancel reminder for task %d: %v", task.ID, err)
		}
		return nil
	}
	if err := e.reminders.Schedule(ctx, task.ID, task.Label, task.GoldReward, task.StartAt); err != nil {
		e.logger.Printf("warning: reschedule reminder for task %d: %v", task.ID, err)
	}
	return nil
}

// DeleteTask removes the calendar event and reminder, then the task itself.
func (e *Engine) DeleteTask(ctx context.Context, task model.Task) error {
	unlock := e.locks.lock(taskLockKey(task.ID))
	defer unlock()

	if task.HasCalendarEvent() && !e.calendar.DeleteEvent(ctx, *task.CalendarEventID) {
		e.logger.Printf("warning: calendar event %s for task %d not deleted", *task.CalendarEventID, task.ID)
	}
	if err := e.reminders.Cancel(ctx, task.ID); err != nil {
		e.logger.Printf("warning: cancel reminder for task %d: %v", task.ID, err)
	}
	if err := e.store.DeleteTask(ctx, task.ID); err != nil {
		return critical("delete task", err)
	}
	return nil
}

// Task loads a single task. A missing task yields storage.ErrNotFound.
func (e *Engine) Task(ctx context.Context, id int64) (model.Task, error) {
	task, err := e.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, fmt.Errorf("task %d: %w", id, err)
		}
		return model.Task{}, critical("load task", err)
	}
	return task, nil
}

func (e *Engine) ListTasks(ctx context.Context, filter storage.TaskListFilter) ([]model.Task, error) {
	tasks, err := e.store.ListTasks(ctx, filter)
	if err != nil {
		return nil, critical("list tasks", err)
	}
	return tasks, nil
}

func sameEventRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
