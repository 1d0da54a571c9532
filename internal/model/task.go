package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultExpReward  = 10
	DefaultGoldReward = 50

	// DefaultTaskDuration is used for the calendar event end when none is given.
	DefaultTaskDuration = time.Hour

	// CompletedMarker prefixes a calendar event title once its task is completed.
	CompletedMarker = "✅"
)

var (
	ErrEmptyLabel     = errors.New("model: task label is required")
	ErrNegativeReward = errors.New("model: task reward must not be negative")
	ErrInvalidWindow  = errors.New("model: task end must not be before start")
)

type TaskState string

const (
	TaskStateActive    TaskState = "Active"
	TaskStateCompleted TaskState = "Completed"
)

type Task struct {
	ID              int64
	Label           string
	StartAt         time.Time
	EndAt           time.Time
	Recurrence      string
	Completed       bool
	CalendarEventID *string
	ExpReward       int
	GoldReward      int
	CreatedAt       time.Time
}

func (t Task) State() TaskState {
	if t.Completed {
		return TaskStateCompleted
	}
	return TaskStateActive
}

// HasCalendarEvent reports whether the task carries an external calendar reference.
func (t Task) HasCalendarEvent() bool {
	return t.CalendarEventID != nil && strings.TrimSpace(*t.CalendarEventID) != ""
}

// CompletedTitle is the calendar title for a completed task, or false when the
// label already carries the marker.
func (t Task) CompletedTitle() (string, bool) {
	if strings.HasPrefix(t.Label, CompletedMarker) {
		return "", false
	}
	return CompletedMarker + " " + t.Label, true
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return ErrEmptyLabel
	}
	if t.ExpReward < 0 || t.GoldReward < 0 {
		return fmt.Errorf("%w: exp=%d gold=%d", ErrNegativeReward, t.ExpReward, t.GoldReward)
	}
	if !t.EndAt.IsZero() && t.EndAt.Before(t.StartAt) {
		return ErrInvalidWindow
	}
	if t.Recurrence != "" {
		if _, err := ParseRecurrence(t.Recurrence); err != nil {
			return err
		}
	}
	return nil
}

// NewTask is the creation intent for a task; the store assigns the identifier.
type NewTask struct {
	Title      string
	Start      time.Time
	End        time.Time
	Recurrence string
	ExpReward  *int
	GoldReward *int
}

// Task builds an unsaved task with defaults applied.
func (n NewTask) Task(now time.Time) Task {
	out := Task{
		Label:      strings.TrimSpace(n.Title),
		StartAt:    n.Start,
		EndAt:      n.End,
		Recurrence: strings.TrimSpace(n.Recurrence),
		ExpReward:  DefaultExpReward,
		GoldReward: DefaultGoldReward,
		CreatedAt:  now,
	}
	if out.StartAt.IsZero() {
		out.StartAt = now
	}
	if out.EndAt.IsZero() {
		out.EndAt = out.StartAt.Add(DefaultTaskDuration)
	}
	if n.ExpReward != nil {
		out.ExpReward = *n.ExpReward
	}
	if n.GoldReward != nil {
		out.GoldReward = *n.GoldReward
	}
	return out
}
