package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReminderLead is how long before a task's start its reminder fires.
const ReminderLead = 60 * time.Second

const reminderKeyPrefix = "reminder_"

var ErrInvalidReminderKey = errors.New("model: invalid reminder key")

// ReminderJob is a pending one-shot reminder. At most one exists per task.
type ReminderJob struct {
	Key        string
	TaskID     int64
	Title      string
	RewardGold int
	FireAt     time.Time
	CreatedAt  time.Time
}

// ReminderKey is the unique job key for a task.
func ReminderKey(taskID int64) string {
	return reminderKeyPrefix + strconv.FormatInt(taskID, 10)
}

// TaskIDFromReminderKey is the inverse of ReminderKey.
func TaskIDFromReminderKey(key string) (int64, error) {
	raw, ok := strings.CutPrefix(key, reminderKeyPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReminderKey, key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReminderKey, key)
	}
	return id, nil
}

// ReminderFireTime is the fire time for a task starting at start.
func ReminderFireTime(start time.Time) time.Time {
	return start.Add(-ReminderLead)
}

func (r ReminderJob) Validate() error {
	if r.TaskID <= 0 {
		return errors.New("model: reminder task id is required")
	}
	if r.Key != ReminderKey(r.TaskID) {
		return fmt.Errorf("%w: %q", ErrInvalidReminderKey, r.Key)
	}
	if r.FireAt.IsZero() {
		return errors.New("model: reminder fire time is required")
	}
	return nil
}
