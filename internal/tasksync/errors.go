package tasksync

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCompleted = errors.New("tasksync: task already completed")
	// ErrCompletionChange rejects an update that flips the completion flag.
	// Tasks become completed only through CompleteTaskAndSync.
	ErrCompletionChange  = errors.New("tasksync: completion state cannot be changed by update")
	ErrCalendarRefChange = errors.New("tasksync: calendar reference cannot be changed by update")
)

// CriticalError reports a failure on the authoritative store path. The
// operation did not take effect.
type CriticalError struct {
	Op  string
	Err error
}

func (e *CriticalError) Error() string {
	return fmt.Sprintf("tasksync: %s: %v", e.Op, e.Err)
}

func (e *CriticalError) Unwrap() error {
	return e.Err
}

func critical(op string, err error) error {
	return &CriticalError{Op: op, Err: err}
}

// IsCritical reports whether err carries a CriticalError.
func IsCritical(err error) bool {
	var ce *CriticalError
	return errors.As(err, &ce)
}
