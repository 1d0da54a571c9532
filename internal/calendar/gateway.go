// Package calendar mirrors tasks into an external calendar. Every operation is
// best-effort: failures are logged and reported as a false/empty result.
package calendar

import (
	"context"
	"time"
)

type Gateway interface {
	// CreateEvent returns the new event id, or ok=false when nothing was created.
	CreateEvent(ctx context.Context, title string, start, end time.Time, rrule string) (id string, ok bool)
	DeleteEvent(ctx context.Context, id string) bool
	RenameEvent(ctx context.Context, id, title string) bool
}

// Disabled is the gateway used when no calendar is configured.
type Disabled struct{}

func (Disabled) CreateEvent(context.Context, string, time.Time, time.Time, string) (string, bool) {
	return "", false
}

func (Disabled) DeleteEvent(context.Context, string) bool { return false }

func (Disabled) RenameEvent(context.Context, string, string) bool { return false }
