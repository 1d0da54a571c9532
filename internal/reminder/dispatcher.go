package reminder

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/sandeepkv93/taskquest/internal/permission"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

// Dispatcher turns due timer events into notifications.
type Dispatcher struct {
	events   <-chan scheduler.Event
	jobs     JobStore
	perms    permission.Checker
	notifier Notifier
	logger   *log.Logger
}

func NewDispatcher(events <-chan scheduler.Event, jobs JobStore, perms permission.Checker, notifier Notifier, logger *log.Logger) *Dispatcher {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{events: events, jobs: jobs, perms: perms, notifier: notifier, logger: logger}
}

// Run delivers events until ctx is cancelled or the event channel closes.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.events:
			if !ok {
				return
			}
			_, _ = d.Fire(ctx, ev)
		}
	}
}

// Fire handles one due event and reports whether a notification was sent.
// Missing permission is not an error.
func (d *Dispatcher) Fire(ctx context.Context, ev scheduler.Event) (bool, error) {
	job, err := d.jobs.GetReminderJob(ctx, ev.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		d.logger.Printf("warning: load reminder %s: %v", ev.Key, err)
		return false, err
	}
	if job.FireAt.After(ev.TriggerAt) {
		// Rescheduled after this event left the queue.
		return false, nil
	}
	if err := d.jobs.DeleteReminderJob(ctx, job.Key); err != nil {
		d.logger.Printf("warning: delete fired reminder %s: %v", job.Key, err)
	}
	if d.perms == nil || !d.perms.Granted(ctx, permission.Notifications) {
		return false, nil
	}
	if err := d.notifier.Send(ctx, QuestStarted(job.Title, job.RewardGold)); err != nil {
		d.logger.Printf("warning: notify reminder %s: %v", job.Key, err)
		return false, err
	}
	return true, nil
}
