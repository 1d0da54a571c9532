package reminder

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/permission"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

func TestFireSendsNotificationAndConsumesJob(t *testing.T) {
	jobs := newMemJobs()
	fireAt := time.Date(2026, 2, 9, 8, 59, 0, 0, time.UTC)
	_ = jobs.UpsertReminderJob(t.Context(), model.ReminderJob{Key: "reminder_1", TaskID: 1, Title: "Stand-up", RewardGold: 50, FireAt: fireAt})
	notifier := &recordingNotifier{}
	d := NewDispatcher(nil, jobs, permission.NewStatic(permission.Notifications), notifier, nil)

	sent, err := d.Fire(t.Context(), scheduler.Event{Key: "reminder_1", TaskID: 1, TriggerAt: fireAt})
	if err != nil || !sent {
		t.Fatalf("expected notification, sent=%v err=%v", sent, err)
	}
	if notifier.sent[0].Title != "New quest started" || notifier.sent[0].Body != `Task "Stand-up" starts now. Reward: 50 gold` {
		t.Fatalf("unexpected notification: %+v", notifier.sent[0])
	}
	if jobs.len() != 0 {
		t.Fatal("expected fired job to be removed")
	}
}

func TestFireWithoutPermissionIsSilent(t *testing.T) {
	jobs := newMemJobs()
	fireAt := time.Date(2026, 2, 9, 8, 59, 0, 0, time.UTC)
	_ = jobs.UpsertReminderJob(t.Context(), model.ReminderJob{Key: "reminder_2", TaskID: 2, Title: "x", FireAt: fireAt})
	notifier := &recordingNotifier{}
	d := NewDispatcher(nil, jobs, permission.NewStatic(), notifier, nil)

	sent, err := d.Fire(t.Context(), scheduler.Event{Key: "reminder_2", TaskID: 2, TriggerAt: fireAt})
	if err != nil || sent {
		t.Fatalf("expected silent success, sent=%v err=%v", sent, err)
	}
	if notifier.count() != 0 || jobs.len() != 0 {
		t.Fatalf("expected no notification and consumed job, sent=%d jobs=%d", notifier.count(), jobs.len())
	}
}

func TestFireIgnoresCancelledAndRescheduledJobs(t *testing.T) {
	jobs := newMemJobs()
	fireAt := time.Date(2026, 2, 9, 8, 59, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	d := NewDispatcher(nil, jobs, permission.NewStatic(permission.Notifications), notifier, nil)

	if sent, err := d.Fire(t.Context(), scheduler.Event{Key: "reminder_3", TriggerAt: fireAt}); sent || err != nil {
		t.Fatalf("expected cancelled job to be ignored, sent=%v err=%v", sent, err)
	}

	_ = jobs.UpsertReminderJob(t.Context(), model.ReminderJob{Key: "reminder_4", TaskID: 4, Title: "x", FireAt: fireAt.Add(time.Hour)})
	if sent, err := d.Fire(t.Context(), scheduler.Event{Key: "reminder_4", TriggerAt: fireAt}); sent || err != nil {
		t.Fatalf("expected stale event to be ignored, sent=%v err=%v", sent, err)
	}
	if jobs.len() != 1 {
		t.Fatal("rescheduled job must stay pending")
	}
}

func TestFireLogsNotifierFailure(t *testing.T) {
	jobs := newMemJobs()
	fireAt := time.Date(2026, 2, 9, 8, 59, 0, 0, time.UTC)
	_ = jobs.UpsertReminderJob(t.Context(), model.ReminderJob{Key: "reminder_5", TaskID: 5, Title: "x", FireAt: fireAt})
	var logs bytes.Buffer
	notifier := &recordingNotifier{err: errors.New("no display")}
	d := NewDispatcher(nil, jobs, permission.NewStatic(permission.Notifications), notifier, log.New(&logs, "", 0))

	if _, err := d.Fire(t.Context(), scheduler.Event{Key: "reminder_5", TriggerAt: fireAt}); err == nil {
		t.Fatal("expected notifier error")
	}
	if !strings.Contains(logs.String(), "warning: notify reminder reminder_5") {
		t.Fatalf("expected warning log, got %q", logs.String())
	}
}

func TestEndToEndReminderDelivery(t *testing.T) {
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "reminders.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	engine := scheduler.NewEngine(8)
	engine.Start()
	defer engine.Stop()

	s := NewScheduler(repo, engine, nil)
	now := time.Now()
	s.now = func() time.Time { return now.Add(-time.Minute) }

	notifier := &recordingNotifier{}
	d := NewDispatcher(engine.C(), repo, permission.NewStatic(permission.Notifications), notifier, nil)
	go d.Run(t.Context())

	// fireAt = start - 60s lands 50ms from now.
	if err := s.Schedule(t.Context(), 11, "Deploy", 50, now.Add(time.Minute+50*time.Millisecond)); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for notifier.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("reminder was not delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
	jobs, err := repo.ListReminderJobs(t.Context())
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected delivered job to be removed, got %+v", jobs)
	}
}
