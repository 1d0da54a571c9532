package storage

import (
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

func next[T any](t *testing.T, sub *Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-sub.C():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestActiveTasksEmitsAfterEachWrite(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	start := parseRFC3339(t, "2026-02-09T12:00:00Z")

	sub := repo.ActiveTasks(ctx)
	defer sub.Cancel()

	if got := next(t, sub); len(got) != 0 {
		t.Fatalf("expected empty initial snapshot, got %#v", got)
	}

	id, err := repo.InsertTask(ctx, newTask("Stretch", start))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got := next(t, sub)
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("unexpected snapshot after insert: %#v", got)
	}

	task := got[0]
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := next(t, sub); len(got) != 0 {
		t.Fatalf("expected completed task to leave the active view, got %#v", got)
	}
}

func TestSubscriptionDeliversLatestToSlowConsumer(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()

	sub := repo.Profile(ctx)
	defer sub.Cancel()

	p := model.DefaultProfile()
	for gold := 10; gold <= 50; gold += 10 {
		p.Gold = gold
		if err := repo.PutProfile(ctx, p); err != nil {
			t.Fatalf("put profile: %v", err)
		}
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-sub.C():
			if got.Gold == 50 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the latest profile")
		}
	}
}

func TestSubscriptionCancelClosesAndUnregisters(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()

	sub := repo.Rewards(ctx)
	_ = next(t, sub)
	if repo.hub.count() != 1 {
		t.Fatalf("expected one listener, got %d", repo.hub.count())
	}

	sub.Cancel()
	if _, ok := <-sub.C(); ok {
		t.Fatal("expected channel to be closed after cancel")
	}
	if repo.hub.count() != 0 {
		t.Fatalf("expected listener to be removed, got %d", repo.hub.count())
	}
	if _, err := repo.InsertReward(ctx, model.RewardItem{Title: "Nap", Cost: 20}); err != nil {
		t.Fatalf("insert after cancel: %v", err)
	}
	sub.Cancel()
}

func TestCompletedCountTracksTasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	start := parseRFC3339(t, "2026-02-09T12:00:00Z")

	sub := repo.CompletedCount(ctx)
	defer sub.Cancel()
	if n := next(t, sub); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}

	task := newTask("Run", start)
	task.Completed = true
	if _, err := repo.InsertTask(ctx, task); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n := next(t, sub); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	repo := setupRepo(t)
	sub := repo.Milestones(t.Context())
	_ = next(t, sub)
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case _, ok := <-sub.C():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed by repository close")
	}
}
