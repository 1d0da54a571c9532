package tasksync

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

var errBoom = errors.New("boom")

type fakeCalendar struct {
	mu       sync.Mutex
	nextID   string
	createOK bool
	deleteOK bool
	renameOK bool
	created  []string
	deleted  []string
	renamed  map[string]string
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{nextID: "evt-1", createOK: true, deleteOK: true, renameOK: true, renamed: map[string]string{}}
}

func (f *fakeCalendar) CreateEvent(_ context.Context, title string, _, _ time.Time, _ string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, title)
	if !f.createOK {
		return "", false
	}
	return f.nextID, true
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteOK
}

func (f *fakeCalendar) RenameEvent(_ context.Context, id, title string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renamed[id] = title
	return f.renameOK
}

type fakeReminders struct {
	mu        sync.Mutex
	scheduled map[int64]time.Time
	cancelled []int64
	fail      error
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{scheduled: map[int64]time.Time{}}
}

func (f *fakeReminders) Schedule(_ context.Context, taskID int64, _ string, _ int, start time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.scheduled[taskID] = start
	return nil
}

func (f *fakeReminders) Cancel(_ context.Context, taskID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, taskID)
	delete(f.scheduled, taskID)
	return f.fail
}

// flakyStore wraps a real repository and fails selected writes.
type flakyStore struct {
	storage.Repository
	failInsert     bool
	failPutProfile bool
	failUpdate     bool
}

func (s *flakyStore) InsertTask(ctx context.Context, in model.Task) (int64, error) {
	if s.failInsert {
		return 0, errBoom
	}
	return s.Repository.InsertTask(ctx, in)
}

func (s *flakyStore) PutProfile(ctx context.Context, p model.Profile) error {
	if s.failPutProfile {
		return errBoom
	}
	return s.Repository.PutProfile(ctx, p)
}

func (s *flakyStore) UpdateTask(ctx context.Context, in model.Task) error {
	if s.failUpdate {
		return errBoom
	}
	return s.Repository.UpdateTask(ctx, in)
}

type harness struct {
	engine    *Engine
	store     *flakyStore
	calendar  *fakeCalendar
	reminders *fakeReminders
	logs      *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "tasksync.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	h := &harness{
		store:     &flakyStore{Repository: repo},
		calendar:  newFakeCalendar(),
		reminders: newFakeReminders(),
		logs:      &bytes.Buffer{},
	}
	h.engine = New(h.store, h.calendar, h.reminders, log.New(h.logs, "", 0))
	h.engine.now = func() time.Time { return time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC) }
	return h
}

func (h *harness) add(t *testing.T, title string) model.Task {
	t.Helper()
	task, err := h.engine.AddTask(t.Context(), model.NewTask{
		Title: title,
		Start: time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	return task
}
