package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

type memJobs struct {
	mu   sync.Mutex
	jobs map[string]model.ReminderJob
	fail error
}

func newMemJobs() *memJobs {
	return &memJobs{jobs: make(map[string]model.ReminderJob)}
}

func (m *memJobs) UpsertReminderJob(_ context.Context, job model.ReminderJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.jobs[job.Key] = job
	return nil
}

func (m *memJobs) GetReminderJob(_ context.Context, key string) (model.ReminderJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[key]
	if !ok {
		return model.ReminderJob{}, storage.ErrNotFound
	}
	return job, nil
}

func (m *memJobs) DeleteReminderJob(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, key)
	return nil
}

func (m *memJobs) ListReminderJobs(context.Context) ([]model.ReminderJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ReminderJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out, nil
}

func (m *memJobs) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

type memTimers struct {
	mu      sync.Mutex
	pending map[string]scheduler.Event
}

func newMemTimers() *memTimers {
	return &memTimers{pending: make(map[string]scheduler.Event)}
}

func (m *memTimers) Schedule(ev scheduler.Event) error {
	if ev.TriggerAt.IsZero() {
		return errors.New("zero trigger")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[ev.Key] = ev
	return nil
}

func (m *memTimers) Cancel(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[key]
	delete(m.pending, key)
	return ok
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}
