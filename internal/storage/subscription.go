package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/sandeepkv93/taskquest/internal/model"
)

// Subscription streams snapshots of a query. The current snapshot is sent
// first, then a fresh one after every committed write to a watched table. A
// consumer that falls behind only sees the newest snapshot.
type Subscription[T any] struct {
	out    chan T
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// C is closed once the subscription is cancelled.
func (s *Subscription[T]) C() <-chan T {
	return s.out
}

// Cancel stops the subscription and waits until no further value can be sent.
func (s *Subscription[T]) Cancel() {
	s.cancel()
	<-s.done
}

// Err returns the most recent query failure, if any.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func watch[T any](ctx context.Context, h *hub, tables []table, query func(context.Context) (T, error)) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		out:    make(chan T),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	dirty := make(chan struct{}, 1)
	dirty <- struct{}{}
	id := h.add(tables, cancel, func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(s.done)
		defer close(s.out)
		defer h.remove(id)

		for {
			select {
			case <-ctx.Done():
				return
			case <-dirty:
			}
			if ctx.Err() != nil {
				return
			}
			v, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.setErr(err)
				continue
			}
			s.setErr(nil)

		deliver:
			for {
				select {
				case <-ctx.Done():
					return
				case s.out <- v:
					break deliver
				case <-dirty:
					// A newer write landed before the consumer took v.
					next, err := query(ctx)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						s.setErr(err)
						continue
					}
					v = next
				}
			}
		}
	}()
	return s
}

type listener struct {
	tables []table
	cancel context.CancelFunc
	signal func()
}

type hub struct {
	mu        sync.Mutex
	next      int
	listeners map[int]listener
}

func newHub() *hub {
	return &hub{listeners: make(map[int]listener)}
}

func (h *hub) add(tables []table, cancel context.CancelFunc, signal func()) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.listeners[h.next] = listener{tables: tables, cancel: cancel, signal: signal}
	return h.next
}

func (h *hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
}

func (h *hub) notify(t table) {
	h.mu.Lock()
	signals := make([]func(), 0, len(h.listeners))
	for _, l := range h.listeners {
		if slices.Contains(l.tables, t) {
			signals = append(signals, l.signal)
		}
	}
	h.mu.Unlock()
	for _, signal := range signals {
		signal()
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(h.listeners))
	for _, l := range h.listeners {
		cancels = append(cancels, l.cancel)
	}
	h.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func (r *SQLiteRepository) ActiveTasks(ctx context.Context) *Subscription[[]model.Task] {
	return watch(ctx, r.hub, []table{tableTasks}, func(ctx context.Context) ([]model.Task, error) {
		return r.ListTasks(ctx, ActiveFilter())
	})
}

func (r *SQLiteRepository) CompletedTasks(ctx context.Context) *Subscription[[]model.Task] {
	return watch(ctx, r.hub, []table{tableTasks}, func(ctx context.Context) ([]model.Task, error) {
		return r.ListTasks(ctx, CompletedFilter())
	})
}

func (r *SQLiteRepository) CompletedCount(ctx context.Context) *Subscription[int] {
	return watch(ctx, r.hub, []table{tableTasks}, func(ctx context.Context) (int, error) {
		return r.CountTasks(ctx, CompletedFilter())
	})
}

func (r *SQLiteRepository) Profile(ctx context.Context) *Subscription[model.Profile] {
	return watch(ctx, r.hub, []table{tableProfile}, r.GetProfile)
}

func (r *SQLiteRepository) Rewards(ctx context.Context) *Subscription[[]model.RewardItem] {
	return watch(ctx, r.hub, []table{tableRewards}, r.ListRewards)
}

func (r *SQLiteRepository) Milestones(ctx context.Context) *Subscription[[]model.Milestone] {
	return watch(ctx, r.hub, []table{tableMilestones}, r.ListMilestones)
}
