package tasksync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

func (e *Engine) Milestones(ctx context.Context) ([]model.Milestone, error) {
	list, err := e.store.ListMilestones(ctx)
	if err != nil {
		return nil, critical("list milestones", err)
	}
	return list, nil
}

// AddMilestone creates a milestone; a zero target means the default.
func (e *Engine) AddMilestone(ctx context.Context, title string, target int) (model.Milestone, error) {
	if target == 0 {
		target = model.DefaultMilestoneTarget
	}
	m := model.Milestone{Title: strings.TrimSpace(title), Target: target}
	if err := m.Validate(); err != nil {
		return model.Milestone{}, err
	}
	id, err := e.store.InsertMilestone(ctx, m)
	if err != nil {
		return model.Milestone{}, critical("add milestone", err)
	}
	m.ID = id
	return m, nil
}

// AdvanceMilestone records one step of progress, capped at the target.
func (e *Engine) AdvanceMilestone(ctx context.Context, id int64) (model.Milestone, error) {
	unlock := e.locks.lock(milestoneLockKey(id))
	defer unlock()

	m, err := e.store.GetMilestone(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Milestone{}, fmt.Errorf("milestone %d: %w", id, err)
		}
		return model.Milestone{}, critical("advance milestone", err)
	}
	if m.Done() {
		return m, nil
	}
	m.Progress++
	if err := e.store.UpdateMilestone(ctx, m); err != nil {
		return model.Milestone{}, critical("advance milestone", err)
	}
	return m, nil
}

func (e *Engine) DeleteMilestone(ctx context.Context, id int64) error {
	unlock := e.locks.lock(milestoneLockKey(id))
	defer unlock()

	if err := e.store.DeleteMilestone(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("milestone %d: %w", id, err)
		}
		return critical("delete milestone", err)
	}
	return nil
}
