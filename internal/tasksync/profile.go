package tasksync

import (
	"context"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/model"
)

func (e *Engine) Profile(ctx context.Context) (model.Profile, error) {
	p, err := e.store.GetProfile(ctx)
	if err != nil {
		return model.Profile{}, critical("read profile", err)
	}
	return p, nil
}

func (e *Engine) RenameProfile(ctx context.Context, name string) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, model.ErrEmptyName
	}
	unlock := e.locks.lock(profileLockKey)
	defer unlock()

	p, err := e.store.GetProfile(ctx)
	if err != nil {
		return model.Profile{}, critical("rename profile", err)
	}
	p.Name = name
	if err := e.store.PutProfile(ctx, p); err != nil {
		return model.Profile{}, critical("rename profile", err)
	}
	return p, nil
}
