package tasksync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

func (e *Engine) Rewards(ctx context.Context) ([]model.RewardItem, error) {
	items, err := e.store.ListRewards(ctx)
	if err != nil {
		return nil, critical("list rewards", err)
	}
	return items, nil
}

// EnsureDefaultRewards seeds the default catalog into an empty shop.
func (e *Engine) EnsureDefaultRewards(ctx context.Context) (bool, error) {
	seeded, err := e.store.SeedRewards(ctx, model.DefaultRewardCatalog())
	if err != nil {
		return false, critical("seed rewards", err)
	}
	return seeded, nil
}

func (e *Engine) AddReward(ctx context.Context, title string, cost int) (model.RewardItem, error) {
	item := model.RewardItem{Title: strings.TrimSpace(title), Cost: cost}
	if err := item.Validate(); err != nil {
		return model.RewardItem{}, err
	}
	id, err := e.store.InsertReward(ctx, item)
	if err != nil {
		return model.RewardItem{}, critical("add reward", err)
	}
	item.ID = id
	return item, nil
}

func (e *Engine) DeleteReward(ctx context.Context, id int64) error {
	if err := e.store.DeleteReward(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("reward %d: %w", id, err)
		}
		return critical("delete reward", err)
	}
	return nil
}

// PurchaseReward debits the item's cost from the profile. An insufficient
// balance returns *reward.InsufficientGoldError and leaves the profile as is.
func (e *Engine) PurchaseReward(ctx context.Context, itemID int64) (model.Profile, model.RewardItem, error) {
	item, err := e.store.GetReward(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Profile{}, model.RewardItem{}, fmt.Errorf("reward %d: %w", itemID, err)
		}
		return model.Profile{}, model.RewardItem{}, critical("purchase reward", err)
	}

	unlock := e.locks.lock(profileLockKey)
	defer unlock()

	p, err := e.store.GetProfile(ctx)
	if err != nil {
		return model.Profile{}, item, critical("purchase reward", err)
	}
	left, err := reward.Purchase(p.Gold, item.Cost)
	if err != nil {
		return p, item, err
	}
	p.Gold = left
	if err := e.store.PutProfile(ctx, p); err != nil {
		return model.Profile{}, item, critical("purchase reward", err)
	}
	return p, item, nil
}
