package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/reward"
	"github.com/sandeepkv93/taskquest/internal/storage"
	"github.com/sandeepkv93/taskquest/internal/tasksync"
)

const whenLayout = "Mon 02 Jan 15:04"

var _ Backend = (*tasksync.Engine)(nil)

// operation is a backend call started from a key press or the palette.
type operation struct {
	label string
	run   func(ctx context.Context) (string, error)
}

func listen[T any](sub *storage.Subscription[T], wrap func(T) tea.Msg) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-sub.C()
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

func (m Model) runOp(op operation) tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		res := <-tasksync.Async(ctx, op.run)
		return opResultMsg{Text: res.Value, Err: res.Err}
	}
}

func addOp(b Backend, in model.NewTask) operation {
	return operation{
		label: "adding quest: " + in.Title,
		run: func(ctx context.Context) (string, error) {
			task, err := b.AddTask(ctx, in)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("added quest #%d %s", task.ID, task.Label), nil
		},
	}
}

func completeOp(b Backend, task model.Task) operation {
	return operation{
		label: "completing quest: " + task.Label,
		run: func(ctx context.Context) (string, error) {
			p, err := b.CompleteTaskAndSync(ctx, task)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("quest complete: +%d exp +%d gold (level %d)", task.ExpReward, task.GoldReward, p.Level), nil
		},
	}
}

// completeByIDOp reloads the task so the palette can act on ids not on screen.
func completeByIDOp(b Backend, id int64) operation {
	return operation{
		label: fmt.Sprintf("completing quest #%d", id),
		run: func(ctx context.Context) (string, error) {
			task, err := b.Task(ctx, id)
			if err != nil {
				return "", err
			}
			return completeOp(b, task).run(ctx)
		},
	}
}

func deleteOp(b Backend, task model.Task) operation {
	return operation{
		label: "deleting quest: " + task.Label,
		run: func(ctx context.Context) (string, error) {
			if err := b.DeleteTask(ctx, task); err != nil {
				return "", err
			}
			return fmt.Sprintf("deleted quest #%d", task.ID), nil
		},
	}
}

func deleteByIDOp(b Backend, id int64) operation {
	return operation{
		label: fmt.Sprintf("deleting quest #%d", id),
		run: func(ctx context.Context) (string, error) {
			task, err := b.Task(ctx, id)
			if err != nil {
				return "", err
			}
			return deleteOp(b, task).run(ctx)
		},
	}
}

func purchaseOp(b Backend, itemID int64) operation {
	return operation{
		label: fmt.Sprintf("buying reward #%d", itemID),
		run: func(ctx context.Context) (string, error) {
			p, item, err := b.PurchaseReward(ctx, itemID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("bought %s, %d gold left", item.Title, p.Gold), nil
		},
	}
}

func advanceOp(b Backend, id int64) operation {
	return operation{
		label: fmt.Sprintf("advancing milestone #%d", id),
		run: func(ctx context.Context) (string, error) {
			ms, err := b.AdvanceMilestone(ctx, id)
			if err != nil {
				return "", err
			}
			if ms.Done() {
				return fmt.Sprintf("milestone reached: %s", ms.Title), nil
			}
			return fmt.Sprintf("%s: %d/%d", ms.Title, ms.Progress, ms.Target), nil
		},
	}
}

func renameOp(b Backend, name string) operation {
	return operation{
		label: "renaming hero",
		run: func(ctx context.Context) (string, error) {
			p, err := b.RenameProfile(ctx, name)
			if err != nil {
				return "", err
			}
			return "hero renamed to " + p.Name, nil
		},
	}
}

func addRewardOp(b Backend, title string, cost int) operation {
	return operation{
		label: "adding reward: " + title,
		run: func(ctx context.Context) (string, error) {
			item, err := b.AddReward(ctx, title, cost)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("added reward #%d %s (%d gold)", item.ID, item.Title, item.Cost), nil
		},
	}
}

func addMilestoneOp(b Backend, title string, target int) operation {
	return operation{
		label: "adding milestone: " + title,
		run: func(ctx context.Context) (string, error) {
			ms, err := b.AddMilestone(ctx, title, target)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("added milestone #%d %s (0/%d)", ms.ID, ms.Title, ms.Target), nil
		},
	}
}

func errorText(err error) string {
	var gold *reward.InsufficientGoldError
	switch {
	case errors.As(err, &gold):
		return fmt.Sprintf("not enough gold: have %d, need %d", gold.Balance, gold.Cost)
	case errors.Is(err, tasksync.ErrAlreadyCompleted):
		return "quest already completed"
	case errors.Is(err, storage.ErrNotFound):
		return "not found"
	case tasksync.IsCritical(err):
		return "could not save: " + err.Error()
	}
	return err.Error()
}

func taskRows(tasks []model.Task) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, task := range tasks {
		label := task.Label
		if task.Recurrence != "" {
			label += " ↻"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", task.ID),
			formatWhen(task.StartAt),
			label,
			fmt.Sprintf("+%dg", task.GoldReward),
		})
	}
	return rows
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(whenLayout)
}
