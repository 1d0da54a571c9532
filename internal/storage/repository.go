package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/taskquest/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	InsertTask(ctx context.Context, in model.Task) (int64, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)
	CountTasks(ctx context.Context, filter TaskListFilter) (int, error)

	GetProfile(ctx context.Context) (model.Profile, error)
	PutProfile(ctx context.Context, p model.Profile) error

	InsertReward(ctx context.Context, in model.RewardItem) (int64, error)
	GetReward(ctx context.Context, id int64) (model.RewardItem, error)
	DeleteReward(ctx context.Context, id int64) error
	ListRewards(ctx context.Context) ([]model.RewardItem, error)
	SeedRewards(ctx context.Context, items []model.RewardItem) (bool, error)

	InsertMilestone(ctx context.Context, in model.Milestone) (int64, error)
	GetMilestone(ctx context.Context, id int64) (model.Milestone, error)
	UpdateMilestone(ctx context.Context, in model.Milestone) error
	DeleteMilestone(ctx context.Context, id int64) error
	ListMilestones(ctx context.Context) ([]model.Milestone, error)

	UpsertReminderJob(ctx context.Context, job model.ReminderJob) error
	GetReminderJob(ctx context.Context, key string) (model.ReminderJob, error)
	DeleteReminderJob(ctx context.Context, key string) error
	ListReminderJobs(ctx context.Context) ([]model.ReminderJob, error)

	ActiveTasks(ctx context.Context) *Subscription[[]model.Task]
	CompletedTasks(ctx context.Context) *Subscription[[]model.Task]
	CompletedCount(ctx context.Context) *Subscription[int]
	Profile(ctx context.Context) *Subscription[model.Profile]
	Rewards(ctx context.Context) *Subscription[[]model.RewardItem]
	Milestones(ctx context.Context) *Subscription[[]model.Milestone]
}

var _ Repository = (*SQLiteRepository)(nil)
