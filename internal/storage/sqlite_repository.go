package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db  *sql.DB
	hub *hub
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db, hub: newHub()}, nil
}

// OpenSQLite opens (creating if missing) and migrates the database at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps per-connection pragmas in force and serializes writers.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	r.hub.closeAll()
	return r.db.Close()
}

func (r *SQLiteRepository) InsertTask(ctx context.Context, in model.Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (label, start_at, end_at, recurrence, completed, calendar_event_id, exp_reward, gold_reward, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Label, mustTime(in.StartAt), mustTime(in.EndAt), in.Recurrence, boolInt(in.Completed),
		nullString(in.CalendarEventID), in.ExpReward, in.GoldReward, mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(tableTasks)
	return id, nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, label, start_at, end_at, recurrence, completed, calendar_event_id, exp_reward, gold_reward, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces every mutable column of the stored task.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET label = ?, start_at = ?, end_at = ?, recurrence = ?, completed = ?, calendar_event_id = ?, exp_reward = ?, gold_reward = ?
		WHERE id = ?`,
		in.Label, mustTime(in.StartAt), mustTime(in.EndAt), in.Recurrence, boolInt(in.Completed),
		nullString(in.CalendarEventID), in.ExpReward, in.GoldReward, in.ID,
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	r.hub.notify(tableTasks)
	return nil
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	r.hub.notify(tableTasks)
	return nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, label, start_at, end_at, recurrence, completed, calendar_event_id, exp_reward, gold_reward, created_at FROM tasks`
	args := make([]any, 0, 3)
	order := ` ORDER BY start_at ASC, id ASC`
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
		if *filter.Completed {
			order = ` ORDER BY start_at DESC, id DESC`
		}
	}
	query += order
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountTasks(ctx context.Context, filter TaskListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM tasks`
	args := make([]any, 0, 1)
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetProfile returns the stored profile, or the default one when none was saved yet.
func (r *SQLiteRepository) GetProfile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT level, experience, gold, name FROM profile WHERE key = ?`, model.ProfileKey,
	).Scan(&out.Level, &out.Experience, &out.Gold, &out.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultProfile(), nil
		}
		return model.Profile{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) PutProfile(ctx context.Context, p model.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return model.ErrEmptyName
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (key, level, experience, gold, name) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET level = excluded.level, experience = excluded.experience,
			gold = excluded.gold, name = excluded.name`,
		model.ProfileKey, p.Level, p.Experience, p.Gold, p.Name,
	)
	if err != nil {
		return err
	}
	r.hub.notify(tableProfile)
	return nil
}

func (r *SQLiteRepository) InsertReward(ctx context.Context, in model.RewardItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO reward_items (title, cost) VALUES (?, ?)`, in.Title, in.Cost)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(tableRewards)
	return id, nil
}

func (r *SQLiteRepository) GetReward(ctx context.Context, id int64) (model.RewardItem, error) {
	var out model.RewardItem
	err := r.db.QueryRowContext(ctx, `SELECT id, title, cost FROM reward_items WHERE id = ?`, id).
		Scan(&out.ID, &out.Title, &out.Cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RewardItem{}, ErrNotFound
		}
		return model.RewardItem{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteReward(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reward_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	r.hub.notify(tableRewards)
	return nil
}

func (r *SQLiteRepository) ListRewards(ctx context.Context) ([]model.RewardItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, cost FROM reward_items ORDER BY cost ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RewardItem, 0)
	for rows.Next() {
		var item model.RewardItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Cost); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// SeedRewards inserts items only when the shop is empty. It reports whether
// anything was inserted.
func (r *SQLiteRepository) SeedRewards(ctx context.Context, items []model.RewardItem) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reward_items`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 || len(items) == 0 {
		return false, nil
	}
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO reward_items (title, cost) VALUES (?, ?)`, item.Title, item.Cost); err != nil {
			return false, fmt.Errorf("seed reward %q: %w", item.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	r.hub.notify(tableRewards)
	return true, nil
}

func (r *SQLiteRepository) InsertMilestone(ctx context.Context, in model.Milestone) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO milestones (title, progress, target) VALUES (?, ?, ?)`,
		in.Title, in.Progress, in.Target)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.hub.notify(tableMilestones)
	return id, nil
}

func (r *SQLiteRepository) GetMilestone(ctx context.Context, id int64) (model.Milestone, error) {
	var out model.Milestone
	err := r.db.QueryRowContext(ctx, `SELECT id, title, progress, target FROM milestones WHERE id = ?`, id).
		Scan(&out.ID, &out.Title, &out.Progress, &out.Target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Milestone{}, ErrNotFound
		}
		return model.Milestone{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateMilestone(ctx context.Context, in model.Milestone) error {
	res, err := r.db.ExecContext(ctx, `UPDATE milestones SET title = ?, progress = ?, target = ? WHERE id = ?`,
		in.Title, in.Progress, in.Target, in.ID)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	r.hub.notify(tableMilestones)
	return nil
}

func (r *SQLiteRepository) DeleteMilestone(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	r.hub.notify(tableMilestones)
	return nil
}

func (r *SQLiteRepository) ListMilestones(ctx context.Context) ([]model.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, progress, target FROM milestones ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Milestone, 0)
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.Title, &m.Progress, &m.Target); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpsertReminderJob(ctx context.Context, job model.ReminderJob) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_jobs (key, task_id, title, reward_gold, fire_at, created_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET task_id = excluded.task_id, title = excluded.title,
			reward_gold = excluded.reward_gold, fire_at = excluded.fire_at, created_at = excluded.created_at`,
		job.Key, job.TaskID, job.Title, job.RewardGold, mustTime(job.FireAt), mustTime(job.CreatedAt),
	)
	if err != nil {
		return err
	}
	r.hub.notify(tableReminderJobs)
	return nil
}

func (r *SQLiteRepository) GetReminderJob(ctx context.Context, key string) (model.ReminderJob, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, task_id, title, reward_gold, fire_at, created_at FROM reminder_jobs WHERE key = ?`, key)
	job, err := scanReminderJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ReminderJob{}, ErrNotFound
		}
		return model.ReminderJob{}, err
	}
	return job, nil
}

// DeleteReminderJob is idempotent: deleting an absent key is not an error.
func (r *SQLiteRepository) DeleteReminderJob(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminder_jobs WHERE key = ?`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.hub.notify(tableReminderJobs)
	}
	return nil
}

func (r *SQLiteRepository) ListReminderJobs(ctx context.Context) ([]model.ReminderJob, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, task_id, title, reward_gold, fire_at, created_at FROM reminder_jobs ORDER BY fire_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ReminderJob, 0)
	for rows.Next() {
		job, scanErr := scanReminderJob(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var start, end, created string
	var completed int
	var eventID sql.NullString
	if err := s.Scan(&out.ID, &out.Label, &start, &end, &out.Recurrence, &completed, &eventID, &out.ExpReward, &out.GoldReward, &created); err != nil {
		return model.Task{}, err
	}
	startAt, err := parseRequiredTime(start)
	if err != nil {
		return model.Task{}, err
	}
	endAt, err := parseRequiredTime(end)
	if err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Task{}, err
	}
	out.StartAt = startAt
	out.EndAt = endAt
	out.CreatedAt = createdAt
	out.Completed = completed == 1
	if eventID.Valid && eventID.String != "" {
		id := eventID.String
		out.CalendarEventID = &id
	}
	return out, nil
}

func scanReminderJob(s scanner) (model.ReminderJob, error) {
	var out model.ReminderJob
	var fire, created string
	if err := s.Scan(&out.Key, &out.TaskID, &out.Title, &out.RewardGold, &fire, &created); err != nil {
		return model.ReminderJob{}, err
	}
	fireAt, err := parseRequiredTime(fire)
	if err != nil {
		return model.ReminderJob{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.ReminderJob{}, err
	}
	out.FireAt = fireAt
	out.CreatedAt = createdAt
	return out, nil
}

func nullString(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
