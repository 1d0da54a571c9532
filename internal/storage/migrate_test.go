package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up must be a no-op: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	id, err := repo.InsertTask(t.Context(), model.Task{
		Label:      "Roundtrip task",
		StartAt:    now,
		EndAt:      now.Add(time.Hour),
		ExpReward:  10,
		GoldReward: 50,
		CreatedAt:  now,
	})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTask(t.Context(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Label != "Roundtrip task" {
		t.Fatalf("unexpected label after roundtrip: %q", got.Label)
	}
}

func TestMigrateRecordsVersions(t *testing.T) {
	db, err := sql.Open(DriverName, filepath.Join(t.TempDir(), "versions.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	applied, err := appliedVersions(db)
	if err != nil {
		t.Fatalf("applied versions: %v", err)
	}
	if !applied["001_init"] || len(applied) != 1 {
		t.Fatalf("unexpected applied versions: %v", applied)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	applied, err = appliedVersions(db)
	if err != nil {
		t.Fatalf("applied versions after down: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected no applied versions after down, got %v", applied)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&n); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if n != 0 {
		t.Fatal("expected tasks table dropped")
	}
}
