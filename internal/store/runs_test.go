package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"notary-crawler/internal/domain"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndListRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	ns := []domain.Notary{
		{Name: "Jean Dupont", Mail: "jean@x.fr", Phone: "04 78 00 00 01", Website: "https://x.fr", Address: "1 place Bellecour"},
		{Name: "Marie Martin", Mail: "marie@y.fr"},
	}

	first, err := SaveRun(ctx, db.Pool, Run{StartedAt: start, FinishedAt: start.Add(time.Minute), City: "lyon", Pages: 11, Candidates: 3, Kept: 2, CSVPath: "notaries.csv"}, ns)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	second, err := SaveRun(ctx, db.Pool, Run{StartedAt: start.Add(time.Hour), FinishedAt: start.Add(time.Hour), City: "paris"}, nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := ListRuns(ctx, db.Pool, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second || runs[1].ID != first {
		t.Fatalf("runs = %+v", runs)
	}
	got := runs[1]
	if got.City != "lyon" || got.Pages != 11 || got.Candidates != 3 || got.Kept != 2 || got.CSVPath != "notaries.csv" {
		t.Fatalf("run = %+v", got)
	}
	if !got.StartedAt.Equal(start) || !got.FinishedAt.Equal(start.Add(time.Minute)) {
		t.Fatalf("times = %v %v", got.StartedAt, got.FinishedAt)
	}

	back, err := RunNotaries(ctx, db.Pool, first)
	if err != nil {
		t.Fatalf("RunNotaries: %v", err)
	}
	if len(back) != 2 || back[0] != ns[0] || back[1] != ns[1] {
		t.Fatalf("notaries = %+v", back)
	}
}

func TestRunNotariesUnknownRun(t *testing.T) {
	db := openTemp(t)
	if _, err := RunNotaries(context.Background(), db.Pool, 42); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	_ = db.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	var v int
	if err := again.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil || v != 1 {
		t.Fatalf("user_version = %d, %v", v, err)
	}
}

func TestCleanupOldRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	old := time.Now().Add(-60 * 24 * time.Hour)
	oldID, err := SaveRun(ctx, db.Pool, Run{StartedAt: old, FinishedAt: old, City: "lyon"}, []domain.Notary{{Name: "A"}})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := SaveRun(ctx, db.Pool, Run{StartedAt: time.Now(), FinishedAt: time.Now(), City: "lyon"}, nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	n, err := CleanupOldRuns(ctx, db.Pool, 30*24*time.Hour)
	if err != nil || n != 1 {
		t.Fatalf("CleanupOldRuns = %d, %v", n, err)
	}
	if _, err := RunNotaries(ctx, db.Pool, oldID); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("old run still present: %v", err)
	}
	runs, _ := ListRuns(ctx, db.Pool, 0)
	if len(runs) != 1 {
		t.Fatalf("runs = %+v", runs)
	}
}
