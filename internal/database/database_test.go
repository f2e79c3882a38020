package database

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDatabase_InsertAndRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	now := time.Now()
	records := []*RunRecord{
		{Directory: "/data/a", Mode: "organize", Moved: 3, Skipped: 1, TotalBytes: 1024, StartedAt: now.Add(-2 * time.Minute), FinishedAt: now.Add(-2 * time.Minute)},
		{Directory: "/data/b", Mode: "organize", Moved: 5, StartedAt: now.Add(-time.Minute), FinishedAt: now.Add(-time.Minute)},
		{Directory: "/data/a", Mode: "undo", Moved: 3, StartedAt: now, FinishedAt: now},
	}

	for _, rec := range records {
		if err := db.Insert(rec); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if rec.ID == "" {
			t.Error("Insert() 应该自动生成 ID")
		}
	}

	all, err := db.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}

	// 按开始时间倒序
	if all[0].Mode != "undo" {
		t.Errorf("Expected newest record first, got mode %s", all[0].Mode)
	}

	forA, err := db.Recent("/data/a", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(forA) != 2 {
		t.Errorf("Expected 2 records for /data/a, got %d", len(forA))
	}
}

func TestDatabase_RecentLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	for i := 0; i < 5; i++ {
		rec := &RunRecord{
			Directory:  "/data",
			Mode:       "organize",
			StartedAt:  time.Now().Add(time.Duration(i) * time.Second),
			FinishedAt: time.Now(),
		}
		if err := db.Insert(rec); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	records, err := db.Recent("/data", 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}
