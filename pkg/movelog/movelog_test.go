package movelog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestFileStore_Load_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(records) != 0 {
		t.Errorf("Expected empty records, got %d", len(records))
	}
}

func TestFileStore_Load_Corrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	if err := afero.WriteFile(fs, store.Path(), []byte("not json"), 0644); err != nil {
		t.Fatalf("创建日志文件失败: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestFileStore_Load_NotAnArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	if err := afero.WriteFile(fs, store.Path(), []byte(`{"timestamp": "x"}`), 0644); err != nil {
		t.Fatalf("创建日志文件失败: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestFileStore_Load_NonObjectEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	if err := afero.WriteFile(fs, store.Path(), []byte(`[{"timestamp": "x"}, "oops"]`), 0644); err != nil {
		t.Fatalf("创建日志文件失败: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestFileStore_Append(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	first := Record{Timestamp: "2026-01-02T15:04:05Z", Original: "/data/a.txt", New: "/data/Documents/a.txt"}
	second := Record{Timestamp: "2026-01-02T15:04:06Z", Original: "/data/b.jpg", New: "/data/Images/b.jpg"}

	if err := store.Append(first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// 记录保持追加顺序
	if records[0] != first {
		t.Errorf("records[0] = %+v, want %+v", records[0], first)
	}
	if records[1] != second {
		t.Errorf("records[1] = %+v, want %+v", records[1], second)
	}
}

func TestFileStore_Append_RecoversFromCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/data")

	if err := afero.WriteFile(fs, store.Path(), []byte("garbage{{{"), 0644); err != nil {
		t.Fatalf("创建日志文件失败: %v", err)
	}

	rec := Record{Timestamp: "2026-01-02T15:04:05Z", Original: "/data/a.txt", New: "/data/Documents/a.txt"}
	if err := store.Append(rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// 损坏的内容被丢弃，日志重新建立为单条记录的合法数组
	data, err := afero.ReadFile(fs, store.Path())
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}

	var parsed []Record
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("重建后的日志不是合法 JSON: %v", err)
	}

	if len(parsed) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(parsed))
	}

	if parsed[0] != rec {
		t.Errorf("parsed[0] = %+v, want %+v", parsed[0], rec)
	}
}
