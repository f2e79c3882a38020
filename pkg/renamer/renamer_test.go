package renamer

import (
	"testing"
	"time"
)

func TestApply_Date(t *testing.T) {
	now := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	existing := make(map[string]bool)

	got := Apply("{date}", "photo.jpg", now, existing)

	if got != "2026-08-23_10-30-00.jpg" {
		t.Errorf("Apply() = %q, want 2026-08-23_10-30-00.jpg", got)
	}
}

func TestApply_Clean(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		filename string
		expected string
	}{
		{"Résumé Draft.pdf", "resume_draft.pdf"},
		{"My File (final).txt", "my_file_final.txt"},
		{"already-clean.md", "already-clean.md"},
		{"数据 report.csv", "_report.csv"},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			existing := make(map[string]bool)
			got := Apply("{clean}", tc.filename, now, existing)
			if got != tc.expected {
				t.Errorf("Apply({clean}, %q) = %q, want %q", tc.filename, got, tc.expected)
			}
		})
	}
}

func TestApply_Lower(t *testing.T) {
	existing := make(map[string]bool)

	got := Apply("{lower}", "REPORT.PDF", time.Now(), existing)

	if got != "report.PDF" {
		t.Errorf("Apply() = %q, want report.PDF", got)
	}
}

func TestApply_UniquenessCounter(t *testing.T) {
	now := time.Now()
	existing := map[string]bool{
		"report.pdf":   true,
		"report_1.pdf": true,
	}

	got := Apply("{lower}", "Report.pdf", now, existing)

	// report.pdf 和 report_1.pdf 都已存在，序列递增到 _2
	if got != "report_2.pdf" {
		t.Errorf("Apply() = %q, want report_2.pdf", got)
	}

	if !existing["report_2.pdf"] {
		t.Error("生成的名字应该加入唯一性集合")
	}
}

func TestApply_CombinedPattern(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	existing := make(map[string]bool)

	got := Apply("{date}_{clean}", "Old Photo.png", now, existing)

	if got != "2026-08-23_00-00-00_old_photo.png" {
		t.Errorf("Apply() = %q", got)
	}
}

func TestClean(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Café au Lait", "cafe_au_lait"},
		{"hello_world-2", "hello_world-2"},
		{"a!b@c#d", "abcd"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Clean(tc.input); got != tc.expected {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
