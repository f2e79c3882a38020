package organizer

import (
	"bytes"
	"fmt"
	"sort"
)

// CategoryStat 单个分类的文件数和字节数
type CategoryStat struct {
	Count int
	Bytes int64
}

// Stats 一次整理运行的统计信息，仅在内存中存在
type Stats struct {
	Considered int
	Moved      int
	Skipped    int
	TotalBytes int64
	Categories map[string]*CategoryStat
}

func NewStats() *Stats {
	return &Stats{Categories: make(map[string]*CategoryStat)}
}

func (s *Stats) record(category string, size int64) {
	s.Moved++
	s.TotalBytes += size

	stat, ok := s.Categories[category]
	if !ok {
		stat = &CategoryStat{}
		s.Categories[category] = stat
	}
	stat.Count++
	stat.Bytes += size
}

func (s *Stats) String() string {
	var buf bytes.Buffer

	buf.WriteString("========== 整理统计 ==========\n")
	buf.WriteString(fmt.Sprintf("扫描文件数: %d\n", s.Considered))
	buf.WriteString(fmt.Sprintf("已移动: %d\n", s.Moved))
	buf.WriteString(fmt.Sprintf("已跳过: %d\n", s.Skipped))
	buf.WriteString(fmt.Sprintf("移动总大小: %s\n", FormatBytes(s.TotalBytes)))

	if len(s.Categories) > 0 {
		buf.WriteString("分类明细:\n")
		names := make([]string, 0, len(s.Categories))
		for name := range s.Categories {
			names = append(names, name)
		}
		// 按文件数降序排列，数量相同时按名称排序
		sort.Slice(names, func(i, j int) bool {
			a, b := s.Categories[names[i]], s.Categories[names[j]]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			stat := s.Categories[name]
			buf.WriteString(fmt.Sprintf("  %s: %d 个文件 (%s)\n", name, stat.Count, FormatBytes(stat.Bytes)))
		}
	}

	buf.WriteString("============================")

	return buf.String()
}

// FormatBytes 把字节数格式化为人类可读的大小
func FormatBytes(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", value)
}
