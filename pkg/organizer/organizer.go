package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal"
	"github.com/moyu-x/tidy-file/pkg/hasher"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/movelog"
	"github.com/moyu-x/tidy-file/pkg/prompt"
	"github.com/moyu-x/tidy-file/pkg/rules"
)

// Organizer 把目录中的文件按扩展名规则整理到分类子目录
// 只处理目录的直接子文件，不递归
type Organizer struct {
	Fs    afero.Fs
	Rules *rules.Rules
	Log   movelog.Store
	Retry prompt.RetryFunc

	// Sniff 为 true 时，扩展名未命中规则的文件会按内容探测类型
	Sniff bool
}

func New(fs afero.Fs, r *rules.Rules, log movelog.Store, retry prompt.RetryFunc) *Organizer {
	return &Organizer{Fs: fs, Rules: r, Log: log, Retry: retry}
}

// Organize 整理目录并返回统计信息
// dryRun 为 true 时只统计，不创建目录、不移动文件、不写日志
// 单个文件的失败只计入跳过数，不中断其余文件的处理
func (o *Organizer) Organize(dir string, dryRun bool) (*Stats, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("解析目录路径失败: %w", err)
	}

	info, err := o.Fs.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("目录 '%s' 不存在", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' 不是目录", dir)
	}

	entries, err := afero.ReadDir(o.Fs, absDir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	stats := NewStats()

	for _, entry := range entries {
		if entry.IsDir() || internal.Excluded(entry.Name()) {
			continue
		}
		stats.Considered++

		if err := o.processFile(absDir, entry, stats, dryRun); err != nil {
			logger.Get().Error().Err(err).Str("file", entry.Name()).Msg("处理文件失败")
			stats.Skipped++
		}
	}

	return stats, nil
}

func (o *Organizer) processFile(dir string, entry os.FileInfo, stats *Stats, dryRun bool) error {
	name := entry.Name()
	source := filepath.Join(dir, name)

	ext := strings.ToLower(filepath.Ext(name))
	category := o.Rules.Resolve(ext)
	if o.Sniff && category == internal.FallbackCategory {
		if sniffed := o.sniffCategory(source); sniffed != "" {
			logger.Get().Debug().Str("file", name).Str("category", sniffed).Msg("按内容探测到文件类型")
			category = sniffed
		}
	}

	targetDir := filepath.Join(dir, category)
	target := filepath.Join(targetDir, name)

	exists, err := afero.Exists(o.Fs, target)
	if err != nil {
		return err
	}
	if exists {
		o.reportCollision(source, target, category)
		stats.Skipped++
		return nil
	}

	size := entry.Size()

	if dryRun {
		logger.Get().Info().Msgf("[预览] 将移动 '%s' 到 '%s/'", name, category)
		stats.record(category, size)
		return nil
	}

	if !o.ensureDir(targetDir) {
		stats.Skipped++
		return nil
	}

	if !o.moveWithRetry(source, target, name) {
		stats.Skipped++
		return nil
	}

	// 移动已经落盘，日志写入失败只影响这一条记录的可撤销性，不回滚
	record := movelog.Record{
		Timestamp: time.Now().Format(time.RFC3339),
		Original:  source,
		New:       target,
	}
	if err := o.Log.Append(record); err != nil {
		logger.Get().Error().Err(err).Str("file", name).Msg("写入移动日志失败")
	}

	logger.Get().Info().Msgf("已移动 '%s' 到 '%s/'", name, category)
	stats.record(category, size)
	return nil
}

// ensureDir 创建分类目录，失败时询问是否重试
// 目录已存在视为成功；放弃重试返回 false
func (o *Organizer) ensureDir(path string) bool {
	for {
		err := o.Fs.MkdirAll(path, 0755)
		if err == nil {
			return true
		}
		logger.Get().Error().Err(err).Str("path", path).Msg("创建分类目录失败")
		if !o.Retry(fmt.Sprintf("无法创建目录 '%s'", path)) {
			return false
		}
	}
}

// moveWithRetry 移动文件，失败时询问是否重试
// 同卷的 rename 在操作系统层面是原子的，不会出现移动到一半的文件
func (o *Organizer) moveWithRetry(source, target, name string) bool {
	for {
		err := o.Fs.Rename(source, target)
		if err == nil {
			return true
		}
		logger.Get().Error().Err(err).Str("file", name).Msg("移动文件失败")
		if !o.Retry(fmt.Sprintf("无法移动 '%s'", name)) {
			return false
		}
	}
}

// reportCollision 报告目标位置冲突，并比较两个文件内容是否相同
func (o *Organizer) reportCollision(source, target, category string) {
	name := filepath.Base(source)

	same, err := hasher.Equal(o.Fs, source, target)
	if err != nil {
		logger.Get().Warn().Msgf("跳过 '%s' - '%s/' 中已存在同名文件", name, category)
		return
	}
	if same {
		logger.Get().Warn().Msgf("跳过 '%s' - '%s/' 中已存在内容相同的文件", name, category)
	} else {
		logger.Get().Warn().Msgf("跳过 '%s' - '%s/' 中已存在同名但内容不同的文件", name, category)
	}
}

// sniffCategory 读取文件头部探测类型，映射到默认分类名
// 探测失败或类型未知时返回空串，调用方保持原分类
func (o *Organizer) sniffCategory(path string) string {
	file, err := o.Fs.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	buffer := make([]byte, internal.FileHeaderSize)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return ""
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == types.Unknown {
		return ""
	}

	mime := kind.MIME.Value
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "Images"
	case strings.HasPrefix(mime, "video/"):
		return "Videos"
	case strings.HasPrefix(mime, "audio/"):
		return "Audio"
	}

	switch kind.Extension {
	case "pdf", "doc", "docx", "rtf", "odt", "epub", "mobi":
		return "Documents"
	case "zip", "tar", "gz", "bz2", "rar", "7z", "xz":
		return "Archives"
	case "xls", "xlsx", "ods":
		return "Spreadsheets"
	case "ppt", "pptx", "odp":
		return "Presentations"
	case "exe", "msi", "deb", "rpm", "dmg", "apk", "jar":
		return "Executables"
	}

	return ""
}
