package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/renamer"
)

type RenameOptions struct {
	Directory string
	Pattern   string
	DryRun    bool
	Verbose   bool
	LogLevel  string
	LogFile   string
}

// RunRename 按模式批量重命名目录中的文件，返回重命名的文件数
// 重命名不写移动日志，撤销只覆盖整理产生的移动
func RunRename(opts *RenameOptions) (int, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return 0, err
	}

	absDir, err := filepath.Abs(opts.Directory)
	if err != nil {
		return 0, err
	}

	fs := afero.NewOsFs()

	info, err := fs.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("目录 '%s' 不存在", opts.Directory)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("'%s' 不是目录", opts.Directory)
	}

	entries, err := afero.ReadDir(fs, absDir)
	if err != nil {
		return 0, fmt.Errorf("读取目录失败: %w", err)
	}

	// 现有文件名全部进入唯一性集合，新名字不会与任何现有文件冲突
	existing := make(map[string]bool)
	for _, entry := range entries {
		existing[entry.Name()] = true
	}

	renamed := 0
	now := time.Now()

	for _, entry := range entries {
		if entry.IsDir() || internal.Excluded(entry.Name()) {
			continue
		}

		name := entry.Name()

		// 文件自己的名字不参与唯一性检查，否则模式结果与原名相同时会跟自己冲突
		delete(existing, name)
		newName := renamer.Apply(opts.Pattern, name, now, existing)
		if newName == name {
			continue
		}

		if opts.DryRun {
			logger.Get().Info().Msgf("[预览] 将重命名 '%s' 为 '%s'", name, newName)
			renamed++
			continue
		}

		if err := fs.Rename(filepath.Join(absDir, name), filepath.Join(absDir, newName)); err != nil {
			logger.Get().Error().Err(err).Msgf("重命名 '%s' 失败", name)
			continue
		}

		logger.Get().Info().Msgf("已重命名 '%s' 为 '%s'", name, newName)
		renamed++
	}

	return renamed, nil
}
