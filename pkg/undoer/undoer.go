package undoer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/pkg/hasher"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/movelog"
	"github.com/moyu-x/tidy-file/pkg/prompt"
)

// ErrCancelled 表示用户在确认阶段放弃了撤销
var ErrCancelled = errors.New("撤销操作已取消")

// Stats 一次撤销运行的统计信息
type Stats struct {
	Restored int
	Skipped  int
}

func (s *Stats) String() string {
	var buf bytes.Buffer
	buf.WriteString("========== 撤销统计 ==========\n")
	buf.WriteString(fmt.Sprintf("已恢复: %d\n", s.Restored))
	buf.WriteString(fmt.Sprintf("已跳过: %d\n", s.Skipped))
	buf.WriteString("============================")
	return buf.String()
}

// Undoer 按移动日志把文件移回原位置
type Undoer struct {
	Fs      afero.Fs
	Log     movelog.Store
	Retry   prompt.RetryFunc
	Confirm prompt.ConfirmFunc
}

func New(fs afero.Fs, log movelog.Store, retry prompt.RetryFunc, confirm prompt.ConfirmFunc) *Undoer {
	return &Undoer{Fs: fs, Log: log, Retry: retry, Confirm: confirm}
}

// Undo 按时间倒序回放移动日志
// 后移动的先撤销；单条记录的安全检查失败只计入跳过数，不中断其余记录
// 撤销完成后日志保持原样，重复撤销时所有记录都会因源文件缺失被跳过
func (u *Undoer) Undo(dir string) (*Stats, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("解析目录路径失败: %w", err)
	}

	info, err := u.Fs.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("目录 '%s' 不存在", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' 不是目录", dir)
	}

	records, err := u.Log.Load()
	if err != nil {
		return nil, fmt.Errorf("移动日志无法读取: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("该目录没有可撤销的移动记录")
	}

	if !u.Confirm("即将按移动日志把文件移回原位置，是否继续?") {
		return nil, ErrCancelled
	}

	stats := &Stats{}
	for i := len(records) - 1; i >= 0; i-- {
		u.undoRecord(records[i], stats)
	}

	return stats, nil
}

func (u *Undoer) undoRecord(rec movelog.Record, stats *Stats) {
	original := rec.Original
	current := rec.New
	name := filepath.Base(current)

	// 日志记录的是移动时刻的绝对路径，相对路径无法在之后可靠解释
	if !filepath.IsAbs(original) || !filepath.IsAbs(current) {
		logger.Get().Warn().Msgf("跳过 '%s' - 日志记录中的路径不是绝对路径", name)
		stats.Skipped++
		return
	}

	exists, err := afero.Exists(u.Fs, current)
	if err != nil || !exists {
		logger.Get().Warn().Msgf("跳过 '%s' - 文件已不在记录的位置", name)
		stats.Skipped++
		return
	}

	occupied, err := afero.Exists(u.Fs, original)
	if err == nil && occupied {
		u.reportOccupied(current, original, name)
		stats.Skipped++
		return
	}

	parent := filepath.Dir(original)
	if ok, _ := afero.DirExists(u.Fs, parent); !ok {
		logger.Get().Warn().Msgf("原目录 '%s' 已不存在，正在重新创建", parent)
		if err := u.Fs.MkdirAll(parent, 0755); err != nil {
			logger.Get().Error().Err(err).Msgf("创建原目录失败，跳过 '%s'", name)
			stats.Skipped++
			return
		}
	}

	if !u.moveWithRetry(current, original, name) {
		stats.Skipped++
		return
	}

	logger.Get().Info().Msgf("已恢复 '%s' 到 '%s/'", name, parent)
	stats.Restored++
}

// reportOccupied 报告原位置被占用，并比较占用文件与待恢复文件的内容
// 无论内容是否相同都跳过，绝不覆盖原位置上的文件
func (u *Undoer) reportOccupied(current, original, name string) {
	same, err := hasher.Equal(u.Fs, current, original)
	if err != nil {
		logger.Get().Warn().Msgf("跳过 '%s' - 原位置已存在同名文件", name)
		return
	}
	if same {
		logger.Get().Warn().Msgf("跳过 '%s' - 原位置已存在内容相同的文件", name)
	} else {
		logger.Get().Warn().Msgf("跳过 '%s' - 原位置已存在同名但内容不同的文件", name)
	}
}

func (u *Undoer) moveWithRetry(source, target, name string) bool {
	for {
		err := u.Fs.Rename(source, target)
		if err == nil {
			return true
		}
		logger.Get().Error().Err(err).Str("file", name).Msg("恢复文件失败")
		if !u.Retry(fmt.Sprintf("无法恢复 '%s'", name)) {
			return false
		}
	}
}
