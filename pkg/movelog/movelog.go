package movelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal"
	"github.com/moyu-x/tidy-file/pkg/logger"
)

// ErrCorrupt 表示日志文件内容不是合法的移动记录数组
var ErrCorrupt = errors.New("移动日志内容损坏")

// Record 一次文件移动的记录
// 路径必须是绝对路径，撤销时依赖这一点做安全检查
type Record struct {
	Timestamp string `json:"timestamp"`
	Original  string `json:"original"`
	New       string `json:"new"`
}

// Store 移动日志的读写接口，便于测试时替换实现
type Store interface {
	Load() ([]Record, error)
	Append(Record) error
}

// FileStore 基于 JSON 文件的移动日志，每个被整理的目录一份
type FileStore struct {
	Fs  afero.Fs
	Dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{Fs: fs, Dir: dir}
}

// Path 返回日志文件路径
func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, internal.MoveLogName)
}

// Load 读取全部移动记录
// 文件不存在返回空序列；内容不是对象数组时返回 ErrCorrupt
func (s *FileStore) Load() ([]Record, error) {
	data, err := afero.ReadFile(s.Fs, s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrCorrupt
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			return nil, ErrCorrupt
		}
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, ErrCorrupt
		}
		records = append(records, rec)
	}

	return records, nil
}

// Append 追加一条记录并整体重写日志文件
// 原有内容损坏时丢弃并重新建立日志，这是明确接受的破坏性恢复行为
func (s *FileStore) Append(rec Record) error {
	records, err := s.Load()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		logger.Get().Warn().Str("path", s.Path()).Msg("移动日志已损坏，重新建立")
		records = nil
	}

	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	return afero.WriteFile(s.Fs, s.Path(), data, 0644)
}
