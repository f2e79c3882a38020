package database

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moyu-x/tidy-file/pkg/logger"
)

// RunRecord 一次整理或撤销运行的历史记录
type RunRecord struct {
	ID         string    `gorm:"primaryKey"`
	Directory  string    `gorm:"not null;index"`
	Mode       string    `gorm:"not null"`
	Moved      int       `gorm:"not null"`
	Skipped    int       `gorm:"not null"`
	TotalBytes int64     `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt time.Time `gorm:"not null"`
}

func (RunRecord) TableName() string {
	return "run_history"
}

type Database struct {
	db *gorm.DB
}

func New(dbPath string) (*Database, error) {
	expandedPath, err := expandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(expandedPath), &gorm.Config{})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Str("path", expandedPath).Msg("运行历史数据库初始化完成")
	return &Database{db: db}, nil
}

func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Insert 写入一条运行记录，ID 为空时自动生成
func (d *Database) Insert(record *RunRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if err := d.db.Create(record).Error; err != nil {
		logger.Get().Error().Err(err).Msgf("插入运行记录失败: %s", record.Directory)
		return err
	}

	logger.Get().Debug().Msgf("插入运行记录成功: %s (%s)", record.Directory, record.Mode)
	return nil
}

// Recent 按开始时间倒序返回最近的运行记录
// directory 非空时只返回该目录的记录
func (d *Database) Recent(directory string, limit int) ([]RunRecord, error) {
	query := d.db.Order("started_at desc").Limit(limit)
	if directory != "" {
		query = query.Where("directory = ?", directory)
	}

	var records []RunRecord
	if err := query.Find(&records).Error; err != nil {
		logger.Get().Error().Err(err).Msg("查询运行记录失败")
		return nil, err
	}

	return records, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
