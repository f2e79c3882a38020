package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal/database"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/movelog"
	"github.com/moyu-x/tidy-file/pkg/organizer"
	"github.com/moyu-x/tidy-file/pkg/prompt"
	"github.com/moyu-x/tidy-file/pkg/rules"
)

type OrganizeOptions struct {
	Directory string
	DryRun    bool
	RulesPath string
	Sniff     bool
	Verbose   bool
	LogLevel  string
	LogFile   string
	DBPath    string
}

func RunOrganize(opts *OrganizeOptions) (*organizer.Stats, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}

	if err := logger.Init(logLevel, opts.LogFile); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	r := rules.Load(fs, opts.RulesPath)
	store := movelog.NewFileStore(fs, absDir)

	org := organizer.New(fs, r, store, prompt.TerminalRetry(os.Stdin, os.Stdout))
	org.Sniff = opts.Sniff

	if opts.DryRun {
		logger.Get().Info().Msg("预览模式 - 不会实际移动任何文件")
	}

	startedAt := time.Now()
	stats, err := org.Organize(absDir, opts.DryRun)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		recordRun(opts.DBPath, &database.RunRecord{
			Directory:  absDir,
			Mode:       "organize",
			Moved:      stats.Moved,
			Skipped:    stats.Skipped,
			TotalBytes: stats.TotalBytes,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		})
	}

	return stats, nil
}

// recordRun 把一次运行写入历史数据库
// 历史记录只是审计信息，写入失败不影响运行结果
func recordRun(dbPath string, record *database.RunRecord) {
	if dbPath == "" {
		return
	}

	db, err := database.New(dbPath)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("打开运行历史数据库失败，跳过记录")
		return
	}
	defer db.Close()

	if err := db.Insert(record); err != nil {
		logger.Get().Warn().Err(err).Msg("写入运行历史失败")
	}
}
