package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal/database"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/movelog"
	"github.com/moyu-x/tidy-file/pkg/prompt"
	"github.com/moyu-x/tidy-file/pkg/undoer"
)

type UndoOptions struct {
	Directory string
	Yes       bool
	Verbose   bool
	LogLevel  string
	LogFile   string
	DBPath    string
}

func RunUndo(opts *UndoOptions) (*undoer.Stats, error) {
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
	store := movelog.NewFileStore(fs, absDir)

	confirm := prompt.TerminalConfirm(os.Stdin, os.Stdout)
	if opts.Yes {
		confirm = func(string) bool { return true }
	}

	und := undoer.New(fs, store, prompt.TerminalRetry(os.Stdin, os.Stdout), confirm)

	startedAt := time.Now()
	stats, err := und.Undo(absDir)
	if err != nil {
		return nil, err
	}

	recordRun(opts.DBPath, &database.RunRecord{
		Directory:  absDir,
		Mode:       "undo",
		Moved:      stats.Restored,
		Skipped:    stats.Skipped,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	})

	return stats, nil
}
