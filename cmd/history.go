package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/tidy-file/config"
	"github.com/moyu-x/tidy-file/internal/database"
	"github.com/moyu-x/tidy-file/pkg/logger"
	"github.com/moyu-x/tidy-file/pkg/organizer"
	"github.com/moyu-x/tidy-file/pkg/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history [directory]",
	Short: "查看整理和撤销的运行历史",
	Long: `从运行历史数据库中读取最近的整理和撤销记录。
不指定目录时显示所有目录的记录。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}

	directory := ""
	if len(args) > 0 {
		directory, err = filepath.Abs(args[0])
		if err != nil {
			return err
		}
	}

	limit, _ := cmd.Flags().GetInt("limit")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("打开运行历史数据库失败: %w", err)
	}
	defer db.Close()

	records, err := db.Recent(directory, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println(ui.Yellow("没有运行历史记录"))
		return nil
	}

	fmt.Println(ui.Separator())
	for _, rec := range records {
		fmt.Printf("%s  %-8s  %s\n", rec.StartedAt.Format("2006-01-02 15:04:05"), rec.Mode, rec.Directory)
		fmt.Printf("    成功: %d  跳过: %d  大小: %s  耗时: %v\n",
			rec.Moved, rec.Skipped, organizer.FormatBytes(rec.TotalBytes),
			rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond))
	}
	fmt.Println(ui.Separator())

	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "最多显示的记录数")

	rootCmd.AddCommand(historyCmd)
}
