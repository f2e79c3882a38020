package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/tidy-file/app"
	"github.com/moyu-x/tidy-file/config"
	"github.com/moyu-x/tidy-file/pkg/ui"
	"github.com/moyu-x/tidy-file/pkg/undoer"
)

var undoCmd = &cobra.Command{
	Use:   "undo [directory]",
	Short: "撤销上一次整理，把文件移回原位置",
	Long: `读取目录内的移动日志，按时间倒序把文件移回原来的位置。
原位置已被占用、文件已不在记录位置、或日志记录非法的条目会被逐条跳过。
执行前需要确认，--yes 跳过确认。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUndo,
}

func runUndo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	directory := "."
	if len(args) > 0 {
		directory = args[0]
	}

	yes, _ := cmd.Flags().GetBool("yes")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := &app.UndoOptions{
		Directory: directory,
		Yes:       yes,
		Verbose:   verbose,
		LogLevel:  cfg.Logging.Level,
		LogFile:   cfg.Logging.File,
		DBPath:    cfg.Database.Path,
	}

	stats, err := app.RunUndo(opts)
	if err != nil {
		if errors.Is(err, undoer.ErrCancelled) {
			fmt.Println(ui.Red("撤销已取消"))
			return nil
		}
		fmt.Println(ui.Red(err.Error()))
		return err
	}

	fmt.Println(ui.Separator())
	fmt.Println(ui.Green("撤销完成!"))
	fmt.Println(stats.String())
	fmt.Println(ui.Separator())

	return nil
}

func init() {
	undoCmd.Flags().BoolP("yes", "y", false, "跳过确认直接执行")
	undoCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")

	rootCmd.AddCommand(undoCmd)
}
