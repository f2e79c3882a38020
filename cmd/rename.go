package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/tidy-file/app"
	"github.com/moyu-x/tidy-file/config"
	"github.com/moyu-x/tidy-file/pkg/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename <directory>",
	Short: "按模式批量重命名目录中的文件",
	Long: `按指定模式重命名目录的直接子文件，扩展名保持不变。
模式支持三种占位符:
  {date}   当前时间 (2006-01-02_15-04-05)
  {clean}  清洗成小写 ASCII 的原文件名
  {lower}  小写原文件名
生成的名字与现有文件重复时自动追加自增序列。`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pattern, _ := cmd.Flags().GetString("pattern")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := &app.RenameOptions{
		Directory: args[0],
		Pattern:   pattern,
		DryRun:    dryRun,
		Verbose:   verbose,
		LogLevel:  cfg.Logging.Level,
		LogFile:   cfg.Logging.File,
	}

	renamed, err := app.RunRename(opts)
	if err != nil {
		fmt.Println(ui.Red(err.Error()))
		return err
	}

	if dryRun {
		fmt.Println(ui.Yellow(fmt.Sprintf("预览完成: 将重命名 %d 个文件", renamed)))
	} else {
		fmt.Println(ui.Green(fmt.Sprintf("重命名完成: %d 个文件", renamed)))
	}

	return nil
}

func init() {
	renameCmd.Flags().StringP("pattern", "p", "{clean}", "重命名模式")
	renameCmd.Flags().Bool("dry-run", false, "预览模式，不实际重命名")
	renameCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")

	rootCmd.AddCommand(renameCmd)
}
