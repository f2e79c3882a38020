package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tidy-file",
	Short: "按扩展名整理目录并支持撤销的命令行工具",
	Long: `Tidy File 是一个命令行工具，按文件扩展名把目录中的文件整理到分类子目录中。

主要功能:
- 按扩展名规则把文件移动到对应的分类目录
- 每次移动写入移动日志，支持整体撤销
- 预览模式，先看后动
- 按模式批量重命名文件
- 记录每次运行的历史统计`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
