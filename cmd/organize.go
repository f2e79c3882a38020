package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/tidy-file/app"
	"github.com/moyu-x/tidy-file/config"
	"github.com/moyu-x/tidy-file/pkg/organizer"
	"github.com/moyu-x/tidy-file/pkg/ui"
)

var organizeCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "把目录中的文件整理到分类子目录",
	Long: `扫描指定目录的直接子文件，按扩展名规则移动到对应的分类子目录。
每次成功的移动都写入目录内的移动日志，之后可以用 undo 命令整体撤销。
目标位置已存在同名文件时跳过，绝不覆盖。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	directory := "."
	if len(args) > 0 {
		directory = args[0]
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	rulesPath, _ := cmd.Flags().GetString("config")
	noStats, _ := cmd.Flags().GetBool("no-stats")
	sniff, _ := cmd.Flags().GetBool("sniff")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if rulesPath == "" {
		rulesPath = cfg.Rules.Path
	}

	opts := &app.OrganizeOptions{
		Directory: directory,
		DryRun:    dryRun,
		RulesPath: rulesPath,
		Sniff:     sniff,
		Verbose:   verbose,
		LogLevel:  cfg.Logging.Level,
		LogFile:   cfg.Logging.File,
		DBPath:    cfg.Database.Path,
	}

	stats, err := app.RunOrganize(opts)
	if err != nil {
		fmt.Println(ui.Red(err.Error()))
		return err
	}

	printOrganizeSummary(stats, dryRun, !noStats)
	return nil
}

func printOrganizeSummary(stats *organizer.Stats, dryRun, showStats bool) {
	fmt.Println(ui.Separator())

	if stats.Considered == 0 {
		fmt.Println(ui.Yellow("目录中没有需要整理的文件"))
		fmt.Println(ui.Separator())
		return
	}

	if dryRun {
		fmt.Println(ui.Yellow(fmt.Sprintf("预览完成: 共检查 %d 个文件", stats.Considered)))
		fmt.Printf("  将移动: %d 个文件\n", stats.Moved)
		fmt.Printf("  将跳过: %d 个文件\n", stats.Skipped)
		fmt.Println(ui.Separator())
		return
	}

	fmt.Println(ui.Green("整理完成!"))
	fmt.Println(ui.Green(fmt.Sprintf("成功移动 %d 个文件", stats.Moved)))
	if stats.Skipped > 0 {
		fmt.Println(ui.Yellow(fmt.Sprintf("因错误或重名跳过 %d 个文件", stats.Skipped)))
	}

	if showStats && stats.Moved > 0 {
		fmt.Println(stats.String())
	}

	fmt.Println(ui.Separator())
}

func init() {
	organizeCmd.Flags().Bool("dry-run", false, "预览模式，不实际移动文件")
	organizeCmd.Flags().StringP("config", "c", "", "规则配置文件路径（JSON）")
	organizeCmd.Flags().Bool("no-stats", false, "不显示分类统计")
	organizeCmd.Flags().Bool("sniff", false, "扩展名未命中规则时按内容探测文件类型")
	organizeCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")

	rootCmd.AddCommand(organizeCmd)
}
