package internal

const (
	// 移动日志文件名，每个被整理的目录各一份
	MoveLogName = ".tidy-file-moves.json"

	// 默认文本日志文件名
	DefaultLogFileName = "tidy-file.log"

	// 默认规则配置文件路径
	DefaultRulesPath = "config.json"

	// 运行历史数据库默认路径
	DefaultDatabasePath = "~/.tidy-file/history.db"

	// 没有匹配任何规则时使用的分类名
	FallbackCategory = "Other"

	// 文件类型探测所需的文件头部大小（字节）
	FileHeaderSize = 261
)

// Excluded 判断文件名是否属于工具自身的文件，这些文件不参与整理
func Excluded(name string) bool {
	return name == MoveLogName || name == DefaultLogFileName
}
