package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/tidy-file/internal"
	"github.com/moyu-x/tidy-file/pkg/logger"
)

// Category 一个分类及其对应的扩展名列表
type Category struct {
	Name       string
	Extensions []string
}

// Rules 有序的分类规则表
// 顺序即配置文件中键的声明顺序，解析扩展名时第一个命中的分类生效
type Rules struct {
	categories []Category
}

// New 构造规则表，扩展名统一转为小写
func New(categories []Category) *Rules {
	normalized := make([]Category, 0, len(categories))
	for _, c := range categories {
		exts := make([]string, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			exts = append(exts, strings.ToLower(ext))
		}
		normalized = append(normalized, Category{Name: c.Name, Extensions: exts})
	}
	return &Rules{categories: normalized}
}

// Resolve 返回扩展名所属的分类名，没有命中任何规则时返回 Other
func (r *Rules) Resolve(ext string) string {
	ext = strings.ToLower(ext)
	for _, c := range r.categories {
		for _, e := range c.Extensions {
			if e == ext {
				return c.Name
			}
		}
	}
	return internal.FallbackCategory
}

// Categories 返回规则表中的分类列表
func (r *Rules) Categories() []Category {
	return r.categories
}

// Load 从 JSON 配置文件加载规则表
// 文件不存在、JSON 非法或其他读取错误都不是致命的，回退到内置默认规则
func Load(fs afero.Fs, path string) *Rules {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Get().Warn().Str("path", path).Msg("规则文件不存在，使用内置默认规则")
		} else {
			logger.Get().Warn().Err(err).Str("path", path).Msg("读取规则文件失败，使用内置默认规则")
		}
		return Default()
	}

	rules, err := parse(data)
	if err != nil {
		logger.Get().Warn().Err(err).Str("path", path).Msg("规则文件格式非法，使用内置默认规则")
		return Default()
	}

	logger.Get().Debug().Str("path", path).Int("categories", len(rules.categories)).Msg("规则文件加载完成")
	return rules
}

// parse 按键的声明顺序解析 JSON 对象
// encoding/json 的 map 不保留键顺序，这里用 Decoder 逐个读取
func parse(data []byte) (*Rules, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("规则文件必须是 JSON 对象")
	}

	var categories []Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("非法的分类名: %v", tok)
		}

		var exts []string
		if err := dec.Decode(&exts); err != nil {
			return nil, fmt.Errorf("分类 '%s' 的扩展名列表非法: %w", name, err)
		}

		categories = append(categories, Category{Name: name, Extensions: exts})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return New(categories), nil
}

// Default 内置默认规则表
func Default() *Rules {
	return New([]Category{
		{Name: "Images", Extensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".tiff", ".ico", ".raw",
			".heic", ".heif", ".cr2", ".nef", ".arw", ".dng", ".psd",
		}},
		{Name: "Documents", Extensions: []string{
			".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".pages", ".md", ".tex",
			".epub", ".mobi", ".azw", ".azw3", ".log",
		}},
		{Name: "Videos", Extensions: []string{
			".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm", ".mkv", ".m4v", ".3gp",
			".mpg", ".mpeg", ".vob", ".ogv",
		}},
		{Name: "Audio", Extensions: []string{
			".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma", ".opus", ".aiff",
			".au", ".mid", ".midi",
		}},
		{Name: "Archives", Extensions: []string{
			".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".tar.gz", ".tar.bz2",
			".cab", ".iso", ".img",
		}},
		{Name: "Code", Extensions: []string{
			".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".php", ".rb", ".go",
			".rs", ".ts", ".jsx", ".tsx", ".swift", ".kt", ".scala", ".sh", ".bash",
			".json", ".xml", ".yaml", ".yml", ".sql",
		}},
		{Name: "Spreadsheets", Extensions: []string{
			".xls", ".xlsx", ".csv", ".ods", ".numbers", ".tsv", ".xlsm",
		}},
		{Name: "Presentations", Extensions: []string{
			".ppt", ".pptx", ".odp", ".key", ".pps", ".ppsx",
		}},
		{Name: "Executables", Extensions: []string{
			".exe", ".msi", ".deb", ".rpm", ".dmg", ".app", ".apk", ".jar",
		}},
	})
}
