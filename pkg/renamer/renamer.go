package renamer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Apply 根据模式生成新文件名，并保证在 existing 集合中唯一
// 支持三种占位符: {date} 当前时间、{clean} 清洗后的原名、{lower} 小写原名
// 重名时追加 _1、_2 等自增序列；生成的名字会加入 existing
func Apply(pattern, filename string, now time.Time, existing map[string]bool) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	name := pattern
	name = strings.ReplaceAll(name, "{date}", now.Format("2006-01-02_15-04-05"))
	name = strings.ReplaceAll(name, "{clean}", Clean(stem))
	name = strings.ReplaceAll(name, "{lower}", strings.ToLower(stem))

	candidate := name + ext
	for counter := 1; existing[candidate]; counter++ {
		candidate = fmt.Sprintf("%s_%d%s", name, counter, ext)
	}

	existing[candidate] = true
	return candidate
}

// Clean 把名字清洗成小写 ASCII 形式
// 先做 NFKD 分解去掉变音符号，然后只保留字母、数字、下划线和连字符，空格转下划线
func Clean(s string) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	for _, r := range decomposed {
		if r > unicode.MaxASCII || unicode.Is(unicode.Mn, r) {
			continue
		}
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}
