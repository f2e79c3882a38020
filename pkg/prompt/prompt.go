package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RetryFunc 在操作失败后询问是否重试，返回 true 表示重试
// 生产环境绑定到终端提示，测试中替换成脚本化的实现
type RetryFunc func(action string) bool

// ConfirmFunc 在执行破坏性操作前要求确认，返回 true 表示继续
type ConfirmFunc func(message string) bool

// TerminalRetry 返回基于终端输入的重试询问
// 循环读取直到得到 y 或 n
func TerminalRetry(in io.Reader, out io.Writer) RetryFunc {
	reader := bufio.NewReader(in)
	return func(action string) bool {
		for {
			fmt.Fprintf(out, "%s - 重试? (y/n): ", action)
			line, err := reader.ReadString('\n')
			if err != nil {
				return false
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return true
			case "n", "no":
				return false
			}
			fmt.Fprintln(out, "请输入 y 或 n")
		}
	}
}

// TerminalConfirm 返回基于终端输入的确认询问，默认为否
func TerminalConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(message string) bool {
		fmt.Fprintf(out, "%s (y/N): ", message)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
