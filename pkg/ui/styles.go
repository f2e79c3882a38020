package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Green 渲染成功信息
func Green(s string) string {
	return successStyle.Render(s)
}

// Yellow 渲染警告信息
func Yellow(s string) string {
	return warnStyle.Render(s)
}

// Red 渲染错误信息
func Red(s string) string {
	return errorStyle.Render(s)
}

// Separator 渲染分隔线
func Separator() string {
	return separatorStyle.Render(strings.Repeat("=", 50))
}
