package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run 封装 Bubble Tea 入口：在备用屏上消费管线直到用户退出。
func Run(opts Options) error {
	return RunModel(New(opts))
}

// RunModel 运行一个已构造的 Model。
// 事件源应在 New 之后再启动，否则订阅前发布的事件会丢。
func RunModel(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
