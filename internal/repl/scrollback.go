package repl

import (
	"fmt"
	"io"
	"os"

	"ripple-cli/internal/display"
	"ripple-cli/internal/history"
	tuirender "ripple-cli/internal/tui/render"
)

// Scrollback 把完成的 cell 作为不可变 block 写进终端的自然滚动缓冲
// （或任意 io.Writer）。只负责输出策略，不负责持久化。
type Scrollback struct {
	w    io.Writer
	ctrl *display.Controller
}

// ScrollbackOptions 配置 Scrollback。
type ScrollbackOptions struct {
	Writer     io.Writer
	Controller *display.Controller
}

// NewScrollback 创建 Scrollback，Writer 缺省为 stdout。
// 宽度始终从共享的显示配置读取，不保存私有拷贝。
func NewScrollback(opts ScrollbackOptions) *Scrollback {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = display.NewController()
	}
	return &Scrollback{w: w, ctrl: ctrl}
}

// AppendCells 渲染并写出一组已完成的 cell。
func (s *Scrollback) AppendCells(cells ...history.Cell) {
	if s == nil || s.w == nil {
		return
	}
	width := s.ctrl.Snapshot().MaxCols
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		for _, line := range tuirender.LinesToStrings(cell.Render(width)) {
			fmt.Fprintln(s.w, line)
		}
	}
}
