// Package history 维护会话内的显示历史：有序、append-only、cell 不可变。
// cell 从不以固定宽度预先折行存储——渲染时才按当前视口宽度重算，
// 终端 resize 无需重新插入。
package history

import (
	"sync"

	"ripple-cli/internal/tui/render"
)

// Cell 是持久化历史内容的最小单元。append 之后不可变。
type Cell interface {
	// Render 按给定视口宽度重算折行。width <= 0 表示不限宽。
	Render(width int) []render.Line
}

// Store 是 append-only 的 cell 序列。
// Append 一次提交一组 cell（header + block + spacer），组内顺序
// 在单个临界区内落位，两个通道的 finalize 不会互相穿插。
type Store struct {
	mu    sync.Mutex
	cells []Cell
}

// NewStore 创建空的 Store。
func NewStore() *Store {
	return &Store{}
}

// Append 以原子组的方式追加 cell。
func (s *Store) Append(cells ...Cell) {
	if s == nil || len(cells) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = append(s.cells, cells...)
}

// Len 返回已存储的 cell 数。
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cells)
}

// Cells 返回 cell 序列的快照拷贝。
func (s *Store) Cells() []Cell {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Cell(nil), s.cells...)
}

// Render 按当前视口宽度渲染全部历史。
// 这里只做折行重算，绝不做 I/O。
func (s *Store) Render(viewportWidth int) []render.Line {
	out := []render.Line{}
	for _, cell := range s.Cells() {
		out = append(out, cell.Render(viewportWidth)...)
	}
	return out
}
