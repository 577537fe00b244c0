// Package markdown 把完成的流式文本解析为带样式的 block 树。
// 解析与着色刻意推迟到 finalize：每个 delta 的热路径只做纯文本预览，
// 这里承担一次性的富格式化。
package markdown

import (
	"github.com/charmbracelet/lipgloss"

	"ripple-cli/internal/tui/render"
)

// 颜色语义对齐 codex-rs 的 markdown 渲染：标题黄色、加粗青色、
// 斜体奶油色。
var (
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	strongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	emphasisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDD0")).Italic(true)
	codeSpanStyle = lipgloss.NewStyle().Faint(true)
	linkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	quoteStyle    = lipgloss.NewStyle().Faint(true)
	bulletStyle   = lipgloss.NewStyle().Faint(true)
	ruleStyle     = lipgloss.NewStyle().Faint(true)
)

// BlockKind 标记 block 树节点的变体。
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockList
	BlockQuote
	BlockRule
)

// Block 是 tagged-variant 的 block 节点：kind 决定哪些字段有意义。
// Lines 是与宽度无关的逻辑行（渲染时再按视口宽度换行）。
type Block struct {
	Kind     BlockKind
	Level    int    // BlockHeading
	Language string // BlockCode
	Lines    []render.Line
}

// Document 是按源顺序排列的 block 序列。
type Document struct {
	Blocks []Block
}

// Flatten 将 block 树走一遍压成平坦的逻辑行序列，block 之间留一个空行。
func (d Document) Flatten() []render.Line {
	out := []render.Line{}
	for i, b := range d.Blocks {
		if i > 0 {
			out = append(out, render.Line{})
		}
		out = append(out, b.Lines...)
	}
	return out
}

// Options 控制 finalize 时的富格式化。
type Options struct {
	// FileOpener 是引用改写的 URI 前缀（如 vscode://file），为空则不改写。
	FileOpener string
	// Workdir 用于解析相对引用路径。
	Workdir string
}

// Render 是 finalize 的格式化入口：先改写引用，再解析为 block 树，
// 最后压平为逻辑行。格式化永远不产生致命错误，最差情况退化为原文。
func Render(text string, opts Options) []render.Line {
	processed := RewriteCitations(text, opts.FileOpener, opts.Workdir)
	return Parse(processed).Flatten()
}
