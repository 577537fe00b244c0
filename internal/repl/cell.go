package repl

import (
	"github.com/charmbracelet/lipgloss"

	"ripple-cli/internal/stream"
	tuirender "ripple-cli/internal/tui/render"
)

// 每个通道的 header 使用固定的标签与样式。
var (
	answerHeaderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	reasoningHeaderStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

func headerLabel(ch stream.Channel) string {
	if ch == stream.ChannelReasoning {
		return "thinking"
	}
	return "answer"
}

func headerStyle(ch stream.Channel) lipgloss.Style {
	if ch == stream.ChannelReasoning {
		return reasoningHeaderStyle
	}
	return answerHeaderStyle
}

// HeaderCell 是通道的段落标题 cell，紧跟它的一定是同通道的 FormattedCell。
type HeaderCell struct {
	channel stream.Channel
}

// NewHeaderCell 创建通道 header。
func NewHeaderCell(ch stream.Channel) HeaderCell {
	return HeaderCell{channel: ch}
}

// Channel 返回 cell 所属通道。
func (c HeaderCell) Channel() stream.Channel { return c.channel }

// Label 返回固定标签文本。
func (c HeaderCell) Label() string { return headerLabel(c.channel) }

func (c HeaderCell) Render(width int) []tuirender.Line {
	return []tuirender.Line{
		tuirender.StyledLine(headerLabel(c.channel), headerStyle(c.channel)),
	}
}

// FormattedCell 承载 finalize 后的富格式内容：与宽度无关的逻辑行，
// 渲染时按视口宽度重新折行。
type FormattedCell struct {
	channel stream.Channel
	lines   []tuirender.Line
}

// NewFormattedCell 用压平后的逻辑行创建 cell，行内容做深拷贝以保证不可变。
func NewFormattedCell(ch stream.Channel, lines []tuirender.Line) FormattedCell {
	owned := []tuirender.Line{}
	tuirender.PushOwnedLines(lines, &owned)
	return FormattedCell{channel: ch, lines: owned}
}

// Channel 返回 cell 所属通道。
func (c FormattedCell) Channel() stream.Channel { return c.channel }

func (c FormattedCell) Render(width int) []tuirender.Line {
	out := []tuirender.Line{}
	for _, line := range c.lines {
		out = append(out, tuirender.WrapSpans(line, width)...)
	}
	return out
}

// SpacerCell 是 block 之后的空行间隔。
type SpacerCell struct{}

func (SpacerCell) Render(int) []tuirender.Line {
	return []tuirender.Line{{}}
}
