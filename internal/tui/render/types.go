package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Span 表示一段文本及其样式。URL 非空时输出为终端超链接（OSC 8）。
type Span struct {
	Text  string
	Style lipgloss.Style
	URL   string
}

// Line 由多个 Span 组成，可选整体样式。
// NoWrap 的行（如代码块）在换行时按字符切分而非按词切分。
type Line struct {
	Spans  []Span
	Style  lipgloss.Style
	NoWrap bool
}

// PlainLine 构造无样式的单 Span 行。
func PlainLine(text string) Line {
	return Line{Spans: []Span{{Text: text}}}
}

// StyledLine 构造统一样式的单 Span 行。
func StyledLine(text string, style lipgloss.Style) Line {
	return Line{Spans: []Span{{Text: text, Style: style}}}
}

// Text 返回行的纯文本内容（忽略样式）。
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// LinesToStrings 将样式化的行转换为字符串列表。
func LinesToStrings(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		segments := make([]string, 0, len(line.Spans))
		for _, sp := range line.Spans {
			rendered := sp.Style.Render(sp.Text)
			if sp.URL != "" {
				rendered = termenv.Hyperlink(sp.URL, rendered)
			}
			segments = append(segments, rendered)
		}
		text := strings.Join(segments, "")
		text = line.Style.Render(text)
		out = append(out, text)
	}
	return out
}

// LinesToText 返回纯文本行（忽略样式），便于测试与 overlay 预览。
func LinesToText(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Text())
	}
	return out
}
