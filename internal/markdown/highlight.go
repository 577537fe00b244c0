package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"ripple-cli/internal/tui/render"
)

var (
	codeBaseStyle    = lipgloss.NewStyle()
	codeKeywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	codeStringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	codeCommentStyle = lipgloss.NewStyle().Faint(true)
	codeNumberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	codeNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// codeBlock 在 finalize 时做一次语法着色；渲染阶段不再碰 chroma。
// 代码行标记 NoWrap：渲染换行按字符切分并保留空白。
func codeBlock(rawLines []string, language string) Block {
	source := strings.Join(rawLines, "\n")
	lines := highlightCode(source, language)
	return Block{Kind: BlockCode, Language: language, Lines: lines}
}

// highlightCode 用 chroma 给代码着色，失败时退化为未着色文本。
func highlightCode(source, language string) []render.Line {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return plainCodeLines(source)
	}

	lines := []render.Line{}
	current := []render.Span{}
	for _, token := range iterator.Tokens() {
		style := tokenStyle(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, render.Line{Spans: current, NoWrap: true})
				current = nil
			}
			if part != "" {
				current = append(current, render.Span{Text: part, Style: style})
			}
		}
	}
	lines = append(lines, render.Line{Spans: current, NoWrap: true})

	// 去掉 tokenizer 附带的末尾空行。
	for len(lines) > 0 && render.IsBlankLineSpacesOnly(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return plainCodeLines(source)
	}
	return lines
}

func plainCodeLines(source string) []render.Line {
	out := []render.Line{}
	for _, raw := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		out = append(out, render.Line{Spans: []render.Span{{Text: raw}}, NoWrap: true})
	}
	return out
}

func tokenStyle(t chroma.TokenType) lipgloss.Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return codeKeywordStyle
	case t.InSubCategory(chroma.LiteralString):
		return codeStringStyle
	case t.InCategory(chroma.Comment):
		return codeCommentStyle
	case t.InSubCategory(chroma.LiteralNumber):
		return codeNumberStyle
	case t == chroma.NameFunction || t == chroma.NameClass:
		return codeNameStyle
	default:
		return codeBaseStyle
	}
}
