package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"ripple-cli/internal/tui/render"
)

var md = goldmark.New()

// Parse 用 markdown 语法解析文本为 block 树。
// 无法识别的节点退化为字面文本，不会拒绝整个 block。
func Parse(text string) (doc Document) {
	src := []byte(text)

	// 解析器异常时整体退化为单个字面段落。
	defer func() {
		if r := recover(); r != nil {
			doc = literalDocument(text)
		}
	}()

	root := md.Parser().Parse(gmtext.NewReader(src))
	blocks := []Block{}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		blocks = append(blocks, blockFromNode(node, src)...)
	}
	doc = Document{Blocks: blocks}
	return doc
}

func literalDocument(text string) Document {
	lines := []render.Line{}
	for _, raw := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines = append(lines, render.PlainLine(raw))
	}
	return Document{Blocks: []Block{{Kind: BlockParagraph, Lines: lines}}}
}

func blockFromNode(n ast.Node, src []byte) []Block {
	switch node := n.(type) {
	case *ast.Heading:
		line := render.Line{Spans: inlineSpans(node, src, headingStyle)}
		return []Block{{Kind: BlockHeading, Level: node.Level, Lines: []render.Line{line}}}

	case *ast.Paragraph, *ast.TextBlock:
		spans := inlineSpans(n, src, lipgloss.Style{})
		if len(spans) == 0 {
			return nil
		}
		return []Block{{Kind: BlockParagraph, Lines: []render.Line{{Spans: spans}}}}

	case *ast.FencedCodeBlock:
		lang := ""
		if l := node.Language(src); l != nil {
			lang = string(l)
		}
		return []Block{codeBlock(rawLines(n, src), lang)}

	case *ast.CodeBlock:
		return []Block{codeBlock(rawLines(n, src), "")}

	case *ast.List:
		return []Block{{Kind: BlockList, Lines: listLines(node, src, 0)}}

	case *ast.Blockquote:
		lines := []render.Line{}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			for _, b := range blockFromNode(child, src) {
				lines = append(lines, b.Lines...)
			}
		}
		prefixed := make([]render.Line, 0, len(lines))
		for _, l := range lines {
			spans := append([]render.Span{{Text: "> ", Style: quoteStyle}}, l.Spans...)
			prefixed = append(prefixed, render.Line{Spans: spans, NoWrap: l.NoWrap})
		}
		return []Block{{Kind: BlockQuote, Lines: prefixed}}

	case *ast.ThematicBreak:
		return []Block{{Kind: BlockRule, Lines: []render.Line{render.StyledLine("---", ruleStyle)}}}

	default:
		// 未识别的 block：按字面文本保留。
		raw := rawLines(n, src)
		if len(raw) == 0 {
			return nil
		}
		lines := make([]render.Line, 0, len(raw))
		for _, r := range raw {
			lines = append(lines, render.PlainLine(r))
		}
		return []Block{{Kind: BlockParagraph, Lines: lines}}
	}
}

// rawLines 取出节点覆盖的源文本行。
func rawLines(n ast.Node, src []byte) []string {
	segments := n.Lines()
	out := make([]string, 0, segments.Len())
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(src)), "\n"))
	}
	return out
}

// listLines 渲染列表项：无序项使用 •（对齐 codex 的 bullet 替换），
// 有序项使用编号。嵌套列表缩进两格。
func listLines(list *ast.List, src []byte, depth int) []render.Line {
	indent := strings.Repeat("  ", depth)
	out := []render.Line{}
	index := list.Start
	if index == 0 {
		index = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}
		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				out = append(out, listLines(nested, src, depth+1)...)
				continue
			}
			for _, b := range blockFromNode(child, src) {
				for _, l := range b.Lines {
					prefix := indent + strings.Repeat(" ", len(marker))
					if first {
						prefix = indent + marker
						first = false
					}
					spans := append([]render.Span{{Text: prefix, Style: bulletStyle}}, l.Spans...)
					out = append(out, render.Line{Spans: spans, NoWrap: l.NoWrap})
				}
			}
		}
		if first {
			// 空列表项也要占一行。
			out = append(out, render.Line{Spans: []render.Span{{Text: indent + marker, Style: bulletStyle}}})
		}
	}
	return out
}

// inlineSpans 将节点的行内子树展开为样式 span 序列。
func inlineSpans(n ast.Node, src []byte, base lipgloss.Style) []render.Span {
	spans := []render.Span{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		spans = append(spans, inlineNodeSpans(child, src, base)...)
	}
	return spans
}

func inlineNodeSpans(n ast.Node, src []byte, base lipgloss.Style) []render.Span {
	switch node := n.(type) {
	case *ast.Text:
		text := string(node.Segment.Value(src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			text += " "
		}
		if text == "" {
			return nil
		}
		return []render.Span{{Text: text, Style: base}}

	case *ast.String:
		return []render.Span{{Text: string(node.Value), Style: base}}

	case *ast.CodeSpan:
		var b strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Segment.Value(src))
			}
		}
		return []render.Span{{Text: b.String(), Style: codeSpanStyle}}

	case *ast.Emphasis:
		style := emphasisStyle
		if node.Level >= 2 {
			style = strongStyle
		}
		return inlineSpans(node, src, style)

	case *ast.Link:
		label := inlineSpans(node, src, linkStyle)
		url := string(node.Destination)
		for i := range label {
			label[i].URL = url
		}
		return label

	case *ast.AutoLink:
		url := string(node.URL(src))
		return []render.Span{{Text: url, Style: linkStyle, URL: url}}

	case *ast.Image:
		alt := string(node.Text(src))
		if alt == "" {
			alt = string(node.Destination)
		}
		return []render.Span{{Text: "[image: " + alt + "]", Style: codeSpanStyle}}

	default:
		// 无法识别的行内节点：递归子节点，尽量保住文本。
		if n.ChildCount() > 0 {
			return inlineSpans(n, src, base)
		}
		return nil
	}
}
