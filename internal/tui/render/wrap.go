package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// WrapText 使用词级别换行，宽度按终端显示宽度计算（宽字符计 2）。
// width <= 0 表示不限宽（soft-wrap 交由真正持有视口宽度的渲染方处理），
// 此时仅按 \n 拆分。
func WrapText(text string, width int) []string {
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapLine(raw, width)...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	out := []string{}
	current := ""
	currentW := 0
	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if current == "" {
			if w > width {
				broken := breakLongWord(word, width)
				out = append(out, broken[:len(broken)-1]...)
				current = broken[len(broken)-1]
				currentW = runewidth.StringWidth(current)
				continue
			}
			current = word
			currentW = w
			continue
		}
		if currentW+1+w <= width {
			current += " " + word
			currentW += 1 + w
			continue
		}
		out = append(out, current)
		if w > width {
			broken := breakLongWord(word, width)
			out = append(out, broken[:len(broken)-1]...)
			current = broken[len(broken)-1]
			currentW = runewidth.StringWidth(current)
			continue
		}
		current = word
		currentW = w
	}
	if current != "" {
		out = append(out, current)
	}
	if len(out) == 0 {
		return []string{line}
	}
	return out
}

func breakLongWord(word string, width int) []string {
	if width <= 0 {
		return []string{word}
	}
	out := []string{}
	current := []rune{}
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
			w = 0
		}
		current = append(current, r)
		w += rw
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	if len(out) == 0 {
		return []string{word}
	}
	return out
}

// WrapLinePreserveSpaces 按字符切分且保留空白，用于预格式化内容（代码块等）。
func WrapLinePreserveSpaces(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	out := []string{}
	current := []rune{}
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
			w = 0
		}
		current = append(current, r)
		w += rw
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	if len(out) == 0 {
		return []string{line}
	}
	return out
}

// WrapSpans 在保持样式的前提下对单个逻辑行换行。
// NoWrap 行按字符切分（保留空白），普通行按词切分。
// width <= 0 时原样返回单行。
func WrapSpans(line Line, width int) []Line {
	if width <= 0 {
		return []Line{line}
	}
	if line.NoWrap {
		return wrapSpansPreserve(line, width)
	}
	return wrapSpansWords(line, width)
}

type styledWord struct {
	text  string
	style lipgloss.Style
	url   string
	w     int
}

func wrapSpansWords(line Line, width int) []Line {
	// 行首缩进（嵌套列表、引用内缩进）要在每个折行上保留。
	indent := leadingWhitespace(line.Text())
	indentW := runewidth.StringWidth(indent)
	if indentW >= width {
		indent = ""
		indentW = 0
	}
	avail := width - indentW

	words := []styledWord{}
	for _, sp := range line.Spans {
		for _, word := range strings.Fields(sp.Text) {
			words = append(words, styledWord{text: word, style: sp.Style, url: sp.URL, w: runewidth.StringWidth(word)})
		}
	}
	if len(words) == 0 {
		return []Line{{Style: line.Style, NoWrap: line.NoWrap}}
	}

	row := func(spans []Span) Line {
		if indent != "" {
			spans = append([]Span{{Text: indent}}, spans...)
		}
		return Line{Spans: spans, Style: line.Style}
	}
	out := []Line{}
	current := []Span{}
	currentW := 0
	flush := func() {
		if len(current) > 0 {
			out = append(out, row(current))
			current = nil
			currentW = 0
		}
	}
	push := func(wd styledWord) {
		if currentW > 0 {
			current = append(current, Span{Text: " "})
			currentW++
		}
		current = append(current, Span{Text: wd.text, Style: wd.style, URL: wd.url})
		currentW += wd.w
	}
	for _, wd := range words {
		if wd.w > avail {
			flush()
			chunks := breakLongWord(wd.text, avail)
			for _, chunk := range chunks[:len(chunks)-1] {
				out = append(out, row([]Span{{Text: chunk, Style: wd.style, URL: wd.url}}))
			}
			last := chunks[len(chunks)-1]
			current = []Span{{Text: last, Style: wd.style, URL: wd.url}}
			currentW = runewidth.StringWidth(last)
			continue
		}
		if currentW > 0 && currentW+1+wd.w > avail {
			flush()
		}
		push(wd)
	}
	flush()
	if len(out) == 0 {
		return []Line{{Style: line.Style}}
	}
	return out
}

func leadingWhitespace(text string) string {
	for i, r := range text {
		if r != ' ' && r != '\t' {
			return text[:i]
		}
	}
	return text
}

func wrapSpansPreserve(line Line, width int) []Line {
	out := []Line{}
	current := []Span{}
	currentW := 0
	pending := strings.Builder{}
	var pendingStyle lipgloss.Style
	pendingURL := ""

	flushPending := func() {
		if pending.Len() > 0 {
			current = append(current, Span{Text: pending.String(), Style: pendingStyle, URL: pendingURL})
			pending.Reset()
		}
	}
	flushRow := func() {
		flushPending()
		out = append(out, Line{Spans: current, Style: line.Style, NoWrap: true})
		current = nil
		currentW = 0
	}

	for _, sp := range line.Spans {
		pendingStyle = sp.Style
		pendingURL = sp.URL
		for _, r := range sp.Text {
			rw := runewidth.RuneWidth(r)
			if currentW+rw > width && currentW > 0 {
				flushRow()
				pendingStyle = sp.Style
				pendingURL = sp.URL
			}
			pending.WriteRune(r)
			currentW += rw
		}
		flushPending()
	}
	if currentW > 0 || len(out) == 0 {
		flushRow()
	}
	return out
}
