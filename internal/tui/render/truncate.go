package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Truncate 将文本截断到 maxWidth 显示宽度以内。
// 优先在词边界截断，避免拦腰切词；仅在实际发生截断时追加省略号。
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	budget := maxWidth - runewidth.StringWidth(ellipsis)
	if budget <= 0 {
		return ellipsis
	}

	kept := []rune{}
	w := 0
	lastBoundary := -1
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if w+rw > budget {
			break
		}
		if unicode.IsSpace(r) {
			lastBoundary = len(kept)
		}
		kept = append(kept, r)
		w += rw
	}
	if lastBoundary > 0 {
		kept = kept[:lastBoundary]
	}
	out := strings.TrimRight(string(kept), " \t")
	if out == "" {
		// 单个超长词：退化为硬截断。
		return string(keptPrefix(text, budget)) + ellipsis
	}
	return out + ellipsis
}

func keptPrefix(text string, budget int) []rune {
	kept := []rune{}
	w := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if w+rw > budget {
			break
		}
		kept = append(kept, r)
		w += rw
	}
	return kept
}
