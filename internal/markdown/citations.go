package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// citationRE 匹配形如 【F:src/app.rs†L10-L20】 的引用标记。
// 结束行号可省略（【F:lib/mod.rs†L5】）。不完全匹配的标记保持原样，
// 绝不做部分改写。
var citationRE = regexp.MustCompile(`【F:([^†】]+)†L(\d+)(?:-L(\d+))?】`)

// RewriteCitations 在送入 markdown 渲染之前，把引用标记改写为指向
// file-opener 的 markdown 链接。opener 为空时跳过改写，原文返回。
//
// 生成的 URI 遵循 VS Code 系 opener 的格式：<opener><ABS_PATH>:<LINE>。
// label 带上行号（以及范围）以区分同一文件的相邻引用；链接后补一个
// 空格避免连续引用黏在一起。
func RewriteCitations(src, opener, workdir string) string {
	if opener == "" || !strings.Contains(src, "【F:") {
		return src
	}
	return citationRE.ReplaceAllStringFunc(src, func(match string) string {
		groups := citationRE.FindStringSubmatch(match)
		file := groups[1]
		start := groups[2]
		end := groups[3]

		// 相对路径按 workdir 解析；URI 统一用正斜杠。
		abs := toSlash(file)
		if !path.IsAbs(abs) && workdir != "" {
			abs = path.Join(toSlash(workdir), abs)
		}
		abs = path.Clean(abs)

		lines := start
		if end != "" {
			lines = start + "-" + end
		}
		return fmt.Sprintf("[%s:%s](%s%s:%s) ", file, lines, opener, abs, start)
	})
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
