package main

import "ripple-cli/internal/events"

// demoEvents 是 stdin 为 TTY 时的演示序列：
// 两个通道交错流入，覆盖标题、强调、代码块、列表和引用标记。
func demoEvents() []events.Event {
	return []events.Event{
		events.Delta("reasoning", "The user wants a quick tour. "),
		events.Delta("reasoning", "Stream a short markdown answer with a code fence\nand a file citation."),
		events.Delta("answer", "## Welcome\n\n"),
		events.Delta("answer", "This transcript is built **incrementally**: deltas land in a plain "),
		events.Delta("answer", "live preview, and each finished message is re-rendered with full "),
		events.Delta("answer", "*markdown* styling.\n\n"),
		events.Delta("answer", "- styled history, re-wrapped on resize\n"),
		events.Delta("answer", "- syntax-highlighted fences\n\n"),
		events.Delta("answer", "```go\nfunc greet(name string) string {\n\treturn \"hello, \" + name\n}\n```\n\n"),
		events.Delta("answer", "The entrypoint lives in 【F:cmd/ripple-cli/main.go†L1-L20】."),
		events.Done("reasoning"),
		events.Done("answer"),
	}
}
