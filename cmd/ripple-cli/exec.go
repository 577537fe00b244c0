package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"ripple-cli/internal/config"
	"ripple-cli/internal/events"
	"ripple-cli/internal/repl"
)

// execMain 是非交互模式：stdin 上的 JSONL 事件流进管线，
// 完成的 cell 作为不可变 block 写到 stdout 的自然滚动缓冲。
// stdin 是 TTY 时播放内置演示序列。
func execMain(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	var configOverrides stringSlice
	fs.Var(&configOverrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse exec args: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, configOverrides)

	ctrl := buildController(cfg)
	sink := repl.NewScrollback(repl.ScrollbackOptions{Writer: os.Stdout, Controller: ctrl})
	pipeline := repl.NewPipeline(repl.Options{
		Controller: ctrl,
		FileOpener: cfg.FileOpener,
		Workdir:    resolveWorkdir(cfg.Workdir),
		Sink:       sink,
	})

	if stdinIsTTY() {
		for _, evt := range demoEvents() {
			pipeline.Handle(evt)
		}
		return
	}
	if err := handleJSONL(os.Stdin, pipeline.Handle); err != nil {
		log.Fatalf("event stream failed: %v", err)
	}
}

// handleJSONL 逐行解码事件并交给 handle。空行跳过，坏行报错中止：
// 事件顺序是管线的契约，跳过坏行会静默破坏它。
func handleJSONL(r io.Reader, handle func(events.Event)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var evt events.Event
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		handle(evt)
	}
	return scanner.Err()
}

func publishJSONL(r io.Reader, bus *events.Bus) error {
	return handleJSONL(r, bus.Publish)
}

func publishDemo(bus *events.Bus) {
	for _, evt := range demoEvents() {
		bus.Publish(evt)
	}
}
