package main

import (
	"os"
	"path/filepath"
	"strings"

	"ripple-cli/internal/config"
	"ripple-cli/internal/display"
	"ripple-cli/internal/events"
	"ripple-cli/internal/logger"
	"ripple-cli/internal/repl"
	"ripple-cli/internal/tui"
)

var log = logger.Entry()

func main() {
	logger.Configure()

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}

	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, root.overrides)

	if logFile, _, err := logger.SetupFile(cfg.LogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	if len(rest) > 0 {
		switch rest[0] {
		case "exec":
			execMain(cfg, rest[1:])
			return
		}
	}

	runInteractive(cfg)
}

// runInteractive 在 TUI 里消费事件流：管道输入读 JSONL，TTY 则播放内置演示。
func runInteractive(cfg config.Config) {
	ctrl := buildController(cfg)
	pipeline := repl.NewPipeline(repl.Options{
		Controller: ctrl,
		FileOpener: cfg.FileOpener,
		Workdir:    resolveWorkdir(cfg.Workdir),
	})

	bus := events.NewBus()
	model := tui.New(tui.Options{Pipeline: pipeline, Events: bus})

	// 订阅已建立，事件源才能开始发布。
	go func() {
		defer bus.Close()
		if stdinIsTTY() {
			publishDemo(bus)
			return
		}
		if err := publishJSONL(os.Stdin, bus); err != nil {
			log.Warnf("event stream ended with error: %v", err)
		}
	}()

	if err := tui.RunModel(model); err != nil {
		log.Fatalf("program exit: %v", err)
	}
}

// buildController 把文件/覆盖配置装进共享显示配置。
// 非法值按 Controller 的语义拒绝并保留默认。
func buildController(cfg config.Config) *display.Controller {
	ctrl := display.NewController()
	if cfg.LiveRows > 0 {
		if err := ctrl.SetLiveRows(cfg.LiveRows); err != nil {
			log.Warnf("live_rows rejected: %v", err)
		}
	}
	if cfg.SoftWrap {
		ctrl.SetSoftWrap()
		return ctrl
	}
	if cfg.MaxCols > 0 {
		if err := ctrl.Set(cfg.MaxCols, ctrl.Snapshot().LiveRows); err != nil {
			log.Warnf("max_cols rejected: %v", err)
		}
	}
	return ctrl
}

func stdinIsTTY() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func resolveWorkdir(input string) string {
	if strings.TrimSpace(input) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		return wd
	}
	if filepath.IsAbs(input) {
		return input
	}
	wd, err := os.Getwd()
	if err != nil {
		return input
	}
	return filepath.Join(wd, input)
}
