// Package repl 把流式事件装配成显示历史：
// delta 进入累积缓冲并刷新 live overlay（便宜、无格式），
// done 触发 finalize，把完整文本一次性转成富格式的不可变 cell 组。
package repl

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"ripple-cli/internal/display"
	"ripple-cli/internal/events"
	"ripple-cli/internal/history"
	"ripple-cli/internal/logger"
	"ripple-cli/internal/markdown"
	"ripple-cli/internal/stream"
)

// Pipeline 是渲染管线的装配点。
// delta 热路径保持 O(tail)：markdown 解析、引用改写、语法着色
// 全部推迟到 finalize。
type Pipeline struct {
	// mu 序列化 finalize：一个通道的 header+block+spacer 完整落位后，
	// 另一个通道的 finalize 才能开始。
	mu sync.Mutex

	sessionID string
	ctrl      *display.Controller
	acc       *stream.Accumulator
	overlay   *stream.Overlay
	store     *history.Store
	mdOpts    markdown.Options
	sink      *Scrollback
	log       *logger.LogEntry

	lastAnswer string
}

// Options 配置 Pipeline。
type Options struct {
	Controller *display.Controller
	Store      *history.Store
	// FileOpener 是引用链接的 URI 前缀（如 vscode://file），为空不改写。
	FileOpener string
	// Workdir 用于解析相对引用路径。
	Workdir string
	// Sink 可选：finalize 后把新 cell 写入 scrollback（exec 模式）。
	Sink *Scrollback
}

// NewPipeline 创建管线。Controller/Store 为 nil 时使用新实例。
func NewPipeline(opts Options) *Pipeline {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = display.NewController()
	}
	store := opts.Store
	if store == nil {
		store = history.NewStore()
	}
	return &Pipeline{
		sessionID: uuid.NewString(),
		ctrl:      ctrl,
		acc:       stream.NewAccumulator(),
		overlay:   stream.NewOverlay(ctrl),
		store:     store,
		mdOpts:    markdown.Options{FileOpener: opts.FileOpener, Workdir: opts.Workdir},
		sink:      opts.Sink,
		log:       logger.Named("pipeline"),
	}
}

// SessionID 返回本次会话的标识。
func (p *Pipeline) SessionID() string {
	if p == nil {
		return ""
	}
	return p.sessionID
}

// Store 返回管线写入的历史存储。
func (p *Pipeline) Store() *history.Store {
	if p == nil {
		return nil
	}
	return p.store
}

// Controller 返回共享的显示配置。
func (p *Pipeline) Controller() *display.Controller {
	if p == nil {
		return nil
	}
	return p.ctrl
}

// OverlayRows 返回通道 live overlay 的当前行。
func (p *Pipeline) OverlayRows(ch stream.Channel) []string {
	if p == nil {
		return nil
	}
	return p.overlay.Rows(ch)
}

// LastAnswer 返回最近一次 finalize 的 answer 原文（剪贴板复制用）。
func (p *Pipeline) LastAnswer() string {
	if p == nil {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAnswer
}

// Handle 消费一个事件。未知通道或类型直接忽略。
func (p *Pipeline) Handle(evt events.Event) {
	if p == nil {
		return
	}
	ch, ok := stream.ParseChannel(evt.Channel)
	if !ok {
		p.log.WithField("channel", evt.Channel).Warn("unknown channel, event dropped")
		return
	}
	switch evt.Type {
	case events.EventChannelDelta:
		p.Append(ch, evt.Delta)
	case events.EventChannelDone:
		p.Finalize(ch)
	}
}

// Append 追加一个 delta 并用完整缓冲刷新 overlay。
func (p *Pipeline) Append(ch stream.Channel, delta string) {
	if p == nil || delta == "" {
		return
	}
	full := p.acc.Append(ch, delta)
	p.overlay.Update(ch, full)
}

// Finalize 结束一个通道的流：取出缓冲、富格式化、以原子组追加
// header + block + spacer，然后清空 overlay。
// 空缓冲（含重复 finalize、仅空白）是 no-op：不写历史、不出 header。
func (p *Pipeline) Finalize(ch stream.Channel) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	text := p.acc.Finalize(ch)
	if strings.TrimSpace(text) == "" {
		p.overlay.Clear(ch)
		return
	}

	lines := markdown.Render(text, p.mdOpts)
	header := NewHeaderCell(ch)
	block := NewFormattedCell(ch, lines)
	spacer := SpacerCell{}

	p.store.Append(header, block, spacer)
	p.overlay.Clear(ch)

	if ch == stream.ChannelAnswer {
		p.lastAnswer = text
	}
	if p.sink != nil {
		p.sink.AppendCells(header, block, spacer)
	}
	p.log.WithField("session", p.sessionID).
		WithField("channel", ch.String()).
		WithField("bytes", len(text)).
		Debug("channel finalized")
}
