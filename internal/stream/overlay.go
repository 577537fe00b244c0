package stream

import (
	"strings"
	"sync"

	"ripple-cli/internal/display"
	"ripple-cli/internal/tui/render"
)

// Overlay 为每个通道维护最近若干行的纯文本滚动预览。
// ring 永远从当前完整缓冲重算，不做增量 diff，保证即使 update 与渲染
// 乱序到达也不会偏离缓冲真实状态。重算只看缓冲尾部，代价 O(tail)。
type Overlay struct {
	mu    sync.Mutex
	ctrl  *display.Controller
	rings [numChannels][]string
}

// NewOverlay 创建绑定到共享显示配置的 Overlay。
func NewOverlay(ctrl *display.Controller) *Overlay {
	return &Overlay{ctrl: ctrl}
}

// Update 用通道当前的完整缓冲内容重算 ring。
// ring 容量始终等于当前 LiveRows；LiveRows 减小在这里生效。
func (o *Overlay) Update(ch Channel, fullText string) {
	if o == nil || !ch.Valid() {
		return
	}
	cfg := o.ctrl.Snapshot()
	tail := tailAfterNewlines(fullText, cfg.LiveRows)
	rows := render.WrapText(tail, cfg.MaxCols)
	if len(rows) > cfg.LiveRows {
		rows = rows[len(rows)-cfg.LiveRows:]
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.rings[ch] = append([]string(nil), rows...)
}

// Rows 返回通道 ring 的拷贝（最旧行在前）。
func (o *Overlay) Rows(ch Channel) []string {
	if o == nil || !ch.Valid() {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.rings[ch]...)
}

// Clear 清空通道的 ring。finalize 后立即调用。
func (o *Overlay) Clear(ch Channel) {
	if o == nil || !ch.Valid() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rings[ch] = nil
}

// tailAfterNewlines 返回从倒数第 n 个换行之后开始的尾部。
// 在换行边界截断不影响末尾行的 wrap 结果，但把每次 delta 的重算
// 代价限制在缓冲尾部。
func tailAfterNewlines(text string, n int) string {
	idx := len(text)
	for i := 0; i < n; i++ {
		cut := strings.LastIndex(text[:idx], "\n")
		if cut < 0 {
			return text
		}
		idx = cut
	}
	return text[idx+1:]
}
