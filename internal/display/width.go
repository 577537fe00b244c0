// Package display 持有运行期显示参数的唯一来源。
// 所有消费方（wrapper、overlay、finalizer、history）都通过 Controller 读取，
// 不允许各自保存私有宽度常量。
package display

import (
	"fmt"
	"sync"
)

// DefaultLiveRows 是 live overlay 的默认行数。
const DefaultLiveRows = 3

// WidthConfig 是单一共享的显示配置值。
// MaxCols == 0 表示未设置宽度（soft-wrap 模式，换行交给真正持有视口宽度的一方）。
type WidthConfig struct {
	MaxCols  int
	LiveRows int
}

// Unconstrained 返回 MaxCols 是否未设置。
func (c WidthConfig) Unconstrained() bool {
	return c.MaxCols <= 0
}

// Controller 序列化对 WidthConfig 的读写。
// 配置变更可能与流式输出交错到达；变更在下一次 update/render 调用时生效。
type Controller struct {
	mu  sync.Mutex
	cfg WidthConfig
}

// NewController 以默认配置创建 Controller。
func NewController() *Controller {
	return &Controller{cfg: WidthConfig{LiveRows: DefaultLiveRows}}
}

// Set 校验并替换配置。非法值（liveRows <= 0、maxCols <= 0）被拒绝，
// 之前的有效配置保持不变。取消宽度约束用 SetSoftWrap。
func (c *Controller) Set(maxCols, liveRows int) error {
	if c == nil {
		return fmt.Errorf("display controller is nil")
	}
	if liveRows <= 0 {
		return fmt.Errorf("live rows must be positive, got %d", liveRows)
	}
	if maxCols <= 0 {
		return fmt.Errorf("max cols must be positive, got %d", maxCols)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = WidthConfig{MaxCols: maxCols, LiveRows: liveRows}
	return nil
}

// SetLiveRows 仅调整 overlay 行数。减小时 ring 在下一次 update 截断，
// 不做 eager 重算。
func (c *Controller) SetLiveRows(liveRows int) error {
	if c == nil {
		return fmt.Errorf("display controller is nil")
	}
	if liveRows <= 0 {
		return fmt.Errorf("live rows must be positive, got %d", liveRows)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.LiveRows = liveRows
	return nil
}

// SetSoftWrap 强制取消宽度约束（unset），保留现有 LiveRows。
func (c *Controller) SetSoftWrap() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.MaxCols = 0
}

// Snapshot 返回当前配置的拷贝。
func (c *Controller) Snapshot() WidthConfig {
	if c == nil {
		return WidthConfig{LiveRows: DefaultLiveRows}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}
