package events

import "sync"

// Bus 是进程内的简单 pub-sub。
// 与丢弃式总线不同，Publish 会阻塞直到所有订阅者收下事件：
// 渲染管线依赖 delta 的到达顺序，不允许丢事件。
type Bus struct {
	mu     sync.Mutex
	subs   []chan Event
	closed bool
}

// NewBus 创建空总线。
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe 注册一个订阅者。总线关闭后返回已关闭的通道。
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}
	ch := make(chan Event, 64)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish 按订阅顺序投递事件。
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		ch <- evt
	}
}

// Close 关闭所有订阅通道。
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		close(ch)
	}
	b.closed = true
}
