package stream

import (
	"strings"
	"sync"
)

// Accumulator 为每个通道维护 append-only 文本缓冲。
// 同一通道同一时刻只有一个生产者写入；跨线程访问由每通道互斥锁序列化。
type Accumulator struct {
	bufs [numChannels]channelBuffer
}

type channelBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewAccumulator 创建空的 Accumulator。
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append 追加一个 delta，返回追加后的完整缓冲内容（供 overlay 重算）。
func (a *Accumulator) Append(ch Channel, delta string) string {
	if a == nil || !ch.Valid() {
		return ""
	}
	b := &a.bufs[ch]
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteString(delta)
	return b.buf.String()
}

// Text 返回通道当前的完整缓冲内容。
func (a *Accumulator) Text(ch Channel) string {
	if a == nil || !ch.Valid() {
		return ""
	}
	b := &a.bufs[ch]
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Finalize 取出完整缓冲并原子清空。
// 空缓冲（包括重复 finalize）返回空串，调用方必须按 no-op 处理：
// 不写 history、不输出 header。
func (a *Accumulator) Finalize(ch Channel) string {
	if a == nil || !ch.Valid() {
		return ""
	}
	b := &a.bufs[ch]
	b.mu.Lock()
	defer b.mu.Unlock()
	text := b.buf.String()
	b.buf.Reset()
	return text
}
