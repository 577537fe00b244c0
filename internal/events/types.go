// Package events 定义渲染管线消费的有序事件流。
// 事件由外部会话引擎产生：每个通道若干 {channel, delta}，
// 以一个 {channel, done} 收尾。
package events

import "time"

// EventType 区分事件变体。
type EventType string

const (
	// EventChannelDelta 携带一个通道的增量文本片段。
	EventChannelDelta EventType = "channel.delta"
	// EventChannelDone 表示通道流结束，触发 finalize。
	EventChannelDone EventType = "channel.done"
)

// Event 是管线消费的唯一消息格式。
type Event struct {
	Type      EventType `json:"type"`
	Channel   string    `json:"channel"`
	Delta     string    `json:"delta,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Delta 构造一个增量事件。
func Delta(channel, text string) Event {
	return Event{Type: EventChannelDelta, Channel: channel, Delta: text, Timestamp: time.Now()}
}

// Done 构造一个通道完成事件。
func Done(channel string) Event {
	return Event{Type: EventChannelDone, Channel: channel, Timestamp: time.Now()}
}
