// Package stream 维护每个通道的流式缓冲与 live overlay 预览。
// 两个通道（answer/reasoning）互相独立：各自持有 append-only 缓冲和
// overlay 槽位，finalize 时原子清空。
package stream

// Channel 标识一条独立的 token 流。
type Channel int

const (
	// ChannelAnswer 是助手的正式回答流。
	ChannelAnswer Channel = iota
	// ChannelReasoning 是助手的推理过程流。
	ChannelReasoning

	numChannels
)

// Channels 按固定顺序列出全部通道。
var Channels = []Channel{ChannelAnswer, ChannelReasoning}

func (c Channel) String() string {
	switch c {
	case ChannelAnswer:
		return "answer"
	case ChannelReasoning:
		return "reasoning"
	default:
		return "unknown"
	}
}

// Valid 返回通道是否在已知范围内。
func (c Channel) Valid() bool {
	return c >= 0 && c < numChannels
}

// ParseChannel 从事件里的字符串标识解析通道。
func ParseChannel(s string) (Channel, bool) {
	switch s {
	case "answer":
		return ChannelAnswer, true
	case "reasoning":
		return ChannelReasoning, true
	default:
		return 0, false
	}
}
