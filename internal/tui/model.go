// Package tui 提供一个消费渲染管线的 Bubble Tea 界面：
// viewport 展示历史（按当前宽度惰性重排），下方是两个通道的 live overlay。
// 它只是管线的一个消费者，可被其他画面循环替换。
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ripple-cli/internal/events"
	"ripple-cli/internal/repl"
	"ripple-cli/internal/stream"
	"ripple-cli/internal/tui/render"
)

// Options 配置 TUI。
type Options struct {
	Pipeline *repl.Pipeline
	Events   *events.Bus
}

type pipelineEventMsg struct {
	Event events.Event
	OK    bool
}

type Model struct {
	pipeline *repl.Pipeline
	sub      <-chan events.Event
	viewport viewport.Model
	spin     spinner.Model

	width  int
	height int
	notice string
	done   bool

	// copyText 在测试里替换，默认写系统剪贴板。
	copyText func(string) error

	transcriptDirty bool
}

func New(opts Options) *Model {
	vp := viewport.New(80, 20)
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := Model{
		pipeline:        opts.Pipeline,
		viewport:        vp,
		spin:            spin,
		width:           80,
		height:          24,
		copyText:        clipboard.WriteAll,
		transcriptDirty: true,
	}
	if opts.Events != nil {
		m.sub = opts.Events.Subscribe()
	}
	return &m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if cmd := m.listenEvents(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.finish(cmds...)
	case pipelineEventMsg:
		if !msg.OK {
			// 事件源关闭：不再续订，界面保持最终状态。
			m.done = true
			m.refreshTranscript()
			return m.finish(cmds...)
		}
		m.handleEvent(msg.Event)
		cmds = append(cmds, m.listenEvents())
		return m.finish(cmds...)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		return m.finish(cmds...)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			cmds = append(cmds, tea.Quit)
			return m.finish(cmds...)
		case "y":
			m.copyLastAnswer()
			return m.finish(cmds...)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m.finish(cmds...)
}

func (m *Model) finish(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	if m.transcriptDirty {
		m.flushTranscript()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	body := m.viewport.View()
	overlay := m.renderOverlay()
	status := m.renderStatus()
	if overlay != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, overlay, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m *Model) listenEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-m.sub
		return pipelineEventMsg{Event: evt, OK: ok}
	}
}

func (m *Model) handleEvent(evt events.Event) {
	m.pipeline.Handle(evt)
	m.notice = ""
	m.refreshTranscript()
}

func (m *Model) copyLastAnswer() {
	text := m.pipeline.LastAnswer()
	if text == "" {
		m.notice = "nothing to copy yet"
		return
	}
	if err := m.copyText(text); err != nil {
		m.notice = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.notice = "answer copied"
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// 历史按终端宽度重排；overlay 走共享宽度配置。
	if width > 0 {
		rows := m.pipeline.Controller().Snapshot().LiveRows
		_ = m.pipeline.Controller().Set(width, rows)
	}

	overlayHeight := lipgloss.Height(m.renderOverlay())
	statusHeight := 1
	bodyHeight := height - overlayHeight - statusHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	m.transcriptDirty = true
}

func (m *Model) flushTranscript() {
	m.transcriptDirty = false
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.transcript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) transcript() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	lines := m.pipeline.Store().Render(width)
	if len(lines) == 0 {
		return "Waiting for the first response…"
	}
	return strings.Join(render.LinesToStrings(lines), "\n")
}

var overlayStyle = lipgloss.NewStyle().Faint(true)

// renderOverlay 渲染仍在流入的通道的 live 行：无格式、带 spinner。
func (m *Model) renderOverlay() string {
	var sections []string
	for _, ch := range []stream.Channel{stream.ChannelReasoning, stream.ChannelAnswer} {
		rows := m.pipeline.OverlayRows(ch)
		if len(rows) == 0 {
			continue
		}
		head := m.spin.View() + " " + ch.String()
		body := overlayStyle.Render(strings.Join(rows, "\n"))
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, head, body))
	}
	return strings.Join(sections, "\n")
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85")).Padding(0, 1)

func (m *Model) renderStatus() string {
	parts := []string{"y copy answer", "q quit"}
	if m.done {
		parts = append([]string{"stream closed"}, parts...)
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	return statusStyle.Width(maxInt(20, m.width)).Render(strings.Join(parts, " • "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
