package tui

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ripple-cli/internal/events"
	"ripple-cli/internal/repl"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func newTestModel() *Model {
	m := New(Options{Pipeline: repl.NewPipeline(repl.Options{})})
	m.copyText = func(string) error { return nil }
	return m
}

func feed(m *Model, evts ...events.Event) {
	for _, evt := range evts {
		m.Update(pipelineEventMsg{Event: evt, OK: true})
	}
}

func TestModelRendersFinalizedAnswer(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	feed(m,
		events.Delta("answer", "Hello, "),
		events.Delta("answer", "**world**"),
		events.Done("answer"),
	)

	view := stripANSI(m.View())
	if !strings.Contains(view, "answer") {
		t.Fatalf("header missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Hello, world") {
		t.Fatalf("finalized text missing from view:\n%s", view)
	}
}

func TestModelOverlayShownWhileStreaming(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	feed(m, events.Delta("reasoning", "thinking hard"))

	if overlay := stripANSI(m.renderOverlay()); !strings.Contains(overlay, "thinking hard") {
		t.Fatalf("live rows missing from overlay: %q", overlay)
	}

	feed(m, events.Done("reasoning"))
	if overlay := m.renderOverlay(); overlay != "" {
		t.Fatalf("overlay should clear after finalize, got %q", overlay)
	}
}

func TestModelCopyAnswer(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m.copyLastAnswer()
	if m.notice != "nothing to copy yet" {
		t.Fatalf("empty copy notice = %q", m.notice)
	}

	feed(m, events.Delta("answer", "final text"), events.Done("answer"))
	m.copyLastAnswer()
	if copied != "final text" {
		t.Fatalf("copied %q want %q", copied, "final text")
	}
	if m.notice != "answer copied" {
		t.Fatalf("copy notice = %q", m.notice)
	}
}

func TestModelResizeUpdatesSharedWidth(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 42, Height: 20})

	cfg := m.pipeline.Controller().Snapshot()
	if cfg.MaxCols != 42 {
		t.Fatalf("MaxCols = %d want 42", cfg.MaxCols)
	}
	if m.viewport.Width != 42 {
		t.Fatalf("viewport width = %d want 42", m.viewport.Width)
	}
}
