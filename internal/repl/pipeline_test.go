package repl

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"ripple-cli/internal/display"
	"ripple-cli/internal/events"
	"ripple-cli/internal/history"
	"ripple-cli/internal/stream"
	tuirender "ripple-cli/internal/tui/render"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;[^\x1b]*\x1b\\`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func renderPlain(store *history.Store, width int) string {
	return strings.Join(tuirender.LinesToText(store.Render(width)), "\n")
}

func TestPipelineDeltaConcatenationReachesRenderer(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	for _, d := range []string{"incremental ", "terminal ", "rendering"} {
		p.Handle(events.Delta("answer", d))
	}
	p.Handle(events.Done("answer"))

	out := renderPlain(p.Store(), 0)
	if !strings.Contains(out, "incremental terminal rendering") {
		t.Fatalf("deltas not concatenated in arrival order:\n%s", out)
	}
}

func TestPipelineEmptyFinalizeIsNoOp(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	p.Handle(events.Done("answer"))
	if n := p.Store().Len(); n != 0 {
		t.Fatalf("empty finalize inserted %d cells", n)
	}

	// 仅空白也按空处理。
	p.Handle(events.Delta("reasoning", "   \n\t"))
	p.Handle(events.Done("reasoning"))
	if n := p.Store().Len(); n != 0 {
		t.Fatalf("whitespace finalize inserted %d cells", n)
	}

	// 双重 finalize 同样是 no-op。
	p.Handle(events.Delta("answer", "real content"))
	p.Handle(events.Done("answer"))
	p.Handle(events.Done("answer"))
	if n := p.Store().Len(); n != 3 {
		t.Fatalf("expected exactly one header+block+spacer group, got %d cells", n)
	}
}

func TestPipelineHeaderBlockAdjacency(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	p.Append(stream.ChannelAnswer, "the answer text")
	p.Append(stream.ChannelReasoning, "the reasoning text")
	p.Finalize(stream.ChannelReasoning)
	p.Finalize(stream.ChannelAnswer)

	assertGroupsContiguous(t, p.Store())
}

func TestPipelineInterleavedFinalizeStaysContiguous(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	for i := 0; i < 8; i++ {
		p.Append(stream.ChannelAnswer, "answer chunk ")
		p.Append(stream.ChannelReasoning, "reasoning chunk ")
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Finalize(stream.ChannelAnswer)
		}()
		go func() {
			defer wg.Done()
			p.Finalize(stream.ChannelReasoning)
		}()
		wg.Wait()
	}
	assertGroupsContiguous(t, p.Store())
}

func assertGroupsContiguous(t *testing.T, store *history.Store) {
	t.Helper()
	cells := store.Cells()
	for i := 0; i < len(cells); i += 3 {
		header, ok := cells[i].(HeaderCell)
		if !ok {
			t.Fatalf("cell %d: expected HeaderCell, got %T", i, cells[i])
		}
		block, ok := cells[i+1].(FormattedCell)
		if !ok {
			t.Fatalf("cell %d: expected FormattedCell, got %T", i+1, cells[i+1])
		}
		if header.Channel() != block.Channel() {
			t.Fatalf("cell %d: header channel %v does not match block channel %v",
				i, header.Channel(), block.Channel())
		}
		if _, ok := cells[i+2].(SpacerCell); !ok {
			t.Fatalf("cell %d: expected SpacerCell, got %T", i+2, cells[i+2])
		}
	}
}

func TestPipelineOverlayLifecycle(t *testing.T) {
	t.Parallel()

	ctrl := display.NewController()
	if err := ctrl.Set(20, 3); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p := NewPipeline(Options{Controller: ctrl})

	p.Append(stream.ChannelAnswer, "streaming preview text")
	if rows := p.OverlayRows(stream.ChannelAnswer); len(rows) == 0 {
		t.Fatalf("expected overlay rows during streaming")
	}
	p.Finalize(stream.ChannelAnswer)
	if rows := p.OverlayRows(stream.ChannelAnswer); len(rows) != 0 {
		t.Fatalf("overlay not cleared after finalize: %v", rows)
	}
	if n := p.Store().Len(); n != 3 {
		t.Fatalf("expected 3 cells after finalize, got %d", n)
	}
}

func TestPipelineCitationRewriteWithOpener(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{FileOpener: "vscode://file"})
	p.Append(stream.ChannelAnswer, "see 【F:src/app.rs†L10-L20】 here")
	p.Finalize(stream.ChannelAnswer)

	var found bool
	for _, line := range p.Store().Render(0) {
		for _, sp := range line.Spans {
			if sp.URL == "vscode://filesrc/app.rs:10" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected rewritten citation link in history")
	}
}

func TestPipelineCitationLiteralWithoutOpener(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	p.Append(stream.ChannelAnswer, "see 【F:src/app.rs†L10-L20】 here")
	p.Finalize(stream.ChannelAnswer)

	out := renderPlain(p.Store(), 0)
	if !strings.Contains(out, "【F:src/app.rs†L10-L20】") {
		t.Fatalf("marker should stay literal without opener:\n%s", out)
	}
}

func TestPipelineRenderRewrapsOnResize(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	p.Append(stream.ChannelAnswer, "a reasonably long answer that will wrap differently at different widths")
	p.Finalize(stream.ChannelAnswer)

	narrow := p.Store().Render(20)
	wide := p.Store().Render(200)
	if len(narrow) <= len(wide) {
		t.Fatalf("narrow render should produce more rows: narrow=%d wide=%d", len(narrow), len(wide))
	}
	// 不同宽度渲染的是同一份不可变内容。
	joinRows := func(lines []tuirender.Line) string {
		words := strings.Fields(strings.Join(tuirender.LinesToText(lines), " "))
		return strings.Join(words, " ")
	}
	if joinRows(narrow) != joinRows(wide) {
		t.Fatalf("content diverged across widths:\n%q\n%q", joinRows(narrow), joinRows(wide))
	}
}

func TestPipelineScrollbackSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctrl := display.NewController()
	if err := ctrl.Set(60, 3); err != nil {
		t.Fatalf("Set: %v", err)
	}
	sink := NewScrollback(ScrollbackOptions{Writer: &buf, Controller: ctrl})
	p := NewPipeline(Options{Controller: ctrl, Sink: sink})

	p.Handle(events.Delta("answer", "hello world"))
	p.Handle(events.Done("answer"))

	out := stripANSI(buf.String())
	if !strings.Contains(out, "answer") {
		t.Fatalf("expected channel header in scrollback:\n%s", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Fatalf("expected finalized content in scrollback:\n%s", out)
	}
}

func TestPipelineLastAnswer(t *testing.T) {
	t.Parallel()

	p := NewPipeline(Options{})
	p.Append(stream.ChannelAnswer, "copy me")
	p.Finalize(stream.ChannelAnswer)
	if got := p.LastAnswer(); got != "copy me" {
		t.Fatalf("LastAnswer = %q", got)
	}
}
