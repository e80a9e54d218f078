package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/layout"
)

func newTestPad(t *testing.T) (*pad, *layout.Live) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	cfg = nil
	live := layout.NewLive(layout.Sample())
	return newPad(screen, live, time.Millisecond), live
}

func typeRunes(p *pad, runes string) {
	for _, r := range runes {
		p.handle(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func historyContains(p *pad, want string) bool {
	for _, line := range p.history {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestPad_Chord(t *testing.T) {
	p, _ := newTestPad(t)
	ctx := context.Background()

	typeRunes(p, "d")
	if p.held != chord.MustParse("__v_") {
		t.Fatalf("held = %v, want __v_", p.held)
	}
	p.step(ctx)
	typeRunes(p, " ")
	if p.held != 0 {
		t.Fatalf("held = %v after space, want ____", p.held)
	}
	p.step(ctx)

	if !historyContains(p, "KeyHit(E)") {
		t.Errorf("history = %q, want KeyHit(E)", p.history)
	}
	if !historyContains(p, "keyboard 00 00 08") {
		t.Errorf("history = %q, want E press report", p.history)
	}
	p.draw()
	if p.dirty {
		t.Error("dirty after draw")
	}
}

func TestPad_Toggle(t *testing.T) {
	p, _ := newTestPad(t)
	typeRunes(p, "qaq")
	if p.held != chord.MustParse("v___") {
		t.Errorf("held = %v, want v___", p.held)
	}
	typeRunes(p, "x")
	if p.held != chord.MustParse("v___") {
		t.Errorf("unmapped key changed held to %v", p.held)
	}
}

func TestPad_ResetAndQuit(t *testing.T) {
	p, _ := newTestPad(t)
	ctx := context.Background()

	typeRunes(p, "dr")
	p.step(ctx)
	if p.engine.State().Most == 0 {
		t.Fatal("chord not accumulated")
	}
	p.handle(ctx, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if p.held != 0 || p.engine.State().Most != 0 {
		t.Errorf("backspace left held=%v most=%v", p.held, p.engine.State().Most)
	}
	if p.handle(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("handle(Esc) = true, want false")
	}
}

func TestPad_Reload(t *testing.T) {
	p, live := newTestPad(t)
	ctx := context.Background()

	typeRunes(p, "d")
	p.step(ctx)
	live.Store(layout.Sample())
	typeRunes(p, " ")
	p.step(ctx)

	if historyContains(p, "KeyHit") {
		t.Errorf("chord begun before reload resolved: %q", p.history)
	}
	if p.engine.State().Most != 0 {
		t.Errorf("Most = %v after reload, want ____", p.engine.State().Most)
	}
}

func TestPad_PollStops(t *testing.T) {
	p, _ := newTestPad(t)
	screen := p.screen.(tcell.SimulationScreen)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)

	events := make(chan tcell.Event) // never read
	done := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		p.poll(events, done)
		close(returned)
	}()
	close(done)

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("poll blocked on an unread event after done was closed")
	}
}

func TestPad_RunQuit(t *testing.T) {
	p, _ := newTestPad(t)
	screen := p.screen.(tcell.SimulationScreen)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.run(ctx, nil); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if ctx.Err() != nil {
		t.Error("run() did not return on Esc")
	}
	if p.held != chord.MustParse("__v_") {
		t.Errorf("held = %v, want __v_", p.held)
	}
}

func TestPad_Reloaded(t *testing.T) {
	p, _ := newTestPad(t)
	p.status = "reload failed: boom"
	p.reloaded(2)
	p.reloaded(3) // dropped while the first is pending

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.run(ctx, nil); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if !historyContains(p, "generation 2") {
		t.Errorf("history = %q, want reload line", p.history)
	}
	if p.status != "" {
		t.Errorf("status = %q after reload, want cleared", p.status)
	}
}

func TestPad_DrawDragging(t *testing.T) {
	p, _ := newTestPad(t)
	ctx := context.Background()
	if err := p.loop.Dispatcher.Dispatch(ctx, chord.Hit(chord.MouseLeftDragToggle)); err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}
	p.draw()

	screen := p.screen.(tcell.SimulationScreen)
	cells, w, _ := screen.GetContents()
	var top strings.Builder
	for x := 0; x < w; x++ {
		for _, r := range cells[x].Runes {
			top.WriteRune(r)
		}
	}
	if !strings.Contains(top.String(), "dragging") {
		t.Errorf("status line = %q, want dragging", top.String())
	}
}
