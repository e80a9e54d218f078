package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/driver"
	"github.com/ardnew/chordkb/hid"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/layout/file"
	"github.com/ardnew/chordkb/pkg"
)

var (
	padWatch    bool
	padDebounce time.Duration
)

var padCmd = &cobra.Command{
	Use:   "pad",
	Short: "Chord interactively in the terminal",
	Long: `Open a terminal chord pad. Terminals report key presses but not
releases, so each pad key latches its switch until space releases all of
them:

  q w e r   pinky, ring, middle and index tips
  a s d f   pinky, ring, middle and index bases
  space     release every switch
  backspace reset the engine
  esc       quit

With --watch the layout file is reloaded whenever it changes and stays
quiet for the --debounce period.`,
	Args: cobra.NoArgs,
	RunE: runPad,
}

func init() {
	rootCmd.AddCommand(padCmd)

	padCmd.Flags().BoolVarP(&padWatch, "watch", "w", false,
		"reload the layout file when it changes")
	padCmd.Flags().DurationVar(&padDebounce, "debounce", file.DefaultDebounce,
		"quiet period after a layout file change before reloading")
}

// padKeys maps pad keys to switches.
var padKeys = map[rune]chord.SwitchSet{
	'q': 0b10_00_00_00, 'a': 0b01_00_00_00,
	'w': 0b00_10_00_00, 's': 0b00_01_00_00,
	'e': 0b00_00_10_00, 'd': 0b00_00_01_00,
	'r': 0b00_00_00_10, 'f': 0b00_00_00_01,
}

const padHistory = 12

// padFrameInterval bounds how often the pad redraws.
const padFrameInterval = 16 * time.Millisecond

func runPad(cmd *cobra.Command, _ []string) error {
	t, err := loadLayout()
	if err != nil {
		return err
	}
	live := layout.NewLive(t)

	watch := padWatch || cfg.Watch
	if watch && cfg.Layout == "" {
		return fmt.Errorf("--watch requires a layout file")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	p := newPad(screen, live, cfg.ScanInterval)

	var errs <-chan error
	if watch {
		w := file.NewWatcher(cfg.Layout, live)
		w.SetDebounce(padDebounce)
		w.OnReload(p.reloaded)
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Close()
		errs = w.Errors()
	}

	// Log lines would tear the screen; errors surface on the status line.
	prev := pkg.Logger()
	pkg.SetLogger(pkg.NewLogger(io.Discard, nil))
	defer pkg.SetLogger(prev)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return p.run(ctx, errs)
}

type pad struct {
	screen   tcell.Screen
	live     *layout.Live
	engine   *chord.Engine
	loop     *driver.Loop
	rec      hid.Recorder
	interval time.Duration

	held    chord.SwitchSet
	history []string
	status  string
	dirty   bool
	reloads chan uint64
}

func newPad(screen tcell.Screen, live *layout.Live, interval time.Duration) *pad {
	if interval <= 0 {
		interval = driver.DefaultInterval
	}
	p := &pad{
		screen:   screen,
		live:     live,
		engine:   newEngine(live),
		interval: interval,
		dirty:    true,
		reloads:  make(chan uint64, 1),
	}
	p.loop = &driver.Loop{
		Engine:     p.engine,
		Source:     driver.SourceFunc(func() chord.SwitchSet { return p.held }),
		Dispatcher: driver.NewDispatcher(&p.rec),
		Generation: live,
		Observe:    p.observe,
	}
	return p
}

func (p *pad) run(ctx context.Context, errs <-chan error) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go p.poll(events, done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	frame := time.NewTicker(padFrameInterval)
	defer frame.Stop()

	p.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !p.handle(ctx, ev) {
				return nil
			}
		case err := <-errs:
			p.status = fmt.Sprintf("reload failed: %v", err)
			p.dirty = true
		case gen := <-p.reloads:
			p.status = ""
			p.push(fmt.Sprintf("layout reloaded (generation %d)", gen))
		case <-ticker.C:
			p.step(ctx)
		case <-frame.C:
			if p.dirty {
				p.draw()
			}
		}
	}
}

// poll forwards screen events until the screen is finalized or done is
// closed.
func (p *pad) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// reloaded is called by the layout watcher from its own goroutine.
func (p *pad) reloaded(generation uint64) {
	select {
	case p.reloads <- generation:
	default:
	}
}

// handle applies one terminal event and reports whether the pad stays open.
func (p *pad) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			p.held = 0
			p.engine.Reset()
			if err := p.loop.Dispatcher.Reset(ctx); err != nil {
				p.status = err.Error()
			}
			p.rec.Drain()
			p.push("reset")
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				p.held = 0
			} else if sw, ok := padKeys[ev.Rune()]; ok {
				p.held ^= sw
			}
		}
		p.dirty = true
	case *tcell.EventResize:
		p.screen.Sync()
		p.dirty = true
	}
	return true
}

func (p *pad) step(ctx context.Context) {
	if _, err := p.loop.Step(ctx); err != nil {
		p.status = err.Error()
		p.dirty = true
	}
	for _, r := range p.rec.Drain() {
		p.push("    " + r.String())
	}
}

func (p *pad) observe(sw chord.SwitchSet, o chord.Outcome) {
	if o.IsNothing() {
		return
	}
	p.push(fmt.Sprintf("%s  %v", sw, o))
	pkg.LogDebug(pkg.ComponentCLI, "pad outcome", "switches", sw, "outcome", o)
}

func (p *pad) push(line string) {
	p.history = append(p.history, line)
	if n := len(p.history); n > padHistory {
		p.history = p.history[n-padHistory:]
	}
	p.dirty = true
}

var (
	padTitle = tcell.StyleDefault.Bold(true)
	padOn    = tcell.StyleDefault.Reverse(true)
	padDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (p *pad) draw() {
	p.dirty = false
	p.screen.Clear()
	s := p.engine.State()

	layer := fmt.Sprintf("layer %d", s.Layer)
	if def, ok := p.live.Load().Get(s.Layer); ok && def.Name != "" {
		layer += " " + def.Name
	}
	if s.HasTemporaryLayer {
		layer += fmt.Sprintf(" (next %d)", s.TemporaryLayer)
	}
	mouse := "off"
	if p.loop.Dispatcher.MouseEnabled() {
		mouse = "on"
	}
	if p.loop.Dispatcher.Dragging() {
		mouse += " dragging"
	}
	p.text(0, 0, padTitle, "chordkb pad")
	p.text(13, 0, tcell.StyleDefault, fmt.Sprintf("%s  mask %v  temp %v  mouse %s  gen %d",
		layer, s.PlusMask, s.TemporaryPlusMask, mouse, p.live.Generation()))

	p.text(0, 2, padDim, "        pinky  ring  middle  index")
	for row, keys := range [2]string{"qwer", "asdf"} {
		label := "tip "
		if row == 1 {
			label = "base"
		}
		y := 3 + row
		p.text(2, y, padDim, label)
		for col, r := range keys {
			style := tcell.StyleDefault
			if p.held.Has(padKeys[r]) {
				style = padOn
			}
			p.text(9+col*7, y, style, fmt.Sprintf("[%c]", r))
		}
	}
	p.text(2, 6, padDim, "held")
	p.text(9, 6, tcell.StyleDefault, p.held.String())
	p.text(16, 6, padDim, "chord")
	p.text(23, 6, tcell.StyleDefault, s.Most.String())

	kb := p.loop.Dispatcher.Keyboard()
	buf := make([]byte, hid.KeyboardReportSize)
	kb.MarshalTo(buf)
	p.text(2, 7, padDim, "keys")
	p.text(9, 7, tcell.StyleDefault, fmt.Sprintf("% x", buf))

	for i, line := range p.history {
		p.text(0, 9+i, tcell.StyleDefault, line)
	}
	_, h := p.screen.Size()
	if p.status != "" {
		p.text(0, h-2, tcell.StyleDefault.Foreground(tcell.ColorRed), p.status)
	}
	p.text(0, h-1, padDim, "qwer/asdf toggle  space release  backspace reset  esc quit")
	p.screen.Show()
}

func (p *pad) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
