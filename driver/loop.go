package driver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/pkg"
)

// DefaultInterval is the sampling period of a [Loop].
const DefaultInterval = 2 * time.Millisecond

// Source supplies debounced switch samples.
type Source interface {
	Sample() chord.SwitchSet
}

// SourceFunc adapts a function to [Source].
type SourceFunc func() chord.SwitchSet

// Sample calls f.
func (f SourceFunc) Sample() chord.SwitchSet { return f() }

// Generationer reports a counter that changes whenever the layout behind an
// engine is replaced. [layout.Live] satisfies it.
type Generationer interface {
	Generation() uint64
}

// Loop samples a [Source], feeds the engine and dispatches the outcomes.
type Loop struct {
	Engine     *chord.Engine
	Source     Source
	Dispatcher *Dispatcher

	// Interval is the sampling period; zero means DefaultInterval.
	Interval time.Duration

	// Generation, if set, is polled before every sample. A change resets
	// the engine and the dispatcher.
	Generation Generationer

	// Observe, if set, is called with every sample and its outcome,
	// including Nothing.
	Observe func(chord.SwitchSet, chord.Outcome)

	running atomic.Bool
	seen    uint64
	primed  bool
}

// Run samples until ctx is cancelled and returns ctx.Err(). Dispatch errors
// are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return pkg.ErrAlreadyRunning
	}
	defer l.running.Store(false)

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pkg.LogInfo(pkg.ComponentDriver, "scan loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			pkg.LogInfo(pkg.ComponentDriver, "scan loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := l.Step(ctx); err != nil {
				pkg.LogError(pkg.ComponentDriver, "dispatch failed", "error", err)
			}
		}
	}
}

// Step runs one tick: check the layout generation, take a sample, handle it
// and dispatch the outcome.
func (l *Loop) Step(ctx context.Context) (chord.Outcome, error) {
	if l.Engine == nil || l.Source == nil || l.Dispatcher == nil {
		return chord.Outcome{}, pkg.ErrNotConfigured
	}
	if err := l.checkGeneration(ctx); err != nil {
		return chord.Outcome{}, err
	}

	sample := l.Source.Sample()
	out := l.Engine.Handle(sample)
	if l.Observe != nil {
		l.Observe(sample, out)
	}
	if err := l.Dispatcher.Dispatch(ctx, out); err != nil {
		return out, fmt.Errorf("dispatch %v: %w", out, err)
	}
	return out, nil
}

func (l *Loop) checkGeneration(ctx context.Context) error {
	if l.Generation == nil {
		return nil
	}
	gen := l.Generation.Generation()
	if !l.primed {
		l.seen, l.primed = gen, true
		return nil
	}
	if gen == l.seen {
		return nil
	}
	pkg.LogInfo(pkg.ComponentDriver, "layout changed, resetting engine",
		"from", l.seen, "to", gen)
	l.seen = gen
	l.Engine.Reset()
	if err := l.Dispatcher.Reset(ctx); err != nil {
		return fmt.Errorf("reset dispatcher: %w", err)
	}
	return nil
}
