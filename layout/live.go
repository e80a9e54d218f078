package layout

import (
	"sync/atomic"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/pkg"
)

// Live holds the current table of a running keyboard. Lookups read the
// table with a single atomic load, so [Live.Store] may swap tables while
// the scan loop is resolving chords.
//
// Each Store increments the generation. A scan loop that observes a new
// generation should reset its engine, since layer IDs and unchorded keys of
// the old table may not exist in the new one.
type Live struct {
	table      atomic.Pointer[Table]
	generation atomic.Uint64
}

// NewLive returns a holder serving t.
func NewLive(t *Table) *Live {
	l := &Live{}
	l.Store(t)
	return l
}

// Load returns the current table.
func (l *Live) Load() *Table {
	return l.table.Load()
}

// Store replaces the current table and returns the new generation. A nil
// table is replaced by an empty one.
func (l *Live) Store(t *Table) uint64 {
	if t == nil {
		t = NewTable()
	}
	l.table.Store(t)
	gen := l.generation.Add(1)
	pkg.LogInfo(pkg.ComponentLayout, "layout loaded",
		"layers", t.Len(), "generation", gen)
	return gen
}

// Generation returns the number of tables stored so far.
func (l *Live) Generation() uint64 {
	return l.generation.Load()
}

// Lookup implements [chord.Lookup].
func (l *Live) Lookup(layer chord.Layer, c chord.SwitchSet) (chord.Action, bool) {
	return l.Load().Lookup(layer, c)
}

// Info implements [chord.UnchordedLookup].
func (l *Live) Info(layer chord.Layer) chord.LayerInfo {
	return l.Load().Info(layer)
}

// UnchordedKey implements [chord.UnchordedLookup].
func (l *Live) UnchordedKey(layer chord.Layer, single chord.SwitchSet) (chord.Key, bool) {
	return l.Load().UnchordedKey(layer, single)
}

var _ chord.UnchordedLookup = (*Live)(nil)
