package layout

import (
	"fmt"
	"slices"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/pkg"
)

// Table is a map-backed keymap. It implements [chord.UnchordedLookup].
//
// A Table is safe for concurrent reads once built. Build it completely
// before handing it to an engine or a [Live] holder.
type Table struct {
	layers map[chord.Layer]*LayerDef
}

// LayerDef is one layer of a [Table].
type LayerDef struct {
	ID            chord.Layer
	Name          string
	UnchordedMask chord.SwitchSet

	order     []chord.SwitchSet
	actions   map[chord.SwitchSet]chord.Action
	unchorded map[chord.SwitchSet]chord.Key
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{layers: make(map[chord.Layer]*LayerDef)}
}

// Layer returns the layer with the given ID, creating it if needed. A
// non-empty name replaces the current one.
func (t *Table) Layer(id chord.Layer, name string) *LayerDef {
	l, ok := t.layers[id]
	if !ok {
		l = &LayerDef{
			ID:        id,
			actions:   make(map[chord.SwitchSet]chord.Action),
			unchorded: make(map[chord.SwitchSet]chord.Key),
		}
		t.layers[id] = l
	}
	if name != "" {
		l.Name = name
	}
	return l
}

// AddLayer creates a layer, failing if the ID is already defined.
func (t *Table) AddLayer(id chord.Layer, name string) (*LayerDef, error) {
	if _, ok := t.layers[id]; ok {
		return nil, fmt.Errorf("%w: %d", pkg.ErrDuplicateLayer, id)
	}
	return t.Layer(id, name), nil
}

// Get returns the layer with the given ID.
func (t *Table) Get(id chord.Layer) (*LayerDef, bool) {
	l, ok := t.layers[id]
	return l, ok
}

// Layers returns all layers ordered by ID.
func (t *Table) Layers() []*LayerDef {
	out := make([]*LayerDef, 0, len(t.layers))
	for _, l := range t.layers {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *LayerDef) int { return int(a.ID) - int(b.ID) })
	return out
}

// Len returns the number of layers.
func (t *Table) Len() int {
	return len(t.layers)
}

// Lookup implements [chord.Lookup].
func (t *Table) Lookup(layer chord.Layer, c chord.SwitchSet) (chord.Action, bool) {
	l, ok := t.layers[layer]
	if !ok {
		return chord.Action{}, false
	}
	a, ok := l.actions[c]
	return a, ok
}

// Info implements [chord.UnchordedLookup].
func (t *Table) Info(layer chord.Layer) chord.LayerInfo {
	l, ok := t.layers[layer]
	if !ok {
		return chord.LayerInfo{}
	}
	return chord.LayerInfo{UnchordedMask: l.UnchordedMask}
}

// UnchordedKey implements [chord.UnchordedLookup].
func (t *Table) UnchordedKey(layer chord.Layer, single chord.SwitchSet) (chord.Key, bool) {
	l, ok := t.layers[layer]
	if !ok {
		return 0, false
	}
	k, ok := l.unchorded[single]
	return k, ok
}

// Bind binds a chord to an action, replacing any previous binding.
func (l *LayerDef) Bind(c chord.SwitchSet, a chord.Action) *LayerDef {
	if _, ok := l.actions[c]; !ok {
		l.order = append(l.order, c)
	}
	l.actions[c] = a
	return l
}

// BindNotation is like [LayerDef.Bind] with the chord in notation form.
// It panics on malformed notation and is intended for static tables.
func (l *LayerDef) BindNotation(notation string, a chord.Action) *LayerDef {
	return l.Bind(chord.MustParse(notation), a)
}

// Default binds the fallback action used for chords without a binding.
func (l *LayerDef) Default(a chord.Action) *LayerDef {
	return l.Bind(0, a)
}

// Unchorded makes the switches of sw unchorded on this layer and binds the
// key of a single switch. A zero key only extends the mask.
func (l *LayerDef) Unchorded(sw chord.SwitchSet, k chord.Key) *LayerDef {
	l.UnchordedMask |= sw
	if k != 0 {
		l.unchorded[sw] = k
	}
	return l
}

// Bindings returns the chord bindings in insertion order.
func (l *LayerDef) Bindings() []chord.Binding {
	out := make([]chord.Binding, 0, len(l.order))
	for _, c := range l.order {
		out = append(out, chord.Binding{Chord: c, Action: l.actions[c]})
	}
	return out
}

// UnchordedKeys returns the unchorded keys ordered from the most
// significant switch.
func (l *LayerDef) UnchordedKeys() []UnchordedBinding {
	out := make([]UnchordedBinding, 0, len(l.unchorded))
	for sw, k := range l.unchorded {
		out = append(out, UnchordedBinding{Switch: sw, Key: k})
	}
	slices.SortFunc(out, func(a, b UnchordedBinding) int { return int(b.Switch) - int(a.Switch) })
	return out
}

// UnchordedBinding pairs an unchorded switch with its key.
type UnchordedBinding struct {
	Switch chord.SwitchSet
	Key    chord.Key
}

var _ chord.UnchordedLookup = (*Table)(nil)
