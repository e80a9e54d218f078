package chord

// Lookup maps a chord on a layer to its action.
//
// A Lookup is queried from the scan path and must not block. Returning
// false means no action is bound; the engine then retries chord 0 on the
// same layer.
type Lookup interface {
	Lookup(layer Layer, chord SwitchSet) (Action, bool)
}

// LayerInfo holds per-layer properties.
type LayerInfo struct {
	// UnchordedMask selects switches that act as ordinary keys on this
	// layer instead of contributing to chords.
	UnchordedMask SwitchSet
}

// UnchordedLookup is implemented by lookups whose layers have unchorded
// keys. A Lookup that does not implement it behaves as if every layer had
// an empty unchorded mask.
type UnchordedLookup interface {
	Lookup
	Info(layer Layer) LayerInfo
	// UnchordedKey returns the key bound to a single unchorded switch.
	UnchordedKey(layer Layer, single SwitchSet) (Key, bool)
}

// LookupFunc adapts a function to the [Lookup] interface.
type LookupFunc func(layer Layer, chord SwitchSet) (Action, bool)

// Lookup calls f(layer, chord).
func (f LookupFunc) Lookup(layer Layer, chord SwitchSet) (Action, bool) {
	return f(layer, chord)
}

// Binding pairs a chord with its action.
type Binding struct {
	Chord  SwitchSet
	Action Action
}

// LookupSlice returns the action of the first binding whose chord equals
// chord.
func LookupSlice(chord SwitchSet, bindings []Binding) (Action, bool) {
	for _, b := range bindings {
		if b.Chord == chord {
			return b.Action, true
		}
	}
	return Action{}, false
}
