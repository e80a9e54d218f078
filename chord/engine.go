package chord

import "github.com/ardnew/chordkb/pkg"

// DefaultMaxDepth bounds the number of FromOtherPlusMask delegations
// followed while resolving one chord.
const DefaultMaxDepth = 8

// Engine turns switch samples into key outcomes.
//
// An Engine is not safe for concurrent use. Calls to [Engine.Handle] must
// be serialized by the caller, one per input sample.
type Engine struct {
	lookup    Lookup
	unchorded UnchordedLookup // nil if lookup has no unchorded keys
	maxDepth  int

	most           SwitchSet // union of chord switches since last full release
	layer          Layer
	temporaryLayer Layer
	hasTemporary   bool
	plusMask       Key // sticky modifiers
	temporaryMask  Key // modifiers for the next emitted key
	unchordedState SwitchSet
	unchordedShunt SwitchSet // held unchorded keys awaiting forced release
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMaxDepth sets the delegation bound. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxDepth = n
		}
	}
}

// NewEngine returns an engine on layer 0 resolving chords through l.
func NewEngine(l Lookup, opts ...Option) *Engine {
	e := &Engine{
		lookup:   l,
		maxDepth: DefaultMaxDepth,
	}
	if u, ok := l.(UnchordedLookup); ok {
		e.unchorded = u
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot is a copy of the engine state.
type Snapshot struct {
	Most              SwitchSet
	Layer             Layer
	TemporaryLayer    Layer
	HasTemporaryLayer bool
	PlusMask          Key
	TemporaryPlusMask Key
	UnchordedState    SwitchSet
	UnchordedShunt    SwitchSet
}

// State returns a copy of the engine state.
func (e *Engine) State() Snapshot {
	return Snapshot{
		Most:              e.most,
		Layer:             e.layer,
		TemporaryLayer:    e.temporaryLayer,
		HasTemporaryLayer: e.hasTemporary,
		PlusMask:          e.plusMask,
		TemporaryPlusMask: e.temporaryMask,
		UnchordedState:    e.unchordedState,
		UnchordedShunt:    e.unchordedShunt,
	}
}

// Reset returns the engine to its initial state. Held unchorded keys are
// forgotten without release events.
func (e *Engine) Reset() {
	lookup, unchorded, depth := e.lookup, e.unchorded, e.maxDepth
	*e = Engine{lookup: lookup, unchorded: unchorded, maxDepth: depth}
}

// Handle processes one switch sample and returns at most one outcome.
func (e *Engine) Handle(switches SwitchSet) Outcome {
	if e.unchordedShunt != 0 {
		return e.drain()
	}

	var mask SwitchSet
	if !e.hasTemporary {
		mask = e.info(e.layer).UnchordedMask
		if out, changed := e.edge(switches & mask); changed {
			return out
		}
	}

	if chord := switches &^ mask; chord != 0 {
		e.most |= chord
		return Outcome{}
	}
	if e.most == 0 {
		return Outcome{}
	}

	chord := e.most
	e.most = 0
	layer := e.layer
	if e.hasTemporary {
		layer = e.temporaryLayer
		e.hasTemporary = false
		e.temporaryLayer = 0
	}
	return e.resolve(layer, chord)
}

// drain releases the most significant shunted key on the layer it was
// pressed on.
func (e *Engine) drain() Outcome {
	if !e.hasTemporary {
		pkg.LogDebug(pkg.ComponentEngine, "shunt without source layer",
			"shunt", e.unchordedShunt)
		e.unchordedShunt = 0
		return Outcome{}
	}
	bit := e.unchordedShunt.HighestBit()
	e.unchordedShunt &^= bit
	from := e.temporaryLayer
	if e.unchordedShunt == 0 {
		e.hasTemporary = false
		e.temporaryLayer = 0
	}
	key, ok := e.unchordedKey(from, bit)
	if !ok {
		pkg.LogDebug(pkg.ComponentEngine, "unmapped shunted switch",
			"layer", from, "switch", bit)
		return Outcome{}
	}
	return Release(key)
}

// edge reports the most significant transition between held and the
// tracked unchorded state.
func (e *Engine) edge(held SwitchSet) (Outcome, bool) {
	diff := held ^ e.unchordedState
	if diff == 0 {
		return Outcome{}, false
	}
	bit := diff.HighestBit()
	e.unchordedState ^= bit
	key, ok := e.unchordedKey(e.layer, bit)
	if !ok {
		pkg.LogDebug(pkg.ComponentEngine, "unmapped unchorded switch",
			"layer", e.layer, "switch", bit)
		return Outcome{}, true
	}
	if held&bit != 0 {
		return e.compose(Press(key)), true
	}
	return e.compose(Release(key)), true
}

// resolve looks up chord on layer, following FromOtherPlusMask delegations
// up to the configured depth.
func (e *Engine) resolve(layer Layer, chord SwitchSet) Outcome {
	for depth := 0; ; depth++ {
		action, ok := e.lookup.Lookup(layer, chord)
		if !ok {
			if action, ok = e.lookup.Lookup(layer, 0); !ok {
				return Outcome{}
			}
		}
		if action.Kind != ActFromOtherPlusMask {
			return e.apply(action)
		}
		e.temporaryMask |= action.Mask
		if depth >= e.maxDepth {
			pkg.LogWarn(pkg.ComponentEngine, "delegation depth exceeded",
				"layer", layer, "chord", chord, "depth", e.maxDepth)
			e.temporaryMask = 0
			return Outcome{}
		}
		layer = action.Layer
	}
}

func (e *Engine) apply(a Action) Outcome {
	switch a.Kind {
	case ActClearState:
		from := e.layer
		e.layer = 0
		e.hasTemporary = false
		e.temporaryLayer = 0
		e.plusMask = 0
		e.temporaryMask = 0
		e.shuntFrom(from)
	case ActEmit:
		return e.compose(a.Emit)
	case ActLayerSwitch:
		from := e.layer
		e.layer = a.Layer
		e.shuntFrom(from)
	case ActTemporaryLayerSwitch:
		e.temporaryLayer = a.Layer
		e.hasTemporary = true
		e.shuntFrom(e.layer)
	case ActTogglePlusMask:
		e.temporaryMask &^= a.Mask
		e.plusMask |= a.Mask
	case ActTemporaryPlusMask:
		e.temporaryMask |= a.Mask
	case ActLayerSwitchAndEmit:
		from := e.layer
		e.layer = a.Layer
		e.shuntFrom(from)
		return e.compose(a.Emit)
	default:
		pkg.LogDebug(pkg.ComponentEngine, "invalid action", "kind", a.Kind)
	}
	return Outcome{}
}

// compose applies and consumes the temporary mask, then the sticky mask.
func (e *Engine) compose(o Outcome) Outcome {
	o = o.Or(e.temporaryMask).Or(e.plusMask)
	e.temporaryMask = 0
	return o
}

// shuntFrom schedules release of every held unchorded key of layer from.
// The source layer is kept in the temporary layer slot until the shunt
// drains.
func (e *Engine) shuntFrom(from Layer) {
	if e.unchordedState == 0 {
		return
	}
	e.unchordedShunt |= e.unchordedState
	e.unchordedState = 0
	e.temporaryLayer = from
	e.hasTemporary = true
}

func (e *Engine) info(layer Layer) LayerInfo {
	if e.unchorded == nil {
		return LayerInfo{}
	}
	return e.unchorded.Info(layer)
}

func (e *Engine) unchordedKey(layer Layer, single SwitchSet) (Key, bool) {
	if e.unchorded == nil {
		return 0, false
	}
	return e.unchorded.UnchordedKey(layer, single)
}
