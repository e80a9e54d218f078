package chord

import "fmt"

// OutcomeKind identifies what a [Outcome] asks the output layer to do.
type OutcomeKind uint8

// Outcome kinds.
const (
	Nothing    OutcomeKind = iota // No output
	KeyHit                        // Press and immediately release
	KeyPress                      // Press and hold
	KeyRelease                    // Release a held key
)

// String returns a string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Nothing:
		return "Nothing"
	case KeyHit:
		return "KeyHit"
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
	}
}

// Outcome is the result of one engine step. Key is meaningful only when
// Kind is not Nothing.
type Outcome struct {
	Kind OutcomeKind
	Key  Key
}

// Hit returns a KeyHit outcome.
func Hit(k Key) Outcome { return Outcome{Kind: KeyHit, Key: k} }

// Press returns a KeyPress outcome.
func Press(k Key) Outcome { return Outcome{Kind: KeyPress, Key: k} }

// Release returns a KeyRelease outcome.
func Release(k Key) Outcome { return Outcome{Kind: KeyRelease, Key: k} }

// Or returns o with mask ORed into its key. Nothing is returned unchanged.
func (o Outcome) Or(mask Key) Outcome {
	if o.Kind == Nothing {
		return o
	}
	o.Key |= mask
	return o
}

// IsNothing reports whether o produces no output.
func (o Outcome) IsNothing() bool {
	return o.Kind == Nothing
}

// String formats o as "Kind(Key)".
func (o Outcome) String() string {
	if o.Kind == Nothing {
		return "Nothing"
	}
	return fmt.Sprintf("%s(%s)", o.Kind, o.Key)
}

// ActionKind identifies the layer-level effect of a resolved chord.
type ActionKind uint8

// Action kinds. The zero value is not a valid action.
const (
	ActClearState ActionKind = iota + 1
	ActEmit
	ActLayerSwitch
	ActTemporaryLayerSwitch
	ActTogglePlusMask
	ActTemporaryPlusMask
	ActFromOtherPlusMask
	ActLayerSwitchAndEmit
)

var actionNames = [...]string{
	ActClearState:           "ClearState",
	ActEmit:                 "Emit",
	ActLayerSwitch:          "LayerSwitch",
	ActTemporaryLayerSwitch: "TemporaryLayerSwitch",
	ActTogglePlusMask:       "TogglePlusMask",
	ActTemporaryPlusMask:    "TemporaryPlusMask",
	ActFromOtherPlusMask:    "FromOtherPlusMask",
	ActLayerSwitchAndEmit:   "LayerSwitchAndEmit",
}

// String returns a string representation of the action kind.
func (k ActionKind) String() string {
	if int(k) < len(actionNames) && actionNames[k] != "" {
		return actionNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	return k >= ActClearState && k <= ActLayerSwitchAndEmit
}

// Action is the value bound to a chord in a layer. Which fields apply
// depends on Kind:
//
//	ClearState            none
//	Emit                  Emit
//	LayerSwitch           Layer
//	TemporaryLayerSwitch  Layer
//	TogglePlusMask        Mask
//	TemporaryPlusMask     Mask
//	FromOtherPlusMask     Layer, Mask
//	LayerSwitchAndEmit    Layer, Emit
type Action struct {
	Kind  ActionKind
	Layer Layer
	Mask  Key
	Emit  Outcome
}

// ClearState resets layers and masks.
func ClearState() Action { return Action{Kind: ActClearState} }

// Emit produces o with the active masks applied.
func Emit(o Outcome) Action { return Action{Kind: ActEmit, Emit: o} }

// LayerSwitch makes l the persistent layer.
func LayerSwitch(l Layer) Action { return Action{Kind: ActLayerSwitch, Layer: l} }

// TemporaryLayerSwitch resolves the next chord on l.
func TemporaryLayerSwitch(l Layer) Action {
	return Action{Kind: ActTemporaryLayerSwitch, Layer: l}
}

// TogglePlusMask adds m to the sticky mask.
func TogglePlusMask(m Key) Action { return Action{Kind: ActTogglePlusMask, Mask: m} }

// TemporaryPlusMask adds m to the mask of the next emitted key.
func TemporaryPlusMask(m Key) Action { return Action{Kind: ActTemporaryPlusMask, Mask: m} }

// FromOtherPlusMask adds m to the temporary mask and resolves the same chord
// on layer l.
func FromOtherPlusMask(l Layer, m Key) Action {
	return Action{Kind: ActFromOtherPlusMask, Layer: l, Mask: m}
}

// LayerSwitchAndEmit makes l the persistent layer and then produces o.
func LayerSwitchAndEmit(l Layer, o Outcome) Action {
	return Action{Kind: ActLayerSwitchAndEmit, Layer: l, Emit: o}
}

// String formats a in constructor form, e.g. "FromOtherPlusMask(0, SHIFT)".
func (a Action) String() string {
	switch a.Kind {
	case ActClearState:
		return "ClearState"
	case ActEmit:
		return fmt.Sprintf("Emit(%s)", a.Emit)
	case ActLayerSwitch, ActTemporaryLayerSwitch:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Layer)
	case ActTogglePlusMask, ActTemporaryPlusMask:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Mask)
	case ActFromOtherPlusMask:
		return fmt.Sprintf("%s(%d, %s)", a.Kind, a.Layer, a.Mask)
	case ActLayerSwitchAndEmit:
		return fmt.Sprintf("%s(%d, %s)", a.Kind, a.Layer, a.Emit)
	default:
		return a.Kind.String()
	}
}

// Layer identifies a keymap layer.
type Layer int32
