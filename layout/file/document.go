package file

import (
	"fmt"
	"strings"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/pkg"
)

// Document is the decoded form of a layout file.
type Document struct {
	Layers []LayerDoc `json:"layers" yaml:"layers" toml:"layers"`
}

// LayerDoc describes one layer.
type LayerDoc struct {
	ID        int32          `json:"id" yaml:"id" toml:"id"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Default   *ActionDoc     `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Unchorded []UnchordedDoc `json:"unchorded,omitempty" yaml:"unchorded,omitempty" toml:"unchorded,omitempty"`
	Chords    []BindingDoc   `json:"chords,omitempty" yaml:"chords,omitempty" toml:"chords,omitempty"`
}

// UnchordedDoc binds a single unchorded switch to a key.
type UnchordedDoc struct {
	Switch string `json:"switch" yaml:"switch" toml:"switch"`
	Key    string `json:"key" yaml:"key" toml:"key"`
}

// BindingDoc binds a chord to an action.
type BindingDoc struct {
	Chord     string `json:"chord" yaml:"chord" toml:"chord"`
	ActionDoc `yaml:",inline"`
}

// ActionDoc describes an action. Do selects the kind:
//
//	clear        ClearState
//	hit          Emit(KeyHit(key))
//	press        Emit(KeyPress(key))
//	release      Emit(KeyRelease(key))
//	layer        LayerSwitch(layer)
//	temp-layer   TemporaryLayerSwitch(layer)
//	toggle-mask  TogglePlusMask(mask)
//	temp-mask    TemporaryPlusMask(mask)
//	from         FromOtherPlusMask(layer, mask)
//	layer-hit    LayerSwitchAndEmit(layer, KeyHit(key))
type ActionDoc struct {
	Do    string `json:"do" yaml:"do" toml:"do"`
	Key   string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Layer *int32 `json:"layer,omitempty" yaml:"layer,omitempty" toml:"layer,omitempty"`
	Mask  string `json:"mask,omitempty" yaml:"mask,omitempty" toml:"mask,omitempty"`
}

// Action verbs.
const (
	DoClear      = "clear"
	DoHit        = "hit"
	DoPress      = "press"
	DoRelease    = "release"
	DoLayer      = "layer"
	DoTempLayer  = "temp-layer"
	DoToggleMask = "toggle-mask"
	DoTempMask   = "temp-mask"
	DoFrom       = "from"
	DoLayerHit   = "layer-hit"
)

// Table converts the document to a validated table.
func (d *Document) Table() (*layout.Table, error) {
	t := layout.NewTable()
	for _, ld := range d.Layers {
		l, err := t.AddLayer(chord.Layer(ld.ID), ld.Name)
		if err != nil {
			return nil, err
		}
		if ld.Default != nil {
			a, err := ld.Default.Action()
			if err != nil {
				return nil, fmt.Errorf("layer %d default: %w", ld.ID, err)
			}
			l.Default(a)
		}
		for _, u := range ld.Unchorded {
			sw, err := chord.ParseNotation(u.Switch)
			if err != nil {
				return nil, fmt.Errorf("layer %d unchorded: %w", ld.ID, err)
			}
			k, err := chord.ParseKey(u.Key)
			if err != nil {
				return nil, fmt.Errorf("layer %d unchorded %s: %w", ld.ID, u.Switch, err)
			}
			l.Unchorded(sw, k)
		}
		for _, b := range ld.Chords {
			c, err := chord.ParseNotation(b.Chord)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", ld.ID, err)
			}
			a, err := b.Action()
			if err != nil {
				return nil, fmt.Errorf("layer %d chord %s: %w", ld.ID, b.Chord, err)
			}
			l.Bind(c, a)
		}
	}
	if err := layout.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Action converts the description to a [chord.Action].
func (a ActionDoc) Action() (chord.Action, error) {
	key := func() (chord.Key, error) { return chord.ParseKey(a.Key) }
	mask := func() (chord.Key, error) {
		if strings.TrimSpace(a.Mask) == "" {
			return 0, nil
		}
		return chord.ParseKey(a.Mask)
	}
	layer := func() (chord.Layer, error) {
		if a.Layer == nil {
			return 0, fmt.Errorf("%w: %s requires a layer", pkg.ErrInvalidAction, a.Do)
		}
		return chord.Layer(*a.Layer), nil
	}

	switch a.Do {
	case DoClear:
		return chord.ClearState(), nil
	case DoHit, DoPress, DoRelease:
		k, err := key()
		if err != nil {
			return chord.Action{}, err
		}
		switch a.Do {
		case DoPress:
			return chord.Emit(chord.Press(k)), nil
		case DoRelease:
			return chord.Emit(chord.Release(k)), nil
		}
		return chord.Emit(chord.Hit(k)), nil
	case DoLayer, DoTempLayer:
		l, err := layer()
		if err != nil {
			return chord.Action{}, err
		}
		if a.Do == DoTempLayer {
			return chord.TemporaryLayerSwitch(l), nil
		}
		return chord.LayerSwitch(l), nil
	case DoToggleMask, DoTempMask:
		m, err := mask()
		if err != nil {
			return chord.Action{}, err
		}
		if a.Do == DoTempMask {
			return chord.TemporaryPlusMask(m), nil
		}
		return chord.TogglePlusMask(m), nil
	case DoFrom:
		l, err := layer()
		if err != nil {
			return chord.Action{}, err
		}
		m, err := mask()
		if err != nil {
			return chord.Action{}, err
		}
		return chord.FromOtherPlusMask(l, m), nil
	case DoLayerHit:
		l, err := layer()
		if err != nil {
			return chord.Action{}, err
		}
		k, err := key()
		if err != nil {
			return chord.Action{}, err
		}
		return chord.LayerSwitchAndEmit(l, chord.Hit(k)), nil
	default:
		return chord.Action{}, fmt.Errorf("%w: %q", pkg.ErrInvalidAction, a.Do)
	}
}

// FromTable describes t as a document.
func FromTable(t *layout.Table) *Document {
	d := &Document{}
	for _, l := range t.Layers() {
		ld := LayerDoc{ID: int32(l.ID), Name: l.Name}
		for _, u := range l.UnchordedKeys() {
			ld.Unchorded = append(ld.Unchorded, UnchordedDoc{
				Switch: u.Switch.String(),
				Key:    u.Key.String(),
			})
		}
		for _, b := range l.Bindings() {
			ad := describe(b.Action)
			if b.Chord == 0 {
				ld.Default = &ad
				continue
			}
			ld.Chords = append(ld.Chords, BindingDoc{Chord: b.Chord.String(), ActionDoc: ad})
		}
		d.Layers = append(d.Layers, ld)
	}
	return d
}

func describe(a chord.Action) ActionDoc {
	layer := func() *int32 {
		id := int32(a.Layer)
		return &id
	}
	mask := func() string {
		if a.Mask == 0 {
			return ""
		}
		return a.Mask.String()
	}
	switch a.Kind {
	case chord.ActClearState:
		return ActionDoc{Do: DoClear}
	case chord.ActEmit:
		do := DoHit
		switch a.Emit.Kind {
		case chord.KeyPress:
			do = DoPress
		case chord.KeyRelease:
			do = DoRelease
		}
		return ActionDoc{Do: do, Key: a.Emit.Key.String()}
	case chord.ActLayerSwitch:
		return ActionDoc{Do: DoLayer, Layer: layer()}
	case chord.ActTemporaryLayerSwitch:
		return ActionDoc{Do: DoTempLayer, Layer: layer()}
	case chord.ActTogglePlusMask:
		return ActionDoc{Do: DoToggleMask, Mask: a.Mask.String()}
	case chord.ActTemporaryPlusMask:
		return ActionDoc{Do: DoTempMask, Mask: a.Mask.String()}
	case chord.ActFromOtherPlusMask:
		return ActionDoc{Do: DoFrom, Layer: layer(), Mask: mask()}
	case chord.ActLayerSwitchAndEmit:
		return ActionDoc{Do: DoLayerHit, Layer: layer(), Key: a.Emit.Key.String()}
	default:
		return ActionDoc{Do: a.Kind.String()}
	}
}
