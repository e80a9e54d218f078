package dsl

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/pkg"
)

var parser = participle.MustBuild[File](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String", "Chord"),
	participle.UseLookahead(2),
)

// ParseAST parses source into its syntax tree.
func ParseAST(filename string, src []byte) (*File, error) {
	f, err := parser.ParseBytes(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return f, nil
}

// Parse parses a keymap into a table. The table is not validated; see
// [layout.Validate].
func Parse(filename string, src []byte) (*layout.Table, error) {
	f, err := ParseAST(filename, src)
	if err != nil {
		return nil, err
	}
	return f.Table()
}

// ParseString is like [Parse] for a string source.
func ParseString(src string) (*layout.Table, error) {
	return Parse("", []byte(src))
}

// ParseFile parses the keymap in the named file.
func ParseFile(filename string) (*layout.Table, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(filename, src)
}

// Table converts the syntax tree to a table.
func (f *File) Table() (*layout.Table, error) {
	t := layout.NewTable()
	for _, ld := range f.Layers {
		l, err := t.AddLayer(chord.Layer(ld.ID), ld.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ld.Pos, err)
		}
		for _, e := range ld.Entries {
			if err := e.apply(l); err != nil {
				return nil, fmt.Errorf("%s: %w", e.Pos, err)
			}
		}
	}
	return t, nil
}

func (e *Entry) apply(l *layout.LayerDef) error {
	if u := e.Unchorded; u != nil {
		sw, err := chord.ParseNotation(u.Switch)
		if err != nil {
			return err
		}
		k, err := u.Key.key()
		if err != nil {
			return err
		}
		l.Unchorded(sw, k)
		return nil
	}

	b := e.Binding
	var c chord.SwitchSet
	if b.Chord != "else" {
		var err error
		if c, err = chord.ParseNotation(b.Chord); err != nil {
			return err
		}
	}
	a, err := b.Action.action()
	if err != nil {
		return err
	}
	l.Bind(c, a)
	return nil
}

func (a *ActionExpr) action() (chord.Action, error) {
	switch {
	case a.Clear:
		return chord.ClearState(), nil
	case a.Hit != nil:
		k, err := a.Hit.key()
		return chord.Emit(chord.Hit(k)), err
	case a.Press != nil:
		k, err := a.Press.key()
		return chord.Emit(chord.Press(k)), err
	case a.Release != nil:
		k, err := a.Release.key()
		return chord.Emit(chord.Release(k)), err
	case a.Temp != nil:
		return chord.TemporaryLayerSwitch(chord.Layer(a.Temp.ID)), nil
	case a.Toggle != nil:
		k, err := a.Toggle.key()
		return chord.TogglePlusMask(k), err
	case a.Mask != nil:
		k, err := a.Mask.key()
		return chord.TemporaryPlusMask(k), err
	case a.From != nil:
		var m chord.Key
		if a.From.Mask != nil {
			var err error
			if m, err = a.From.Mask.key(); err != nil {
				return chord.Action{}, err
			}
		}
		return chord.FromOtherPlusMask(chord.Layer(a.From.Layer), m), nil
	case a.Layer != nil:
		if a.Layer.Hit == nil {
			return chord.LayerSwitch(chord.Layer(a.Layer.Layer)), nil
		}
		k, err := a.Layer.Hit.key()
		return chord.LayerSwitchAndEmit(chord.Layer(a.Layer.Layer), chord.Hit(k)), err
	}
	return chord.Action{}, pkg.ErrInvalidAction
}

func (k *KeyExpr) key() (chord.Key, error) {
	return chord.ParseKey(k.String())
}

// Format writes t in the keymap language. Emit actions of a
// LayerSwitchAndEmit are written as hits.
func Format(w io.Writer, t *layout.Table) error {
	for i, l := range t.Layers() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		name := ""
		if l.Name != "" {
			name = " " + strconv.Quote(l.Name)
		}
		if _, err := fmt.Fprintf(w, "layer %d%s {\n", l.ID, name); err != nil {
			return err
		}
		for _, u := range l.UnchordedKeys() {
			if _, err := fmt.Fprintf(w, "  unchorded %q => %s\n", u.Switch, u.Key); err != nil {
				return err
			}
		}
		for _, b := range l.Bindings() {
			label := strconv.Quote(b.Chord.String())
			if b.Chord == 0 {
				label = "else"
			}
			if _, err := fmt.Fprintf(w, "  %s => %s\n", label, formatAction(b.Action)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	return nil
}

func formatAction(a chord.Action) string {
	switch a.Kind {
	case chord.ActClearState:
		return "clear"
	case chord.ActEmit:
		switch a.Emit.Kind {
		case chord.KeyPress:
			return "press " + a.Emit.Key.String()
		case chord.KeyRelease:
			return "release " + a.Emit.Key.String()
		}
		return "hit " + a.Emit.Key.String()
	case chord.ActLayerSwitch:
		return fmt.Sprintf("layer %d", a.Layer)
	case chord.ActTemporaryLayerSwitch:
		return fmt.Sprintf("temp %d", a.Layer)
	case chord.ActTogglePlusMask:
		return "toggle " + a.Mask.String()
	case chord.ActTemporaryPlusMask:
		return "mask " + a.Mask.String()
	case chord.ActFromOtherPlusMask:
		if a.Mask == 0 {
			return fmt.Sprintf("from %d", a.Layer)
		}
		return fmt.Sprintf("from %d + %s", a.Layer, a.Mask)
	case chord.ActLayerSwitchAndEmit:
		return fmt.Sprintf("layer %d hit %s", a.Layer, a.Emit.Key)
	}
	return a.Kind.String()
}
