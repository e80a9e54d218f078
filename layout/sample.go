package layout

import "github.com/ardnew/chordkb/chord"

// Sample layer IDs.
const (
	SampleBase  chord.Layer = 0
	SampleShift chord.Layer = 1
	SampleMouse chord.Layer = 2
	SampleFn    chord.Layer = 3
)

// Sample returns a complete four-layer keymap: letters and symbols on the
// base layer, a one-shot shift layer, a mouse layer whose index and middle
// tips are unchorded mouse buttons, and a function layer with a sticky Alt.
func Sample() *Table {
	t := NewTable()
	sampleBase(t.Layer(SampleBase, "base"))
	sampleShift(t.Layer(SampleShift, "shift"))
	sampleMouse(t.Layer(SampleMouse, "mouse"))
	sampleFn(t.Layer(SampleFn, "fn"))
	return t
}

func sampleBase(l *LayerDef) {
	l.BindNotation("%%%%", chord.ClearState())

	l.BindNotation("v_^^", chord.Emit(chord.Hit(chord.MouseWheelDown)))
	l.BindNotation("v^^_", chord.Emit(chord.Hit(chord.MouseWheelUp)))
	l.BindNotation("v^_v", chord.LayerSwitchAndEmit(SampleMouse, chord.Hit(chord.MouseEnableToggle)))
	l.BindNotation("%%_%", chord.LayerSwitch(SampleFn))

	// Arrows, space and backspace.
	l.BindNotation("__^_", chord.Emit(chord.Hit(chord.KeyRight)))
	l.BindNotation("_^__", chord.Emit(chord.Hit(chord.KeyLeft)))
	l.BindNotation("___^", chord.Emit(chord.Hit(chord.KeyUp)))
	l.BindNotation("___v", chord.Emit(chord.Hit(chord.KeyDown)))
	l.BindNotation("^___", chord.Emit(chord.Hit(chord.KeySpace)))
	l.BindNotation("v___", chord.Emit(chord.Hit(chord.KeyBackspace)))

	letters := []struct {
		notation string
		key      chord.Key
	}{
		{"__v_", chord.KeyE}, {"_v__", chord.KeyT}, {"___%", chord.KeyA}, {"_%__", chord.KeyO},
		{"_^^_", chord.KeyI}, {"__^v", chord.KeyN}, {"__%_", chord.KeyS}, {"_v^_", chord.KeyH},
		{"__vv", chord.KeyR}, {"_^_^", chord.KeyD}, {"_^^^", chord.KeyL}, {"_v_^", chord.KeyU},
		{"^__^", chord.KeyC}, {"v__v", chord.KeyM}, {"__^^", chord.KeyW}, {"_v_v", chord.KeyF},
		{"_^_v", chord.KeyG}, {"^_^_", chord.KeyY}, {"v_v_", chord.KeyP}, {"_vv_", chord.KeyB},
		{"v__%", chord.KeyV}, {"%___", chord.KeyK}, {"^__v", chord.KeyJ}, {"v__^", chord.KeyX},
		{"v_^_", chord.KeyZ}, {"vv__", chord.KeyQ},
	}
	for _, b := range letters {
		l.BindNotation(b.notation, chord.Emit(chord.Hit(b.key)))
	}

	// Modifiers.
	l.BindNotation("%__%", chord.TemporaryLayerSwitch(SampleShift))
	l.BindNotation("__^%", chord.TemporaryLayerSwitch(SampleShift))
	l.BindNotation("^^__", chord.TemporaryPlusMask(chord.Ctrl))
	l.BindNotation("%%%_", chord.TemporaryPlusMask(chord.Alt))
	l.BindNotation("%_%_", chord.TemporaryPlusMask(chord.RightAlt))
	l.BindNotation("_%%%", chord.TemporaryPlusMask(chord.RightAlt))
	l.BindNotation("^_^v", chord.TemporaryPlusMask(chord.GUI))
	l.BindNotation("%_%%", chord.TemporaryPlusMask(chord.RightGUI))

	l.BindNotation("_%_%", chord.Emit(chord.Hit(chord.KeyEnter)))
	l.BindNotation("_%%_", chord.Emit(chord.Hit(chord.KeyEscape)))
	l.BindNotation("_v_%", chord.Emit(chord.Hit(chord.KeyTab)))
	l.BindNotation("v%%_", chord.Emit(chord.Hit(chord.KeyInsert)))
	l.BindNotation("%%__", chord.Emit(chord.Hit(chord.KeyHome)))
	l.BindNotation("__%%", chord.Emit(chord.Hit(chord.KeyEnd)))
	l.BindNotation("__%^", chord.Emit(chord.Hit(chord.KeyPageUp)))
	l.BindNotation("__%v", chord.Emit(chord.Hit(chord.KeyPageDown)))

	symbols := []struct {
		notation string
		key      chord.Key
	}{
		{"^^^_", chord.KeyDot}, {"^^^^", chord.KeyComma}, {"^^_^", chord.KeySemicolon},
		{"vv_v", chord.KeySemicolon | chord.Shift}, {"^__%", chord.Key1 | chord.Shift},
		{"^^_%", chord.KeySlash | chord.Shift}, {"vvv_", chord.KeySlash}, {"%vv_", chord.KeyBackslash},
		{"_%%v", chord.Key7 | chord.Shift}, {"_vvv", chord.Key8 | chord.Shift}, {"_^^v", chord.KeyEqual},
		{"_^^%", chord.KeyEqual | chord.Shift}, {"%%v_", chord.KeyGrave}, {"%%_v", chord.KeyGrave | chord.Shift},
		{"%^^_", chord.KeyMinus}, {"%^^^", chord.KeyMinus | chord.Shift}, {"^_v_", chord.KeyQuote},
		{"__v%", chord.KeyQuote | chord.Shift}, {"v^__", chord.Key4 | chord.Shift}, {"^^^%", chord.Key6 | chord.Shift},
		{"%_%v", chord.Key5 | chord.Shift}, {"vvvv", chord.KeyBackslash | chord.Shift}, {"v_^v", chord.Key2 | chord.Shift},
		{"%^^%", chord.Key3 | chord.Shift}, {"v_vv", chord.Key9 | chord.Shift}, {"^_^^", chord.Key0 | chord.Shift},
		{"_v%_", chord.KeyLeftBrace}, {"_^%_", chord.KeyRightBrace},
		{"v%__", chord.KeyLeftBrace | chord.Shift}, {"^%__", chord.KeyRightBrace | chord.Shift},
		{"^^_v", chord.KeyComma | chord.Shift}, {"^^^v", chord.KeyDot | chord.Shift},
	}
	for _, b := range symbols {
		l.BindNotation(b.notation, chord.Emit(chord.Hit(b.key)))
	}

	for i, n := range digitChords {
		l.BindNotation(n, chord.Emit(chord.Hit(digits[i])))
	}
	l.BindNotation("%_^^", chord.Emit(chord.Hit(chord.KeyCapsLock)))
}

// digitChords lists the chords of 0 through 9.
var digitChords = [...]string{
	"%__v", "%__^", "%_v_", "%_^_", "%v__",
	"%^__", "_%v_", "_%^_", "_%_v", "_%_^",
}

var digits = [...]chord.Key{
	chord.Key0, chord.Key1, chord.Key2, chord.Key3, chord.Key4,
	chord.Key5, chord.Key6, chord.Key7, chord.Key8, chord.Key9,
}

func sampleShift(l *LayerDef) {
	l.Default(chord.FromOtherPlusMask(SampleBase, chord.Shift))
	l.BindNotation("v___", chord.Emit(chord.Hit(chord.KeyDelete)))
	l.BindNotation("vvv_", chord.Emit(chord.Hit(chord.KeyBackslash)))
	l.BindNotation("%%v_", chord.Emit(chord.Hit(chord.KeyGrave|chord.Shift)))
	l.BindNotation("_v^_", chord.Emit(chord.Hit(chord.KeyQuote|chord.Shift)))
}

func sampleMouse(l *LayerDef) {
	l.Unchorded(chord.MustParse("___^"), chord.MouseLeftButton)
	l.Unchorded(chord.MustParse("__^_"), chord.MouseRightButton)

	// Only chords outside the unchorded mask can complete here.
	l.BindNotation("%%vv", chord.ClearState())
	l.BindNotation("v^_v", chord.LayerSwitchAndEmit(SampleBase, chord.Hit(chord.MouseEnableToggle)))
	l.BindNotation("^^__", chord.TemporaryPlusMask(chord.Ctrl))
	l.BindNotation("vv__", chord.TemporaryPlusMask(chord.Alt))
	l.BindNotation("%%v_", chord.TemporaryPlusMask(chord.Alt))
	l.BindNotation("%___", chord.TemporaryPlusMask(chord.Shift))
	l.BindNotation("__v_", chord.Emit(chord.Hit(chord.MouseWheelUp)))
	l.BindNotation("___v", chord.Emit(chord.Hit(chord.MouseWheelDown)))
}

func sampleFn(l *LayerDef) {
	l.Default(chord.FromOtherPlusMask(SampleBase, 0))
	fkeys := [...]chord.Key{
		chord.KeyF10, chord.KeyF1, chord.KeyF2, chord.KeyF3, chord.KeyF4,
		chord.KeyF5, chord.KeyF6, chord.KeyF7, chord.KeyF8, chord.KeyF9,
	}
	for i, n := range digitChords {
		l.BindNotation(n, chord.Emit(chord.Hit(fkeys[i])))
	}
	l.BindNotation("__%v", chord.Emit(chord.Hit(chord.KeyF11)))
	l.BindNotation("__%^", chord.Emit(chord.Hit(chord.KeyF12)))
	l.BindNotation("%_^^", chord.TogglePlusMask(chord.Alt))
	l.BindNotation("%%_%", chord.LayerSwitch(SampleBase))
}
