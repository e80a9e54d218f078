package chord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/chordkb/hid"
	"github.com/ardnew/chordkb/pkg"
)

// Key is a HID keycode combined with modifier flags. The low byte holds the
// keyboard usage ID, or a pseudo key in [PseudoMin, 0xFF] that the output
// dispatcher intercepts before USB encoding. The high byte holds the HID
// modifier bits.
type Key uint16

// Modifier flags, in the high byte of a Key.
const (
	LeftCtrl   Key = hid.ModLeftCtrl << 8
	LeftShift  Key = hid.ModLeftShift << 8
	LeftAlt    Key = hid.ModLeftAlt << 8
	LeftGUI    Key = hid.ModLeftGUI << 8
	RightCtrl  Key = hid.ModRightCtrl << 8
	RightShift Key = hid.ModRightShift << 8
	RightAlt   Key = hid.ModRightAlt << 8
	RightGUI   Key = hid.ModRightGUI << 8

	Ctrl  = LeftCtrl
	Shift = LeftShift
	Alt   = LeftAlt
	GUI   = LeftGUI
)

// Pseudo keys. These never reach the host as keyboard usages.
const (
	PseudoMin Key = 0xF0

	MouseEnableToggle   Key = 0xF0
	MouseLeftDragToggle Key = 0xF3
	MouseLeftClick      Key = 0xF4
	MouseRightPress     Key = 0xF5
	MouseRightRelease   Key = 0xF6
	MouseRightClick     Key = 0xF7
	MouseMiddlePress    Key = 0xF8
	MouseMiddleRelease  Key = 0xF9
	MouseMiddleClick    Key = 0xFA
	MouseWheelDown      Key = 0xFB
	MouseWheelUp        Key = 0xFC
	MouseLeftButton     Key = 0xFD // held while the key is pressed
	MouseRightButton    Key = 0xFE // held while the key is pressed
)

// Keyboard keys.
const (
	KeyA           Key = hid.KeyA
	KeyB           Key = hid.KeyB
	KeyC           Key = hid.KeyC
	KeyD           Key = hid.KeyD
	KeyE           Key = hid.KeyE
	KeyF           Key = hid.KeyF
	KeyG           Key = hid.KeyG
	KeyH           Key = hid.KeyH
	KeyI           Key = hid.KeyI
	KeyJ           Key = hid.KeyJ
	KeyK           Key = hid.KeyK
	KeyL           Key = hid.KeyL
	KeyM           Key = hid.KeyM
	KeyN           Key = hid.KeyN
	KeyO           Key = hid.KeyO
	KeyP           Key = hid.KeyP
	KeyQ           Key = hid.KeyQ
	KeyR           Key = hid.KeyR
	KeyS           Key = hid.KeyS
	KeyT           Key = hid.KeyT
	KeyU           Key = hid.KeyU
	KeyV           Key = hid.KeyV
	KeyW           Key = hid.KeyW
	KeyX           Key = hid.KeyX
	KeyY           Key = hid.KeyY
	KeyZ           Key = hid.KeyZ
	Key1           Key = hid.Key1
	Key2           Key = hid.Key2
	Key3           Key = hid.Key3
	Key4           Key = hid.Key4
	Key5           Key = hid.Key5
	Key6           Key = hid.Key6
	Key7           Key = hid.Key7
	Key8           Key = hid.Key8
	Key9           Key = hid.Key9
	Key0           Key = hid.Key0
	KeyEnter       Key = hid.KeyEnter
	KeyEscape      Key = hid.KeyEscape
	KeyBackspace   Key = hid.KeyBackspace
	KeyTab         Key = hid.KeyTab
	KeySpace       Key = hid.KeySpace
	KeyMinus       Key = hid.KeyMinus
	KeyEqual       Key = hid.KeyEqual
	KeyLeftBrace   Key = hid.KeyLeftBrace
	KeyRightBrace  Key = hid.KeyRightBrace
	KeyBackslash   Key = hid.KeyBackslash
	KeySemicolon   Key = hid.KeySemicolon
	KeyQuote       Key = hid.KeyQuote
	KeyGrave       Key = hid.KeyGrave
	KeyComma       Key = hid.KeyComma
	KeyDot         Key = hid.KeyDot
	KeySlash       Key = hid.KeySlash
	KeyCapsLock    Key = hid.KeyCapsLock
	KeyF1          Key = hid.KeyF1
	KeyF2          Key = hid.KeyF2
	KeyF3          Key = hid.KeyF3
	KeyF4          Key = hid.KeyF4
	KeyF5          Key = hid.KeyF5
	KeyF6          Key = hid.KeyF6
	KeyF7          Key = hid.KeyF7
	KeyF8          Key = hid.KeyF8
	KeyF9          Key = hid.KeyF9
	KeyF10         Key = hid.KeyF10
	KeyF11         Key = hid.KeyF11
	KeyF12         Key = hid.KeyF12
	KeyPrintScreen Key = hid.KeyPrintScreen
	KeyScrollLock  Key = hid.KeyScrollLock
	KeyPause       Key = hid.KeyPause
	KeyInsert      Key = hid.KeyInsert
	KeyHome        Key = hid.KeyHome
	KeyPageUp      Key = hid.KeyPageUp
	KeyDelete      Key = hid.KeyDelete
	KeyEnd         Key = hid.KeyEnd
	KeyPageDown    Key = hid.KeyPageDown
	KeyRight       Key = hid.KeyRight
	KeyLeft        Key = hid.KeyLeft
	KeyDown        Key = hid.KeyDown
	KeyUp          Key = hid.KeyUp
	KeyNumLock     Key = hid.KeyNumLock
	KeyMenu        Key = hid.KeyMenu
)

// Code returns the keycode byte.
func (k Key) Code() uint8 {
	return uint8(k)
}

// Modifiers returns the HID modifier byte.
func (k Key) Modifiers() uint8 {
	return uint8(k >> 8)
}

// IsPseudo reports whether the keycode byte is a pseudo key.
func (k Key) IsPseudo() bool {
	return k&0xFF >= PseudoMin
}

// String formats k as names joined by '|', e.g. "E|SHIFT".
func (k Key) String() string {
	var parts []string
	if code := k & 0xFF; code != 0 || k == 0 {
		if name, ok := codeNames[code]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%02X", uint8(code)))
		}
	}
	for _, f := range flagNames {
		if k&f.key != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseKey parses key names joined by '|' or '+', e.g. "E|SHIFT" or
// "ctrl+alt+delete". Numeric codes ("0x4C", "76") are accepted for any
// component.
func ParseKey(s string) (Key, error) {
	var k Key
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == '+' }) {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if v, ok := keyNames[name]; ok {
			k |= v
			continue
		}
		n, err := strconv.ParseUint(name, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", pkg.ErrUnknownKey, part)
		}
		k |= Key(n)
	}
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("%w: empty", pkg.ErrUnknownKey)
	}
	return k, nil
}

var flagNames = []struct {
	name string
	key  Key
}{
	{"CTRL", LeftCtrl},
	{"SHIFT", LeftShift},
	{"ALT", LeftAlt},
	{"GUI", LeftGUI},
	{"RIGHT_CTRL", RightCtrl},
	{"RIGHT_SHIFT", RightShift},
	{"RIGHT_ALT", RightAlt},
	{"RIGHT_GUI", RightGUI},
}

var codeTable = []struct {
	name string
	key  Key
}{
	{"NONE", 0},
	{"A", KeyA}, {"B", KeyB}, {"C", KeyC}, {"D", KeyD}, {"E", KeyE},
	{"F", KeyF}, {"G", KeyG}, {"H", KeyH}, {"I", KeyI}, {"J", KeyJ},
	{"K", KeyK}, {"L", KeyL}, {"M", KeyM}, {"N", KeyN}, {"O", KeyO},
	{"P", KeyP}, {"Q", KeyQ}, {"R", KeyR}, {"S", KeyS}, {"T", KeyT},
	{"U", KeyU}, {"V", KeyV}, {"W", KeyW}, {"X", KeyX}, {"Y", KeyY},
	{"Z", KeyZ},
	{"KEY_1", Key1}, {"KEY_2", Key2}, {"KEY_3", Key3}, {"KEY_4", Key4},
	{"KEY_5", Key5}, {"KEY_6", Key6}, {"KEY_7", Key7}, {"KEY_8", Key8},
	{"KEY_9", Key9}, {"KEY_0", Key0},
	{"ENTER", KeyEnter}, {"ESC", KeyEscape}, {"BACKSPACE", KeyBackspace},
	{"TAB", KeyTab}, {"SPACE", KeySpace}, {"MINUS", KeyMinus},
	{"EQUAL", KeyEqual}, {"LEFT_BRACE", KeyLeftBrace},
	{"RIGHT_BRACE", KeyRightBrace}, {"BACKSLASH", KeyBackslash},
	{"SEMICOLON", KeySemicolon}, {"QUOTE", KeyQuote}, {"TILDE", KeyGrave},
	{"COMMA", KeyComma}, {"PERIOD", KeyDot}, {"SLASH", KeySlash},
	{"CAPS_LOCK", KeyCapsLock},
	{"F1", KeyF1}, {"F2", KeyF2}, {"F3", KeyF3}, {"F4", KeyF4},
	{"F5", KeyF5}, {"F6", KeyF6}, {"F7", KeyF7}, {"F8", KeyF8},
	{"F9", KeyF9}, {"F10", KeyF10}, {"F11", KeyF11}, {"F12", KeyF12},
	{"PRINTSCREEN", KeyPrintScreen}, {"SCROLL_LOCK", KeyScrollLock},
	{"PAUSE", KeyPause}, {"INSERT", KeyInsert}, {"HOME", KeyHome},
	{"PAGE_UP", KeyPageUp}, {"DELETE", KeyDelete}, {"END", KeyEnd},
	{"PAGE_DOWN", KeyPageDown}, {"RIGHT", KeyRight}, {"LEFT", KeyLeft},
	{"DOWN", KeyDown}, {"UP", KeyUp}, {"NUM_LOCK", KeyNumLock},
	{"MENU", KeyMenu},
	{"MOUSE_ENABLE_TOGGLE", MouseEnableToggle},
	{"MOUSE_LEFT_DRAG_TOGGLE", MouseLeftDragToggle},
	{"MOUSE_LEFT_CLICK", MouseLeftClick},
	{"MOUSE_RIGHT_PRESS", MouseRightPress},
	{"MOUSE_RIGHT_RELEASE", MouseRightRelease},
	{"MOUSE_RIGHT_CLICK", MouseRightClick},
	{"MOUSE_MIDDLE_PRESS", MouseMiddlePress},
	{"MOUSE_MIDDLE_RELEASE", MouseMiddleRelease},
	{"MOUSE_MIDDLE_CLICK", MouseMiddleClick},
	{"MOUSE_WHEEL_DOWN", MouseWheelDown},
	{"MOUSE_WHEEL_UP", MouseWheelUp},
	{"MOUSE_LEFT_BTN", MouseLeftButton},
	{"MOUSE_RIGHT_BTN", MouseRightButton},
}

var (
	codeNames = make(map[Key]string, len(codeTable))
	keyNames  = make(map[string]Key, len(codeTable)+len(flagNames)+8)
)

func init() {
	for _, c := range codeTable {
		codeNames[c.key] = c.name
		keyNames[c.name] = c.key
	}
	for _, f := range flagNames {
		keyNames[f.name] = f.key
	}
	keyNames["LEFT_CTRL"] = LeftCtrl
	keyNames["LEFT_SHIFT"] = LeftShift
	keyNames["LEFT_ALT"] = LeftAlt
	keyNames["LEFT_GUI"] = LeftGUI
	keyNames["ESCAPE"] = KeyEscape
	keyNames["DOT"] = KeyDot
	keyNames["GRAVE"] = KeyGrave
	keyNames["DEL"] = KeyDelete
}
