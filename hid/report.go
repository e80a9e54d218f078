package hid

import (
	"context"
	"fmt"
	"sync"

	"github.com/ardnew/chordkb/pkg"
)

// KeyboardReportSize is the size of a keyboard report in bytes.
const KeyboardReportSize = 8

// MouseReportSize is the size of a mouse report in bytes.
const MouseReportSize = 4

// KeyboardReport is an 8-byte boot keyboard input report that tracks which
// keys are held.
//
// Modifier bits have owners. A bit set by [KeyboardReport.PressWith] belongs
// to that key's slot and goes away when the key is released; a bit set by
// a modifier usage or [KeyboardReport.HoldModifiers] is sticky and stays
// until released explicitly. A bit is cleared only when no owner is left.
type KeyboardReport struct {
	Modifiers uint8    // Modifier key state
	Reserved  uint8    // Reserved (always 0)
	Keys      [6]uint8 // Up to 6 simultaneous key codes

	owned  [6]uint8 // modifier bits held by each key slot
	sticky uint8
}

// MarshalTo writes the keyboard report to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (r *KeyboardReport) MarshalTo(buf []byte) int {
	if len(buf) < KeyboardReportSize {
		return 0
	}
	buf[0] = r.Modifiers
	buf[1] = r.Reserved
	copy(buf[2:KeyboardReportSize], r.Keys[:])
	return KeyboardReportSize
}

// Clear resets the keyboard report to all keys released.
func (r *KeyboardReport) Clear() {
	*r = KeyboardReport{}
}

// IsEmpty reports whether no key or modifier is held.
func (r *KeyboardReport) IsEmpty() bool {
	return r.Modifiers == 0 && r.Keys == [6]uint8{}
}

// Press marks a key as held. Modifier usages (0xE0-0xE7) set the matching
// modifier bit instead of occupying a key slot.
func (r *KeyboardReport) Press(key uint8) error {
	return r.PressWith(key, 0)
}

// PressWith marks a key as held together with the modifier bits in mods.
// The report is unchanged when an error is returned.
func (r *KeyboardReport) PressWith(key, mods uint8) error {
	if mask, ok := modifierMask(key); ok {
		if r.Modifiers&mask != 0 {
			return pkg.ErrAlreadyPressed
		}
		r.HoldModifiers(mask | mods)
		return nil
	}
	// Search before claiming a slot; Release leaves holes, so a duplicate
	// may sit after the first free slot.
	for _, k := range r.Keys {
		if k == key {
			return pkg.ErrAlreadyPressed
		}
	}
	for i := range r.Keys {
		if r.Keys[i] == KeyNone {
			r.Keys[i] = key
			r.owned[i] = mods
			r.Modifiers |= mods
			return nil
		}
	}
	return pkg.ErrTooManyKeys
}

// Release marks a held key as released along with the modifier bits it was
// pressed with, unless another owner still holds them.
func (r *KeyboardReport) Release(key uint8) error {
	if mask, ok := modifierMask(key); ok {
		if r.Modifiers&mask == 0 {
			return pkg.ErrAlreadyReleased
		}
		r.ReleaseModifiers(mask)
		return nil
	}
	for i := range r.Keys {
		if r.Keys[i] == key {
			mods := r.owned[i]
			r.Keys[i], r.owned[i] = KeyNone, 0
			r.Modifiers &^= mods &^ r.holders()
			return nil
		}
	}
	return pkg.ErrAlreadyReleased
}

// HoldModifiers sets sticky modifier bits.
func (r *KeyboardReport) HoldModifiers(mods uint8) {
	r.sticky |= mods
	r.Modifiers |= mods
}

// ReleaseModifiers drops sticky modifier bits. Bits still owned by a held
// key stay set.
func (r *KeyboardReport) ReleaseModifiers(mods uint8) {
	r.sticky &^= mods
	r.Modifiers &^= mods &^ r.holders()
}

// holders returns the modifier bits that have an owner.
func (r *KeyboardReport) holders() uint8 {
	held := r.sticky
	for i, k := range r.Keys {
		if k != KeyNone {
			held |= r.owned[i]
		}
	}
	return held
}

func modifierMask(key uint8) (uint8, bool) {
	if key < KeyLeftCtrl || key > KeyRightGUI {
		return 0, false
	}
	return 1 << (key - KeyLeftCtrl), true
}

// MouseReport is a 4-byte mouse input report.
type MouseReport struct {
	Buttons uint8 // Button state
	X       int8  // X movement (-127 to 127)
	Y       int8  // Y movement (-127 to 127)
	Wheel   int8  // Wheel movement (-127 to 127)
}

// MarshalTo writes the mouse report to buf.
func (r *MouseReport) MarshalTo(buf []byte) int {
	if len(buf) < MouseReportSize {
		return 0
	}
	buf[0] = r.Buttons
	buf[1] = byte(r.X)
	buf[2] = byte(r.Y)
	buf[3] = byte(r.Wheel)
	return MouseReportSize
}

// Clear resets the mouse report.
func (r *MouseReport) Clear() {
	r.Buttons = 0
	r.X = 0
	r.Y = 0
	r.Wheel = 0
}

// ReportWriter sends input reports to the host. A USB HID class driver
// exposing keyboard and mouse interfaces satisfies it.
type ReportWriter interface {
	SendKeyboardReport(ctx context.Context, report *KeyboardReport) error
	SendMouseReport(ctx context.Context, report *MouseReport) error
}

// ReportKind distinguishes recorded reports.
type ReportKind uint8

// Report kinds.
const (
	ReportKeyboard ReportKind = iota
	ReportMouse
)

// String returns a string representation of the report kind.
func (k ReportKind) String() string {
	switch k {
	case ReportKeyboard:
		return "keyboard"
	case ReportMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Report is a marshaled input report captured by a [Recorder].
type Report struct {
	Kind ReportKind
	Data [KeyboardReportSize]byte
	Len  int
}

// Bytes returns the marshaled report.
func (r Report) Bytes() []byte {
	return r.Data[:r.Len]
}

// String formats the report as kind followed by hex bytes.
func (r Report) String() string {
	return fmt.Sprintf("%s % x", r.Kind, r.Bytes())
}

// Recorder is a [ReportWriter] that keeps every report in memory.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

// SendKeyboardReport records a keyboard report.
func (r *Recorder) SendKeyboardReport(ctx context.Context, report *KeyboardReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rep := Report{Kind: ReportKeyboard}
	rep.Len = report.MarshalTo(rep.Data[:])
	r.append(rep)
	return nil
}

// SendMouseReport records a mouse report.
func (r *Recorder) SendMouseReport(ctx context.Context, report *MouseReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rep := Report{Kind: ReportMouse}
	rep.Len = report.MarshalTo(rep.Data[:])
	r.append(rep)
	return nil
}

func (r *Recorder) append(rep Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, rep)
	pkg.LogDebug(pkg.ComponentReport, "report", "kind", rep.Kind, "data", rep.Bytes())
}

// Reports returns a copy of the recorded reports.
func (r *Recorder) Reports() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Drain returns the recorded reports and forgets them.
func (r *Recorder) Drain() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := r.reports
	r.reports = nil
	return out
}

var _ ReportWriter = (*Recorder)(nil)
