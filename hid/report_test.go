package hid

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ardnew/chordkb/pkg"
)

func TestKeyboardReport_PressRelease(t *testing.T) {
	var r KeyboardReport

	if err := r.Press(KeyA); err != nil {
		t.Fatalf("Press(KeyA) = %v, want nil", err)
	}
	if err := r.Press(KeyA); !errors.Is(err, pkg.ErrAlreadyPressed) {
		t.Errorf("Press(KeyA) again = %v, want %v", err, pkg.ErrAlreadyPressed)
	}
	if err := r.Press(KeyLeftShift); err != nil {
		t.Fatalf("Press(KeyLeftShift) = %v, want nil", err)
	}
	if r.Modifiers != ModLeftShift {
		t.Errorf("Modifiers = %#02x, want %#02x", r.Modifiers, ModLeftShift)
	}
	if r.Keys[0] != KeyA {
		t.Errorf("Keys[0] = %#02x, want %#02x", r.Keys[0], KeyA)
	}

	if err := r.Release(KeyA); err != nil {
		t.Fatalf("Release(KeyA) = %v, want nil", err)
	}
	if err := r.Release(KeyA); !errors.Is(err, pkg.ErrAlreadyReleased) {
		t.Errorf("Release(KeyA) again = %v, want %v", err, pkg.ErrAlreadyReleased)
	}
	if err := r.Release(KeyLeftShift); err != nil {
		t.Fatalf("Release(KeyLeftShift) = %v, want nil", err)
	}
	if err := r.Release(KeyLeftShift); !errors.Is(err, pkg.ErrAlreadyReleased) {
		t.Errorf("Release(KeyLeftShift) again = %v, want %v", err, pkg.ErrAlreadyReleased)
	}
	if !r.IsEmpty() {
		t.Errorf("report not empty after releases: %+v", r)
	}
}

func TestKeyboardReport_ModifierOwners(t *testing.T) {
	var r KeyboardReport

	if err := r.PressWith(KeyA, ModLeftCtrl|ModLeftShift); err != nil {
		t.Fatalf("PressWith(KeyA) = %v", err)
	}
	if err := r.PressWith(KeyB, ModLeftShift); err != nil {
		t.Fatalf("PressWith(KeyB) = %v", err)
	}
	r.HoldModifiers(ModLeftCtrl)

	if err := r.PressWith(KeyA, ModLeftAlt); !errors.Is(err, pkg.ErrAlreadyPressed) {
		t.Errorf("PressWith(KeyA) again = %v, want %v", err, pkg.ErrAlreadyPressed)
	}
	if r.Modifiers&ModLeftAlt != 0 {
		t.Error("failed PressWith left its modifiers set")
	}

	if err := r.Release(KeyA); err != nil {
		t.Fatalf("Release(KeyA) = %v", err)
	}
	if want := uint8(ModLeftCtrl | ModLeftShift); r.Modifiers != want {
		t.Errorf("Modifiers = %#02x, want %#02x", r.Modifiers, want)
	}
	if err := r.Release(KeyB); err != nil {
		t.Fatalf("Release(KeyB) = %v", err)
	}
	if r.Modifiers != ModLeftCtrl {
		t.Errorf("Modifiers = %#02x, want %#02x", r.Modifiers, ModLeftCtrl)
	}
	r.ReleaseModifiers(ModLeftCtrl)
	if !r.IsEmpty() {
		t.Errorf("report not empty after releases: %+v", r)
	}

	r.HoldModifiers(ModLeftGUI)
	r.Clear()
	if err := r.PressWith(KeyC, 0); err != nil {
		t.Fatalf("PressWith(KeyC) = %v", err)
	}
	if err := r.Release(KeyC); err != nil {
		t.Fatalf("Release(KeyC) = %v", err)
	}
	if !r.IsEmpty() {
		t.Errorf("Clear() kept a sticky modifier: %+v", r)
	}
}

func TestKeyboardReport_DuplicateAfterHole(t *testing.T) {
	var r KeyboardReport
	for _, k := range []uint8{KeyA, KeyB, KeyC} {
		if err := r.Press(k); err != nil {
			t.Fatalf("Press(%#02x) = %v", k, err)
		}
	}
	if err := r.Release(KeyA); err != nil {
		t.Fatalf("Release(KeyA) = %v", err)
	}
	if err := r.Press(KeyC); !errors.Is(err, pkg.ErrAlreadyPressed) {
		t.Errorf("Press(KeyC) = %v, want %v", err, pkg.ErrAlreadyPressed)
	}
	if err := r.Press(KeyD); err != nil {
		t.Fatalf("Press(KeyD) = %v", err)
	}
	if r.Keys[0] != KeyD {
		t.Errorf("Keys[0] = %#02x, want hole reused by %#02x", r.Keys[0], KeyD)
	}
}

func TestKeyboardReport_TooManyKeys(t *testing.T) {
	var r KeyboardReport
	for k := uint8(KeyA); k < KeyA+6; k++ {
		if err := r.Press(k); err != nil {
			t.Fatalf("Press(%#02x) = %v", k, err)
		}
	}
	if err := r.Press(KeyZ); !errors.Is(err, pkg.ErrTooManyKeys) {
		t.Errorf("Press(KeyZ) = %v, want %v", err, pkg.ErrTooManyKeys)
	}
}

func TestKeyboardReport_MarshalTo(t *testing.T) {
	r := KeyboardReport{Modifiers: ModLeftCtrl | ModLeftAlt, Keys: [6]uint8{KeyDelete}}

	var buf [KeyboardReportSize]byte
	if n := r.MarshalTo(buf[:]); n != KeyboardReportSize {
		t.Fatalf("MarshalTo() = %d, want %d", n, KeyboardReportSize)
	}
	want := []byte{0x05, 0x00, KeyDelete, 0, 0, 0, 0, 0}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("MarshalTo() wrote % x, want % x", buf[:], want)
	}
	if n := r.MarshalTo(buf[:4]); n != 0 {
		t.Errorf("MarshalTo(short) = %d, want 0", n)
	}
}

func TestMouseReport_MarshalTo(t *testing.T) {
	r := MouseReport{Buttons: MouseButtonRight, X: -1, Y: 2, Wheel: -10}

	var buf [MouseReportSize]byte
	if n := r.MarshalTo(buf[:]); n != MouseReportSize {
		t.Fatalf("MarshalTo() = %d, want %d", n, MouseReportSize)
	}
	want := []byte{MouseButtonRight, 0xFF, 0x02, 0xF6}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("MarshalTo() wrote % x, want % x", buf[:], want)
	}

	r.Clear()
	if r != (MouseReport{}) {
		t.Errorf("Clear() left %+v", r)
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	ctx := context.Background()

	kbd := KeyboardReport{Keys: [6]uint8{KeyE}}
	if err := rec.SendKeyboardReport(ctx, &kbd); err != nil {
		t.Fatalf("SendKeyboardReport() = %v", err)
	}
	mouse := MouseReport{Wheel: 10}
	if err := rec.SendMouseReport(ctx, &mouse); err != nil {
		t.Fatalf("SendMouseReport() = %v", err)
	}

	got := rec.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d reports, want 2", len(got))
	}
	if got[0].Kind != ReportKeyboard || got[0].Len != KeyboardReportSize || got[0].Data[2] != KeyE {
		t.Errorf("report 0 = %v", got[0])
	}
	if got[1].Kind != ReportMouse || got[1].Len != MouseReportSize || got[1].Data[3] != 10 {
		t.Errorf("report 1 = %v", got[1])
	}
	if n := len(rec.Reports()); n != 0 {
		t.Errorf("Reports() after Drain = %d, want 0", n)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := rec.SendKeyboardReport(cancelled, &kbd); !errors.Is(err, context.Canceled) {
		t.Errorf("SendKeyboardReport(cancelled) = %v, want %v", err, context.Canceled)
	}
}

func TestReportKind_String(t *testing.T) {
	tests := []struct {
		kind ReportKind
		want string
	}{
		{ReportKeyboard, "keyboard"},
		{ReportMouse, "mouse"},
		{ReportKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ReportKind(%d).String() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
