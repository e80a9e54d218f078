package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/hid"
	"github.com/ardnew/chordkb/pkg"
)

// WheelStep is the wheel movement sent for one wheel pseudo key.
const WheelStep = 10

// Dispatcher turns engine outcomes into keyboard and mouse reports.
// It keeps the held state of both reports between calls.
//
// Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	writer   hid.ReportWriter
	keyboard hid.KeyboardReport
	mouse    hid.MouseReport

	mouseEnabled bool
	dragging     bool
}

// NewDispatcher creates a dispatcher that sends reports to w.
func NewDispatcher(w hid.ReportWriter) *Dispatcher {
	return &Dispatcher{writer: w}
}

// MouseEnabled reports whether pointer motion is enabled. The state is
// flipped by the [chord.MouseEnableToggle] pseudo key.
func (d *Dispatcher) MouseEnabled() bool {
	return d.mouseEnabled
}

// Dragging reports whether the left button is latched by
// [chord.MouseLeftDragToggle].
func (d *Dispatcher) Dragging() bool {
	return d.dragging
}

// Keyboard returns a copy of the held keyboard report.
func (d *Dispatcher) Keyboard() hid.KeyboardReport {
	return d.keyboard
}

// Dispatch sends the reports for one engine outcome. Nothing sends nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, o chord.Outcome) error {
	if d.writer == nil {
		return pkg.ErrNotConfigured
	}
	if o.IsNothing() {
		return nil
	}
	pkg.LogDebug(pkg.ComponentDriver, "dispatch", "outcome", o)

	if o.Key.IsPseudo() {
		return d.pseudo(ctx, o)
	}
	switch o.Kind {
	case chord.KeyHit:
		return d.hit(ctx, o.Key)
	case chord.KeyPress:
		return d.press(ctx, o.Key)
	case chord.KeyRelease:
		return d.release(ctx, o.Key)
	default:
		return fmt.Errorf("outcome %v: %w", o.Kind, pkg.ErrInvalidParameter)
	}
}

// Move sends a relative pointer movement if the mouse is enabled.
func (d *Dispatcher) Move(ctx context.Context, dx, dy int8) error {
	if !d.mouseEnabled || (dx == 0 && dy == 0) {
		return nil
	}
	d.mouse.X, d.mouse.Y = dx, dy
	err := d.sendMouse(ctx)
	d.mouse.X, d.mouse.Y = 0, 0
	return err
}

// Reset releases every held key and button. Empty reports are sent only
// for the reports that had something held.
func (d *Dispatcher) Reset(ctx context.Context) error {
	var errs []error
	if !d.keyboard.IsEmpty() {
		d.keyboard.Clear()
		errs = append(errs, d.sendKeyboard(ctx))
	}
	if d.mouse.Buttons != 0 {
		d.mouse.Clear()
		errs = append(errs, d.sendMouse(ctx))
	}
	d.dragging = false
	return errors.Join(errs...)
}

// hit presses the key with its modifiers, sends, then clears only what the
// hit added and sends again.
func (d *Dispatcher) hit(ctx context.Context, k chord.Key) error {
	added := k.Modifiers() &^ d.keyboard.Modifiers
	d.keyboard.Modifiers |= added

	code := k.Code()
	pressed := false
	if code != hid.KeyNone {
		switch err := d.keyboard.Press(code); {
		case err == nil:
			pressed = true
		case errors.Is(err, pkg.ErrAlreadyPressed):
		default:
			d.keyboard.Modifiers &^= added
			return fmt.Errorf("hit %v: %w", k, err)
		}
	}
	if err := d.sendKeyboard(ctx); err != nil {
		return err
	}

	d.keyboard.Modifiers &^= added
	if pressed {
		_ = d.keyboard.Release(code)
	}
	return d.sendKeyboard(ctx)
}

// press holds the key with its modifiers. Modifiers pressed with a keycode
// are owned by it; a modifier-only press holds them until a modifier-only
// release.
func (d *Dispatcher) press(ctx context.Context, k chord.Key) error {
	code := k.Code()
	if code == hid.KeyNone {
		d.keyboard.HoldModifiers(k.Modifiers())
		return d.sendKeyboard(ctx)
	}
	if err := d.keyboard.PressWith(code, k.Modifiers()); err != nil {
		return fmt.Errorf("press %v: %w", k, err)
	}
	return d.sendKeyboard(ctx)
}

// release lets go of a held keycode and the modifiers it was pressed with.
// The modifier flags on a keycode release are ignored since a temporary
// plus mask applies to the press only.
func (d *Dispatcher) release(ctx context.Context, k chord.Key) error {
	code := k.Code()
	if code == hid.KeyNone {
		d.keyboard.ReleaseModifiers(k.Modifiers())
		return d.sendKeyboard(ctx)
	}
	if err := d.keyboard.Release(code); err != nil {
		return fmt.Errorf("release %v: %w", k, err)
	}
	return d.sendKeyboard(ctx)
}

// pseudo handles pseudo keys. The held buttons follow press and release;
// every other pseudo key acts once, on hit or press, and ignores release.
func (d *Dispatcher) pseudo(ctx context.Context, o chord.Outcome) error {
	code := chord.Key(o.Key.Code())

	switch code {
	case chord.MouseLeftButton:
		return d.hold(ctx, o.Kind, hid.MouseButtonLeft)
	case chord.MouseRightButton:
		return d.hold(ctx, o.Kind, hid.MouseButtonRight)
	}
	if o.Kind == chord.KeyRelease {
		return nil
	}

	switch code {
	case chord.MouseEnableToggle:
		d.mouseEnabled = !d.mouseEnabled
		pkg.LogInfo(pkg.ComponentDriver, "mouse toggled", "enabled", d.mouseEnabled)
		return nil
	case chord.MouseLeftDragToggle:
		d.dragging = !d.dragging
		return d.button(ctx, hid.MouseButtonLeft, d.dragging)
	case chord.MouseLeftClick:
		d.dragging = false
		return d.click(ctx, hid.MouseButtonLeft)
	case chord.MouseRightPress:
		return d.button(ctx, hid.MouseButtonRight, true)
	case chord.MouseRightRelease:
		return d.button(ctx, hid.MouseButtonRight, false)
	case chord.MouseRightClick:
		return d.click(ctx, hid.MouseButtonRight)
	case chord.MouseMiddlePress:
		return d.button(ctx, hid.MouseButtonMiddle, true)
	case chord.MouseMiddleRelease:
		return d.button(ctx, hid.MouseButtonMiddle, false)
	case chord.MouseMiddleClick:
		return d.click(ctx, hid.MouseButtonMiddle)
	case chord.MouseWheelDown:
		return d.wheel(ctx, -WheelStep)
	case chord.MouseWheelUp:
		return d.wheel(ctx, WheelStep)
	default:
		pkg.LogDebug(pkg.ComponentDriver, "unassigned pseudo key", "key", o.Key)
		return nil
	}
}

func (d *Dispatcher) hold(ctx context.Context, kind chord.OutcomeKind, mask uint8) error {
	// Letting go of the left button ends a latched drag.
	if mask == hid.MouseButtonLeft && kind != chord.KeyPress {
		d.dragging = false
	}
	switch kind {
	case chord.KeyPress:
		return d.button(ctx, mask, true)
	case chord.KeyRelease:
		return d.button(ctx, mask, false)
	default:
		return d.click(ctx, mask)
	}
}

func (d *Dispatcher) button(ctx context.Context, mask uint8, down bool) error {
	if down {
		d.mouse.Buttons |= mask
	} else {
		d.mouse.Buttons &^= mask
	}
	return d.sendMouse(ctx)
}

func (d *Dispatcher) click(ctx context.Context, mask uint8) error {
	if err := d.button(ctx, mask, true); err != nil {
		return err
	}
	return d.button(ctx, mask, false)
}

func (d *Dispatcher) wheel(ctx context.Context, step int8) error {
	d.mouse.Wheel = step
	err := d.sendMouse(ctx)
	d.mouse.Wheel = 0
	return err
}

func (d *Dispatcher) sendKeyboard(ctx context.Context) error {
	if err := d.writer.SendKeyboardReport(ctx, &d.keyboard); err != nil {
		return fmt.Errorf("send keyboard report: %w", err)
	}
	return nil
}

func (d *Dispatcher) sendMouse(ctx context.Context) error {
	if err := d.writer.SendMouseReport(ctx, &d.mouse); err != nil {
		return fmt.Errorf("send mouse report: %w", err)
	}
	return nil
}
