// Package hid encodes chord engine output as USB HID boot keyboard and
// mouse input reports.
//
// The package does not implement a USB stack. It provides the report
// layouts and usage constants a HID class driver needs, and the
// [ReportWriter] interface such a driver satisfies.
//
// # Held-State Keyboard Report
//
// [KeyboardReport] tracks up to six held keys plus the modifier byte.
// [KeyboardReport.Press] and [KeyboardReport.Release] return
// [pkg.ErrAlreadyPressed], [pkg.ErrAlreadyReleased] or [pkg.ErrTooManyKeys]
// so callers can detect unbalanced press/release sequences:
//
//	var kbd hid.KeyboardReport
//	kbd.Press(hid.KeyA)
//	w.SendKeyboardReport(ctx, &kbd)
//	kbd.Release(hid.KeyA)
//	w.SendKeyboardReport(ctx, &kbd)
//
// # Zero-Allocation Design
//
// Reports are fixed-size values marshaled into caller-provided buffers with
// MarshalTo, which returns 0 when the buffer is too small.
package hid
