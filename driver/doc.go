// Package driver connects the chord engine to its collaborators: a switch
// [Source] that supplies debounced samples, and a [Dispatcher] that turns
// engine outcomes into HID keyboard and mouse reports.
//
// # Scan loop
//
// A [Loop] samples the source at a fixed interval (2 ms by default), feeds
// each sample to the engine and dispatches the outcome:
//
//	loop := &driver.Loop{
//	    Engine:     chord.NewEngine(live),
//	    Source:     src,
//	    Dispatcher: driver.NewDispatcher(writer),
//	    Generation: live,
//	}
//	err := loop.Run(ctx)
//
// When Generation is set, the loop resets the engine and releases every
// held key and button between two samples whenever the generation changes,
// so a hot-reloaded layout never resolves a chord begun under the old one.
//
// # Pseudo keys
//
// Keycodes from [chord.PseudoMin] upward never reach the host as keyboard
// usages. The dispatcher intercepts them and drives the mouse report
// instead: enable toggle, left drag toggle, clicks, wheel steps and the held
// left and right buttons used by unchorded mouse layers.
package driver
