// Package chord implements chord resolution for an eight-switch chorded
// keyboard.
//
// Each finger has a tip and a base switch. A [SwitchSet] holds the state of
// all eight, pinky in the most significant pair. Switches pressed during a
// gesture are accumulated and the union is resolved only once every switch
// is released, so press order within a chord does not matter.
//
// Resolution goes through a [Lookup] that maps a chord on a layer to an
// [Action]. Actions either produce an [Outcome] or change engine state:
// the persistent layer, a one-shot temporary layer, and sticky or one-shot
// modifier masks. Layers may declare unchorded switches that behave as
// ordinary make/break keys; see [UnchordedLookup].
//
// # Chord Notation
//
// Chords are written as four characters, pinky first:
//
//	^  tip switch
//	v  base switch
//	%  both switches
//	_  neither (also '.')
//
// For example "_^_%" is ring tip plus index tip and base.
//
// # Usage
//
//	eng := chord.NewEngine(table)
//	for {
//	    out := eng.Handle(source.Sample())
//	    if !out.IsNothing() {
//	        dispatch(out)
//	    }
//	}
package chord
