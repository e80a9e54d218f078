// Package layout provides keymap tables for the chord engine.
//
// A [Table] maps chords to actions per layer and implements
// [chord.UnchordedLookup]. Tables are built in code with the builder
// methods, or decoded from documents by the layout/file and layout/dsl
// packages. [Sample] returns a ready-to-use keymap.
//
// [Validate] reports configuration mistakes the engine would otherwise
// absorb silently, most importantly FromOtherPlusMask delegation loops.
//
// [Live] serves a table that can be replaced while the engine runs.
package layout
