// Package dsl parses the chord keymap language.
//
// A keymap is a list of layers. Each layer binds chords, written in chord
// notation, to actions:
//
//	# base layer
//	layer 0 "base" {
//	  "%%%%" => clear
//	  "__v_" => hit E
//	  "%__%" => temp 1
//	  "^^__" => mask CTRL
//	  "v^_v" => layer 2 hit MOUSE_ENABLE_TOGGLE
//	}
//
//	layer 1 "shift" {
//	  else   => from 0 + SHIFT
//	  "v___" => hit DELETE
//	}
//
//	layer 2 "mouse" {
//	  unchorded "___^" => MOUSE_LEFT_BTN
//	  "%%vv" => clear
//	}
//
// The else entry binds the fallback used for chords without a binding.
// Other actions are press, release, toggle (sticky mask), and from
// without a mask. Keys combine with '|', e.g. "hit E | SHIFT".
package dsl
