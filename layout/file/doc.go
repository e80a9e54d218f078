// Package file loads keymap tables from layout documents.
//
// TOML, YAML and JSON documents share one structure, checked against an
// embedded JSON Schema before conversion:
//
//	[[layers]]
//	id = 1
//	name = "shift"
//	default = { do = "from", layer = 0, mask = "SHIFT" }
//	chords = [
//	  { chord = "v___", do = "hit", key = "DELETE" },
//	]
//
// Files with the .chords extension are parsed by package dsl. Every
// table returned has passed [layout.Validate].
//
// A [Watcher] reloads a file into a [layout.Live] whenever it changes.
package file
