// Command chordkb drives the chord engine from the command line: replay
// switch samples, check and print layouts, or chord interactively in a
// terminal pad.
package main

import "github.com/ardnew/chordkb/cmd/chordkb/cmd"

func main() {
	cmd.Execute()
}
