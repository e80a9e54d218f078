package layout

import (
	"fmt"
	"io"
)

// Cheatsheet writes a listing of every layer of t, one binding per line.
func Cheatsheet(w io.Writer, t *Table) error {
	for i, l := range t.Layers() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := fmt.Sprintf("layer %d", l.ID)
		if l.Name != "" {
			header += fmt.Sprintf(" %q", l.Name)
		}
		if l.UnchordedMask != 0 {
			header += " unchorded " + l.UnchordedMask.String()
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, u := range l.UnchordedKeys() {
			if _, err := fmt.Fprintf(w, "  %s  hold %s\n", u.Switch, u.Key); err != nil {
				return err
			}
		}
		for _, b := range l.Bindings() {
			label := b.Chord.String()
			if b.Chord == 0 {
				label = "else"
			}
			if _, err := fmt.Fprintf(w, "  %s  %s\n", label, b.Action); err != nil {
				return err
			}
		}
	}
	return nil
}
