package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/pkg"
)

// Validate checks a table for problems the engine would absorb silently:
// invalid actions, references to undefined layers, malformed unchorded
// keys, and FromOtherPlusMask delegations that loop. All problems found
// are joined into the returned error.
func Validate(t *Table) error {
	var errs []error
	for _, l := range t.Layers() {
		for _, b := range l.Bindings() {
			if err := validateAction(t, b.Action); err != nil {
				errs = append(errs, fmt.Errorf("layer %d chord %s: %w", l.ID, b.Chord, err))
			}
		}
		for _, u := range l.UnchordedKeys() {
			if u.Switch.Count() != 1 || !l.UnchordedMask.Has(u.Switch) {
				errs = append(errs, fmt.Errorf("layer %d switch %s: %w",
					l.ID, u.Switch, pkg.ErrInvalidUnchorded))
			}
		}
	}
	errs = append(errs, delegationCycles(t)...)
	return errors.Join(errs...)
}

func validateAction(t *Table, a chord.Action) error {
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: %s", pkg.ErrInvalidAction, a.Kind)
	}
	switch a.Kind {
	case chord.ActLayerSwitch, chord.ActTemporaryLayerSwitch,
		chord.ActFromOtherPlusMask, chord.ActLayerSwitchAndEmit:
		if _, ok := t.Get(a.Layer); !ok {
			return fmt.Errorf("%w: %d", pkg.ErrUnknownLayer, a.Layer)
		}
	}
	return nil
}

// delegationCycles reports each distinct loop of FromOtherPlusMask
// delegations once.
func delegationCycles(t *Table) []error {
	var errs []error
	seen := make(map[string]bool)
	for _, l := range t.Layers() {
		for c := 1; c <= 0xFF; c++ {
			cycle := delegationCycle(t, l.ID, chord.SwitchSet(c))
			if cycle == nil {
				continue
			}
			key := cycleKey(cycle)
			if seen[key] {
				continue
			}
			seen[key] = true
			errs = append(errs, fmt.Errorf("%w: %s (chord %s)",
				pkg.ErrDelegationCycle, formatPath(cycle), chord.SwitchSet(c)))
		}
	}
	return errs
}

// delegationCycle follows the resolution of c from start and returns the
// looping part of the path, first layer repeated at the end.
func delegationCycle(t *Table, start chord.Layer, c chord.SwitchSet) []chord.Layer {
	path := []chord.Layer{start}
	layer := start
	for {
		a, ok := t.Lookup(layer, c)
		if !ok {
			if a, ok = t.Lookup(layer, 0); !ok {
				return nil
			}
		}
		if a.Kind != chord.ActFromOtherPlusMask {
			return nil
		}
		layer = a.Layer
		if i := slices.Index(path, layer); i >= 0 {
			return append(path[i:], layer)
		}
		path = append(path, layer)
	}
}

func cycleKey(cycle []chord.Layer) string {
	members := slices.Clone(cycle[:len(cycle)-1])
	slices.Sort(members)
	return fmt.Sprint(members)
}

func formatPath(path []chord.Layer) string {
	parts := make([]string, len(path))
	for i, l := range path {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, " -> ")
}
