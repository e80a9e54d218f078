package driver

import (
	"fmt"
	"strings"

	"github.com/ardnew/chordkb/chord"
)

// ScriptSource replays a fixed sequence of samples. Once exhausted it keeps
// reporting all switches released.
type ScriptSource struct {
	samples []chord.SwitchSet
	next    int
}

// NewScriptSource creates a source replaying samples in order.
func NewScriptSource(samples ...chord.SwitchSet) *ScriptSource {
	return &ScriptSource{samples: samples}
}

// ParseScript parses samples separated by whitespace or commas. Each sample
// is anything [chord.ParseSwitchSet] accepts. A '#' starts a comment that
// runs to the end of the line.
func ParseScript(s string) (*ScriptSource, error) {
	var samples []chord.SwitchSet
	for n, line := range strings.Split(s, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, f := range fields {
			sw, err := chord.ParseSwitchSet(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			samples = append(samples, sw)
		}
	}
	return NewScriptSource(samples...), nil
}

// Sample returns the next sample, or 0 after the script ends.
func (s *ScriptSource) Sample() chord.SwitchSet {
	if s.next >= len(s.samples) {
		return 0
	}
	sw := s.samples[s.next]
	s.next++
	return sw
}

// Done reports whether every sample has been returned.
func (s *ScriptSource) Done() bool {
	return s.next >= len(s.samples)
}

// Len returns the number of samples in the script.
func (s *ScriptSource) Len() int {
	return len(s.samples)
}

// Rewind restarts the script.
func (s *ScriptSource) Rewind() {
	s.next = 0
}
