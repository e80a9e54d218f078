package chord

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/ardnew/chordkb/pkg"
)

// SwitchSet is a bitmask of the eight physical switches. From the most
// significant bit down, pairs of bits are the (tip, base) switches of the
// pinky, ring, middle and index fingers.
//
// E.g.: 0b10_00_00_01 is pinky tip + index base pressed.
type SwitchSet uint8

// Individual switches.
const (
	PinkyTip   SwitchSet = 1 << 7
	PinkyBase  SwitchSet = 1 << 6
	RingTip    SwitchSet = 1 << 5
	RingBase   SwitchSet = 1 << 4
	MiddleTip  SwitchSet = 1 << 3
	MiddleBase SwitchSet = 1 << 2
	IndexTip   SwitchSet = 1 << 1
	IndexBase  SwitchSet = 1 << 0
)

// Has reports whether every switch of o is in s.
func (s SwitchSet) Has(o SwitchSet) bool {
	return s&o == o
}

// Count returns the number of switches in s.
func (s SwitchSet) Count() int {
	return bits.OnesCount8(uint8(s))
}

// HighestBit returns the most significant switch of s as a single-switch
// set, or 0 if s is empty.
func (s SwitchSet) HighestBit() SwitchSet {
	if s == 0 {
		return 0
	}
	return 1 << (bits.Len8(uint8(s)) - 1)
}

// String returns s in chord notation, e.g. "v^_%".
func (s SwitchSet) String() string {
	var buf [4]byte
	for i := range buf {
		buf[i] = crumbChars[(s>>(6-2*i))&0b11]
	}
	return string(buf[:])
}

// crumbChars maps a finger's (tip, base) pair to its notation character.
var crumbChars = [4]byte{'_', 'v', '^', '%'}

// ParseNotation converts chord notation to a SwitchSet. The notation has
// exactly four characters, pinky finger first, one per finger:
//
//	'^' tip switch (0b10)
//	'v' base switch (0b01)
//	'%' both switches (0b11)
//	'_' or '.' neither (0b00)
func ParseNotation(s string) (SwitchSet, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q: want 4 characters", pkg.ErrInvalidChord, s)
	}
	var set SwitchSet
	for i := 0; i < 4; i++ {
		var c SwitchSet
		switch s[i] {
		case '^':
			c = 0b10
		case 'v':
			c = 0b01
		case '%':
			c = 0b11
		case '_', '.':
			c = 0b00
		default:
			return 0, fmt.Errorf("%w: %q: unknown crumb %q", pkg.ErrInvalidChord, s, s[i])
		}
		set |= c << (6 - 2*i)
	}
	return set, nil
}

// MustParse is like [ParseNotation] but panics on malformed notation.
// It is intended for static layout tables.
func MustParse(s string) SwitchSet {
	set, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return set
}

// ParseSwitchSet accepts chord notation as well as binary ("0b00100011"),
// hexadecimal ("0x23") and decimal ("35") forms. Underscores are allowed
// as digit separators in the numeric forms.
func ParseSwitchSet(s string) (SwitchSet, error) {
	s = strings.TrimSpace(s)
	if set, err := ParseNotation(s); err == nil {
		return set, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", pkg.ErrInvalidChord, s)
	}
	return SwitchSet(v), nil
}
