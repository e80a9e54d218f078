package chord

import (
	"errors"
	"testing"

	"github.com/ardnew/chordkb/pkg"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		in   string
		want SwitchSet
	}{
		{"____", 0},
		{"....", 0},
		{"^___", PinkyTip},
		{"v___", PinkyBase},
		{"%___", PinkyTip | PinkyBase},
		{"___v", IndexBase},
		{"_^_%", RingTip | IndexTip | IndexBase},
		{"%%%%", 0xFF},
		{"v^_v", PinkyBase | RingTip | IndexBase},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNotation(tt.in)
			if err != nil {
				t.Fatalf("ParseNotation(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseNotation(%q) = %08b, want %08b", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNotation_Invalid(t *testing.T) {
	for _, in := range []string{"", "___", "_____", "abcd", "^^^x"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseNotation(in); !errors.Is(err, pkg.ErrInvalidChord) {
				t.Errorf("ParseNotation(%q) error = %v, want ErrInvalidChord", in, err)
			}
		})
	}
}

func TestSwitchSet_String(t *testing.T) {
	for s := 0; s < 256; s++ {
		set := SwitchSet(s)
		back, err := ParseNotation(set.String())
		if err != nil || back != set {
			t.Fatalf("ParseNotation(%q) = %08b, %v; want %08b", set.String(), back, err, set)
		}
	}
	if got := MustParse("_^_%").String(); got != "_^_%" {
		t.Errorf("String() = %q, want %q", got, "_^_%")
	}
}

func TestSwitchSet_Bits(t *testing.T) {
	tests := []struct {
		set     SwitchSet
		highest SwitchSet
		count   int
	}{
		{0, 0, 0},
		{0b00000001, 0b00000001, 1},
		{0b00100011, 0b00100000, 3},
		{0b11111111, 0b10000000, 8},
	}

	for _, tt := range tests {
		t.Run(tt.set.String(), func(t *testing.T) {
			if got := tt.set.HighestBit(); got != tt.highest {
				t.Errorf("HighestBit() = %08b, want %08b", got, tt.highest)
			}
			if got := tt.set.Count(); got != tt.count {
				t.Errorf("Count() = %d, want %d", got, tt.count)
			}
		})
	}

	if !SwitchSet(0b00100011).Has(MiddleTip | IndexBase) {
		t.Error("Has() = false, want true")
	}
	if SwitchSet(0b00100011).Has(PinkyTip) {
		t.Error("Has(PinkyTip) = true, want false")
	}
}

func TestParseSwitchSet(t *testing.T) {
	tests := []struct {
		in   string
		want SwitchSet
	}{
		{"_^_%", 0b00100011},
		{"0b00100011", 0b00100011},
		{"0x23", 0x23},
		{"35", 35},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSwitchSet(tt.in)
			if err != nil {
				t.Fatalf("ParseSwitchSet(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSwitchSet(%q) = %08b, want %08b", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseSwitchSet("256"); !errors.Is(err, pkg.ErrInvalidChord) {
		t.Errorf("ParseSwitchSet(256) error = %v, want ErrInvalidChord", err)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse("bad")
}
