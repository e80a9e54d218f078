package dsl

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a complete keymap.
type File struct {
	Layers []*LayerDecl `parser:"@@*"`
}

// LayerDecl declares one layer.
// Example: layer 1 "shift" { else => from 0 + SHIFT }
type LayerDecl struct {
	Pos lexer.Position

	ID      int      `parser:"KwLayer @Int"`
	Name    string   `parser:"@( String | Chord )? LBrace"`
	Entries []*Entry `parser:"@@* RBrace"`
}

// Entry is a chord binding or an unchorded key.
type Entry struct {
	Pos lexer.Position

	Unchorded *UnchordedEntry `parser:"  KwUnchorded @@"`
	Binding   *BindingEntry   `parser:"| @@"`
}

// UnchordedEntry binds a single switch as an ordinary key.
// Example: unchorded "___^" => MOUSE_LEFT_BTN
type UnchordedEntry struct {
	Switch string   `parser:"@Chord Arrow"`
	Key    *KeyExpr `parser:"@@"`
}

// BindingEntry binds a chord, or the layer fallback, to an action.
// Example: "__v_" => hit E
type BindingEntry struct {
	Chord  string      `parser:"( @Chord | @KwElse ) Arrow"`
	Action *ActionExpr `parser:"@@"`
}

// ActionExpr is one of the action forms.
type ActionExpr struct {
	Clear   bool       `parser:"  @KwClear"`
	Hit     *KeyExpr   `parser:"| KwHit @@"`
	Press   *KeyExpr   `parser:"| KwPress @@"`
	Release *KeyExpr   `parser:"| KwRelease @@"`
	Temp    *LayerRef  `parser:"| KwTemp @@"`
	Toggle  *KeyExpr   `parser:"| KwToggle @@"`
	Mask    *KeyExpr   `parser:"| KwMask @@"`
	From    *FromExpr  `parser:"| KwFrom @@"`
	Layer   *LayerExpr `parser:"| KwLayer @@"`
}

// LayerRef names a layer by ID.
type LayerRef struct {
	ID int `parser:"@Int"`
}

// FromExpr delegates to another layer with an optional extra mask.
// Example: from 0 + SHIFT
type FromExpr struct {
	Layer int      `parser:"@Int"`
	Mask  *KeyExpr `parser:"( Plus @@ )?"`
}

// LayerExpr switches the persistent layer, optionally emitting a key.
// Example: layer 2 hit MOUSE_ENABLE_TOGGLE
type LayerExpr struct {
	Layer int      `parser:"@Int"`
	Hit   *KeyExpr `parser:"( KwHit @@ )?"`
}

// KeyExpr is a key with modifiers, e.g. E | SHIFT.
type KeyExpr struct {
	Parts []string `parser:"@( Ident | Hex | Int ) ( Pipe @( Ident | Hex | Int ) )*"`
}

// String joins the key parts.
func (k *KeyExpr) String() string {
	return strings.Join(k.Parts, "|")
}
