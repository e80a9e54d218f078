package dsl

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the tokens of the chord keymap language.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Keywords are lowercase; key names are matched case-insensitively
	// later, so "e" and "E" both name the E key.
	{Name: "KwLayer", Pattern: `\blayer\b`},
	{Name: "KwUnchorded", Pattern: `\bunchorded\b`},
	{Name: "KwElse", Pattern: `\belse\b`},
	{Name: "KwClear", Pattern: `\bclear\b`},
	{Name: "KwHit", Pattern: `\bhit\b`},
	{Name: "KwPress", Pattern: `\bpress\b`},
	{Name: "KwRelease", Pattern: `\brelease\b`},
	{Name: "KwTemp", Pattern: `\btemp\b`},
	{Name: "KwToggle", Pattern: `\btoggle\b`},
	{Name: "KwMask", Pattern: `\bmask\b`},
	{Name: "KwFrom", Pattern: `\bfrom\b`},

	{Name: "Arrow", Pattern: `=>`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Plus", Pattern: `\+`},

	// Chord notation must come before general strings.
	{Name: "Chord", Pattern: `"[_.v^%]{4}"`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	{Name: "Hex", Pattern: `0[xX][0-9A-Fa-f]+`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
})
