package file

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/layout/dsl"
	"github.com/ardnew/chordkb/pkg"
)

// Format identifies a layout document encoding.
type Format int

// Layout formats.
const (
	FormatAuto Format = iota // Detect from content
	FormatTOML
	FormatYAML
	FormatJSON
	FormatDSL // Chord keymap language, see package dsl
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatDSL:
		return "chords"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name or file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "chords", "dsl":
		return FormatDSL, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", pkg.ErrUnsupportedFormat, name)
	}
}

// FormatFromPath returns the format implied by a file extension, or
// FormatAuto for unknown extensions.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatAuto
	}
	return f
}

//go:embed layout.schema.json
var schemaSource []byte

const schemaURL = "https://github.com/ardnew/chordkb/layout.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Load reads a layout file, choosing the format by extension.
func Load(path string) (*layout.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	t, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pkg.LogDebug(pkg.ComponentLayout, "layout file loaded", "path", path, "layers", t.Len())
	return t, nil
}

// Decode converts a layout document to a validated table.
func Decode(data []byte, f Format) (*layout.Table, error) {
	if f == FormatDSL {
		t, err := dsl.Parse("", data)
		if err != nil {
			return nil, err
		}
		if t.Len() == 0 {
			return nil, fmt.Errorf("%w: no layers", pkg.ErrSchema)
		}
		if err := layout.Validate(t); err != nil {
			return nil, err
		}
		return t, nil
	}
	d, err := DecodeDocument(data, f)
	if err != nil {
		return nil, err
	}
	return d.Table()
}

// DecodeDocument decodes and schema-checks a TOML, YAML or JSON document.
func DecodeDocument(data []byte, f Format) (*Document, error) {
	generic, err := decodeGeneric(data, f)
	if err != nil {
		return nil, err
	}
	// Normalize to JSON types before schema validation.
	normalized, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUnsupportedFormat, err)
	}
	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUnsupportedFormat, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrSchema, err)
	}

	var d Document
	if err := json.Unmarshal(normalized, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrSchema, err)
	}
	return &d, nil
}

func decodeGeneric(data []byte, f Format) (any, error) {
	switch f {
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		return v, nil
	case FormatJSON:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
		return v, nil
	case FormatAuto:
		return autoDetect(data)
	default:
		return nil, fmt.Errorf("%w: %s", pkg.ErrUnsupportedFormat, f)
	}
}

// autoDetect tries TOML, then JSON, then YAML.
func autoDetect(data []byte) (any, error) {
	for _, f := range []Format{FormatTOML, FormatJSON, FormatYAML} {
		if v, err := decodeGeneric(data, f); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: tried TOML, JSON, YAML", pkg.ErrUnsupportedFormat)
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *Document, f Format) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, FormatAuto:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("%w: cannot encode %s", pkg.ErrUnsupportedFormat, f)
	}
}
