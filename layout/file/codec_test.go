package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/pkg"
)

const tomlLayout = `
[[layers]]
id = 0
name = "base"
chords = [
  { chord = "__v_", do = "hit", key = "E" },
  { chord = "%__%", do = "temp-layer", layer = 1 },
  { chord = "^^__", do = "temp-mask", mask = "CTRL" },
  { chord = "v^_v", do = "layer-hit", layer = 2, key = "MOUSE_ENABLE_TOGGLE" },
  { chord = "%%%%", do = "clear" },
]

[[layers]]
id = 1
name = "shift"
default = { do = "from", layer = 0, mask = "SHIFT" }
chords = [
  { chord = "v___", do = "hit", key = "DELETE" },
]

[[layers]]
id = 2
name = "mouse"
unchorded = [
  { switch = "___^", key = "MOUSE_LEFT_BTN" },
]
chords = [
  { chord = "v___", do = "layer", layer = 0 },
  { chord = "%___", do = "toggle-mask", mask = "ALT" },
  { chord = "vv__", do = "press", key = "E|SHIFT" },
]
`

const yamlLayout = `
layers:
  - id: 0
    name: base
    chords:
      - {chord: "__v_", do: hit, key: E}
      - {chord: "%__%", do: temp-layer, layer: 1}
      - {chord: "^^__", do: temp-mask, mask: CTRL}
      - {chord: "v^_v", do: layer-hit, layer: 2, key: MOUSE_ENABLE_TOGGLE}
      - {chord: "%%%%", do: clear}
  - id: 1
    name: shift
    default: {do: from, layer: 0, mask: SHIFT}
    chords:
      - {chord: "v___", do: hit, key: DELETE}
  - id: 2
    name: mouse
    unchorded:
      - {switch: "___^", key: MOUSE_LEFT_BTN}
    chords:
      - {chord: "v___", do: layer, layer: 0}
      - {chord: "%___", do: toggle-mask, mask: ALT}
      - {chord: "vv__", do: press, key: "E|SHIFT"}
`

const jsonLayout = `{
  "layers": [
    {"id": 0, "name": "base", "chords": [
      {"chord": "__v_", "do": "hit", "key": "E"},
      {"chord": "%__%", "do": "temp-layer", "layer": 1},
      {"chord": "^^__", "do": "temp-mask", "mask": "CTRL"},
      {"chord": "v^_v", "do": "layer-hit", "layer": 2, "key": "MOUSE_ENABLE_TOGGLE"},
      {"chord": "%%%%", "do": "clear"}
    ]},
    {"id": 1, "name": "shift",
     "default": {"do": "from", "layer": 0, "mask": "SHIFT"},
     "chords": [{"chord": "v___", "do": "hit", "key": "DELETE"}]},
    {"id": 2, "name": "mouse",
     "unchorded": [{"switch": "___^", "key": "MOUSE_LEFT_BTN"}],
     "chords": [
      {"chord": "v___", "do": "layer", "layer": 0},
      {"chord": "%___", "do": "toggle-mask", "mask": "ALT"},
      {"chord": "vv__", "do": "press", "key": "E|SHIFT"}
    ]}
  ]
}`

const dslLayout = `
layer 0 "base" {
  "__v_" => hit E
  "%__%" => temp 1
  "^^__" => mask CTRL
  "v^_v" => layer 2 hit MOUSE_ENABLE_TOGGLE
  "%%%%" => clear
}
layer 1 "shift" {
  else => from 0 + SHIFT
  "v___" => hit DELETE
}
layer 2 "mouse" {
  unchorded "___^" => MOUSE_LEFT_BTN
  "v___" => layer 0
  "%___" => toggle ALT
  "vv__" => press E | SHIFT
}
`

func checkTable(t *testing.T, tbl *layout.Table) {
	t.Helper()
	want := map[chord.Layer]map[string]chord.Action{
		0: {
			"__v_": chord.Emit(chord.Hit(chord.KeyE)),
			"%__%": chord.TemporaryLayerSwitch(1),
			"^^__": chord.TemporaryPlusMask(chord.Ctrl),
			"v^_v": chord.LayerSwitchAndEmit(2, chord.Hit(chord.MouseEnableToggle)),
			"%%%%": chord.ClearState(),
		},
		1: {
			"____": chord.FromOtherPlusMask(0, chord.Shift),
			"v___": chord.Emit(chord.Hit(chord.KeyDelete)),
		},
		2: {
			"v___": chord.LayerSwitch(0),
			"%___": chord.TogglePlusMask(chord.Alt),
			"vv__": chord.Emit(chord.Press(chord.KeyE | chord.Shift)),
		},
	}
	require.Equal(t, len(want), tbl.Len())
	for layer, chords := range want {
		l, ok := tbl.Get(layer)
		require.True(t, ok)
		assert.Len(t, l.Bindings(), len(chords), "layer %d", layer)
		for notation, action := range chords {
			got, ok := tbl.Lookup(layer, chord.MustParse(notation))
			require.True(t, ok, "layer %d chord %s", layer, notation)
			assert.Equal(t, action, got, "layer %d chord %s", layer, notation)
		}
	}
	k, ok := tbl.UnchordedKey(2, chord.IndexTip)
	assert.True(t, ok)
	assert.Equal(t, chord.MouseLeftButton, k)
	assert.Equal(t, chord.IndexTip, tbl.Info(2).UnchordedMask)
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", tomlLayout, FormatTOML},
		{"yaml", yamlLayout, FormatYAML},
		{"json", jsonLayout, FormatJSON},
		{"dsl", dslLayout, FormatDSL},
		{"auto toml", tomlLayout, FormatAuto},
		{"auto yaml", yamlLayout, FormatAuto},
		{"auto json", jsonLayout, FormatAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			checkTable(t, tbl)
		})
	}
}

func TestDecode_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing layers", `{}`},
		{"empty layers", `{"layers": []}`},
		{"unknown field", `{"layers": [{"id": 0, "colour": "red"}]}`},
		{"bad chord", `{"layers": [{"id": 0, "chords": [{"chord": "abcd", "do": "clear"}]}]}`},
		{"unknown verb", `{"layers": [{"id": 0, "chords": [{"chord": "____", "do": "jump"}]}]}`},
		{"hit without key", `{"layers": [{"id": 0, "chords": [{"chord": "^___", "do": "hit"}]}]}`},
		{"layer without id", `{"layers": [{"id": 0, "chords": [{"chord": "^___", "do": "temp-layer"}]}]}`},
		{"mask without mask", `{"layers": [{"id": 0, "chords": [{"chord": "^___", "do": "temp-mask"}]}]}`},
		{"string id", `{"layers": [{"id": "zero"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkg.ErrSchema), "error = %v", err)
		})
	}
}

func TestDecode_TableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "unknown key",
			data: `{"layers": [{"id": 0, "chords": [{"chord": "^___", "do": "hit", "key": "HYPER"}]}]}`,
			want: pkg.ErrUnknownKey,
		},
		{
			name: "duplicate layer",
			data: `{"layers": [{"id": 0}, {"id": 0}]}`,
			want: pkg.ErrDuplicateLayer,
		},
		{
			name: "unknown layer",
			data: `{"layers": [{"id": 0, "chords": [{"chord": "^___", "do": "layer", "layer": 4}]}]}`,
			want: pkg.ErrUnknownLayer,
		},
		{
			name: "cycle",
			data: `{"layers": [{"id": 0, "default": {"do": "from", "layer": 0}}]}`,
			want: pkg.ErrDelegationCycle,
		},
		{
			name: "unchorded with two switches",
			data: `{"layers": [{"id": 0, "unchorded": [{"switch": "__^^", "key": "A"}]}]}`,
			want: pkg.ErrInvalidUnchorded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			assert.True(t, errors.Is(err, tt.want), "error = %v, want %v", err, tt.want)
		})
	}
}

func TestDecode_Unparseable(t *testing.T) {
	_, err := Decode([]byte("layers: [\n"), FormatAuto)
	assert.True(t, errors.Is(err, pkg.ErrUnsupportedFormat), "error = %v", err)

	_, err = Decode([]byte("x = "), FormatTOML)
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := FromTable(layout.Sample())
	for _, f := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, doc, f))

			tbl, err := Decode(buf.Bytes(), f)
			require.NoError(t, err, buf.String())
			assert.Equal(t, doc, FromTable(tbl))
		})
	}

	assert.True(t, errors.Is(Encode(&bytes.Buffer{}, doc, FormatDSL), pkg.ErrUnsupportedFormat))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"toml", FormatTOML},
		{".yml", FormatYAML},
		{"YAML", FormatYAML},
		{".json", FormatJSON},
		{".chords", FormatDSL},
		{"", FormatAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, pkg.ErrUnsupportedFormat))
	assert.Equal(t, FormatAuto, FormatFromPath("layout.conf"))
	assert.Equal(t, FormatTOML, FormatFromPath("/etc/chordkb/layout.toml"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"layout.toml":   tomlLayout,
		"layout.yaml":   yamlLayout,
		"layout.json":   jsonLayout,
		"layout.chords": dslLayout,
		"layout.conf":   tomlLayout,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			tbl, err := Load(path)
			require.NoError(t, err)
			checkTable(t, tbl)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
