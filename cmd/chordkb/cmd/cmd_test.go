package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/chordkb/config"
)

const testKeymap = `
layer 0 "base" {
  "__v_" => hit E
  "%__%" => temp 1
}

layer 1 "shift" {
  else => from 0 + SHIFT
}
`

const cyclicKeymap = `
layer 0 { else => from 1 }
layer 1 { else => from 0 }
`

// execute runs the root command with a clean environment and flag state
// and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHORDKB_CONFIG_DIR", t.TempDir())
	for _, k := range []string{config.EnvLayout, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvScanInterval, config.EnvMaxDepth} {
		t.Setenv(k, "")
	}

	verbose, jsonLog = false, false
	configPath, layoutPath = "", ""
	cpuProfile, memProfile = "", ""
	simScript, simAll, simReports, simRepeat = "", false, true, 1
	configOutput, configForce = "", false
	showFormat = "cheatsheet"
	cfg = nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommands(t *testing.T) {
	keys := writeFile(t, "keys.chords", testKeymap)
	cyclic := writeFile(t, "cyclic.chords", cyclicKeymap)
	script := writeFile(t, "taps.txt", "# shift then e\n%__% ____\n__v_ ____\n")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantMissing []string
	}{
		{
			name: "sim sample layout",
			args: []string{"sim", "__v_", "____"},
			wantContain: []string{
				"KeyHit(E)",
				"keyboard 00 00 08 00 00 00 00 00",
				"keyboard 00 00 00 00 00 00 00 00",
			},
			wantMissing: []string{"Nothing"},
		},
		{
			name:        "sim appends release",
			args:        []string{"sim", "__v_"},
			wantContain: []string{"KeyHit(E)"},
		},
		{
			name:        "sim all",
			args:        []string{"sim", "--all", "--reports=false", "__v_", "____"},
			wantContain: []string{"Nothing", "KeyHit(E)"},
			wantMissing: []string{"keyboard"},
		},
		{
			name:        "sim script with layout",
			args:        []string{"sim", "--layout", keys, "--script", script},
			wantContain: []string{"KeyHit(E|SHIFT)", "keyboard 02 00 08"},
		},
		{
			name:        "sim shift then letter",
			args:        []string{"sim", "%__%", "____", "__v_", "____"},
			wantContain: []string{"KeyHit(E|SHIFT)", "keyboard 02 00 08"},
		},
		{
			name:        "sim repeat",
			args:        []string{"sim", "--repeat", "2", "__v_", "____"},
			wantContain: []string{"   2  ____  KeyHit(E)", "   4  ____  KeyHit(E)"},
		},
		{
			name:    "sim bad repeat",
			args:    []string{"sim", "--repeat", "0", "__v_"},
			wantErr: true,
		},
		{
			name:    "sim bad sample",
			args:    []string{"sim", "^^^"},
			wantErr: true,
		},
		{
			name:    "sim no samples",
			args:    []string{"sim"},
			wantErr: true,
		},
		{
			name:        "check sample",
			args:        []string{"check"},
			wantContain: []string{"ok  sample (4 layers)"},
		},
		{
			name:        "check file",
			args:        []string{"check", keys},
			wantContain: []string{"ok  " + keys + " (2 layers)"},
		},
		{
			name:        "check cycle",
			args:        []string{"check", keys, cyclic},
			wantErr:     true,
			wantContain: []string{"ok  " + keys, "FAIL", "cycle"},
		},
		{
			name:    "check missing file",
			args:    []string{"check", filepath.Join(t.TempDir(), "absent.toml")},
			wantErr: true,
		},
		{
			name:        "show cheatsheet",
			args:        []string{"show"},
			wantContain: []string{`layer 0 "base"`, `layer 2 "mouse"`},
		},
		{
			name:        "show chords",
			args:        []string{"show", "--layout", keys, "--format", "chords"},
			wantContain: []string{`layer 1 "shift"`, "from 0 + SHIFT"},
		},
		{
			name:        "show toml",
			args:        []string{"show", "--format", "toml"},
			wantContain: []string{"[[layers]]"},
		},
		{
			name:    "show bad format",
			args:    []string{"show", "--format", "xml"},
			wantErr: true,
		},
		{
			name:    "missing config",
			args:    []string{"show", "--config", filepath.Join(t.TempDir(), "absent.toml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error but got none\nOutput: %s", output)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantMissing {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output contains unexpected string: %q\nGot:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestConfigLayout(t *testing.T) {
	keys := writeFile(t, "keys.chords", testKeymap)
	conf := writeFile(t, "config.toml", "layout = \""+filepath.ToSlash(keys)+"\"\n")

	output, err := execute(t, "check", "--config", conf)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "(2 layers)") {
		t.Errorf("Output = %q, want configured layout", output)
	}
}

func TestConfigInit(t *testing.T) {
	keys := writeFile(t, "keys.chords", testKeymap)
	out := filepath.Join(t.TempDir(), "chordkb", "config.toml")

	output, err := execute(t, "config", "init", "--layout", keys, "--output", out)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "wrote "+out) {
		t.Errorf("Output = %q, want wrote line", output)
	}

	c, err := config.Load(out)
	if err != nil {
		t.Fatalf("config.Load() = %v", err)
	}
	if c.Layout != keys {
		t.Errorf("Layout = %q, want %q", c.Layout, keys)
	}
	if c.ScanInterval != config.Default().ScanInterval {
		t.Errorf("ScanInterval = %v, want default", c.ScanInterval)
	}

	if _, err := execute(t, "config", "init", "--output", out); err == nil {
		t.Error("Expected error overwriting without --force")
	}
	if _, err := execute(t, "config", "init", "--output", out, "--force"); err != nil {
		t.Errorf("config init --force = %v", err)
	}
}
