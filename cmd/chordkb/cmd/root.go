package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/config"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/layout/file"
	"github.com/ardnew/chordkb/pkg"
	"github.com/ardnew/chordkb/pkg/prof"
)

var (
	// Global flags
	verbose    bool
	jsonLog    bool
	configPath string
	layoutPath string
	cpuProfile string
	memProfile string

	cfg     *config.Config
	session *prof.Session
)

var rootCmd = &cobra.Command{
	Use:   "chordkb",
	Short: "Chorded keyboard engine toolkit",
	Long: `Resolve chords from an eight-switch chorded keyboard into HID reports.

The layout is read from --layout, the "layout" key of the config file, or
CHORDKB_LAYOUT, in that order of precedence. Without one the built-in
sample layout is used. Layout files may be TOML, YAML, JSON or the
.chords keymap language.

Examples:
  chordkb show                                # Cheatsheet of the sample layout
  chordkb check keys.chords                   # Validate a layout file
  chordkb sim ^___ ____ _v__ ____             # Replay switch samples
  chordkb pad --layout keys.toml --watch      # Chord interactively`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if serr := teardown(nil, nil); err == nil {
		err = serr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) logging")
	flags.BoolVar(&jsonLog, "json", false, "use JSON log format")
	flags.StringVarP(&configPath, "config", "c", "", "config file (default "+config.Path()+")")
	flags.StringVarP(&layoutPath, "layout", "l", "", "layout file (overrides config)")
	flags.StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to `file`")
	flags.StringVar(&memProfile, "memprofile", "", "write a heap profile to `file` on exit")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if layoutPath != "" {
		c.Layout = layoutPath
	}
	if err := c.ApplyLogging(); err != nil {
		return err
	}
	if verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if jsonLog {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}
	cfg = c

	s, err := prof.Start(prof.Options{CPU: cpuProfile, Heap: memProfile})
	if err != nil {
		return err
	}
	session = s
	pkg.LogDebug(pkg.ComponentCLI, "configured", "command", cmd.Name(),
		"layout", cfg.Layout, "interval", cfg.ScanInterval)
	return nil
}

func teardown(*cobra.Command, []string) error {
	s := session
	session = nil
	if s == nil {
		return nil
	}
	return s.Stop()
}

// loadLayout returns the configured layout table, or the sample layout
// when none is configured.
func loadLayout() (*layout.Table, error) {
	if cfg == nil || cfg.Layout == "" {
		pkg.LogDebug(pkg.ComponentCLI, "using sample layout")
		return layout.Sample(), nil
	}
	return file.Load(cfg.Layout)
}

func newEngine(l chord.Lookup) *chord.Engine {
	depth := chord.DefaultMaxDepth
	if cfg != nil {
		depth = cfg.MaxDepth
	}
	return chord.NewEngine(l, chord.WithMaxDepth(depth))
}
