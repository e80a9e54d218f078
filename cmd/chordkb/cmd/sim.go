package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/driver"
	"github.com/ardnew/chordkb/hid"
	"github.com/ardnew/chordkb/pkg"
)

// maxIdleSamples bounds the released samples fed after the script ends.
const maxIdleSamples = 16

var (
	simScript  string
	simAll     bool
	simReports bool
	simRepeat  int
)

var simCmd = &cobra.Command{
	Use:   "sim [sample...]",
	Short: "Replay switch samples through the engine",
	Long: `Feed a sequence of switch samples to the engine and print every outcome
together with the HID reports it produces. Samples use chord notation
(pinky first: ^ tip, v base, % both, _ or . none) or binary, hex and
decimal switch sets. A final all-released sample is appended when the
sequence does not end with one, followed by enough idle samples to drain
held unchorded keys.

Examples:
  chordkb sim ^___ ____                       # Tap the pinky tip
  chordkb sim %__% ____ __v_ ____             # Shift layer, then E
  chordkb sim --script taps.txt --all         # Samples from a file
  chordkb sim --repeat 3 ^___ ____            # Tap three times`,
	RunE: runSim,
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVarP(&simScript, "script", "s", "",
		"read samples from `file` ('-' for stdin)")
	simCmd.Flags().BoolVarP(&simAll, "all", "a", false,
		"print samples that produce nothing")
	simCmd.Flags().BoolVarP(&simReports, "reports", "r", true,
		"print the HID reports of each outcome")
	simCmd.Flags().IntVarP(&simRepeat, "repeat", "n", 1,
		"replay the samples `n` times")
}

func runSim(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if simScript != "" {
		data, err := readScript(cmd, simScript)
		if err != nil {
			return err
		}
		text = data + "\n" + text
	}
	script, err := driver.ParseScript(text)
	if err != nil {
		return fmt.Errorf("parse samples: %w", err)
	}
	if script.Len() == 0 {
		return fmt.Errorf("no samples given")
	}
	if simRepeat < 1 {
		return fmt.Errorf("--repeat %d: %w", simRepeat, pkg.ErrInvalidParameter)
	}

	table, err := loadLayout()
	if err != nil {
		return err
	}
	return simulate(cmd.Context(), cmd.OutOrStdout(), newEngine(table), script)
}

// simulate steps the engine until the script is consumed and the engine has
// settled, printing each outcome. The script is replayed simRepeat times.
func simulate(ctx context.Context, w io.Writer, e *chord.Engine, script *driver.ScriptSource) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var rec hid.Recorder
	n := 0
	loop := &driver.Loop{
		Engine:     e,
		Source:     script,
		Dispatcher: driver.NewDispatcher(&rec),
		Observe: func(sw chord.SwitchSet, o chord.Outcome) {
			n++
			if o.IsNothing() && !simAll {
				return
			}
			fmt.Fprintf(w, "%4d  %s  %v\n", n, sw, o)
		},
	}

	for pass := range simRepeat {
		if pass > 0 {
			script.Rewind()
		}
		for idle := 0; idle < maxIdleSamples; {
			if script.Done() {
				if settled(e) {
					break
				}
				idle++
			}
			if _, err := loop.Step(ctx); err != nil {
				fmt.Fprintf(w, "      error: %v\n", err)
			}
			for _, r := range rec.Drain() {
				if simReports {
					fmt.Fprintf(w, "        %v\n", r)
				}
			}
		}
	}
	return nil
}

// settled reports whether the engine has no chord in progress and nothing
// left to release.
func settled(e *chord.Engine) bool {
	s := e.State()
	return s.Most == 0 && s.UnchordedState == 0 && s.UnchordedShunt == 0
}

func readScript(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}
