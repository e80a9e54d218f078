package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/layout/file"
)

var checkCmd = &cobra.Command{
	Use:   "check [layout-file...]",
	Short: "Validate layout files",
	Long: `Load each layout file, check it against the layout schema and run the
static checks: undefined layer references, unchorded keys outside their
layer's mask and layer delegation cycles. Without arguments the configured
layout is checked.

Examples:
  chordkb check keys.chords
  chordkb check base.toml travel.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		t, err := loadLayout()
		if err != nil {
			return err
		}
		if err := layout.Validate(t); err != nil {
			return err
		}
		fmt.Fprintf(out, "ok  %s (%d layers)\n", layoutName(), t.Len())
		return nil
	}

	var errs []error
	for _, path := range args {
		t, err := file.Load(path)
		if err != nil {
			fmt.Fprintf(out, "FAIL  %v\n", err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "ok  %s (%d layers)\n", path, t.Len())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d layouts invalid: %w", len(errs), len(args), errors.Join(errs...))
	}
	return nil
}

func layoutName() string {
	if cfg == nil || cfg.Layout == "" {
		return "sample"
	}
	return cfg.Layout
}
