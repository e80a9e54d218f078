package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/layout/dsl"
	"github.com/ardnew/chordkb/layout/file"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the layout",
	Long: `Print the configured layout as a cheatsheet, or convert it to another
layout format.

Examples:
  chordkb show
  chordkb show --format chords > keys.chords
  chordkb show --layout keys.chords --format yaml`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFormat, "format", "f", "cheatsheet",
		"output format: cheatsheet, toml, yaml, json or chords")
}

func runShow(cmd *cobra.Command, _ []string) error {
	t, err := loadLayout()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if showFormat == "cheatsheet" {
		return layout.Cheatsheet(w, t)
	}
	f, err := file.ParseFormat(showFormat)
	if err != nil {
		return err
	}
	switch f {
	case file.FormatAuto:
		return fmt.Errorf("output format required")
	case file.FormatDSL:
		return dsl.Format(w, t)
	default:
		return file.Encode(w, file.FromTable(t), f)
	}
}
