package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardnew/chordkb/config"
	"github.com/ardnew/chordkb/pkg"
)

var (
	configOutput string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to a file",
	Long: `Write the configuration in effect (defaults, config file, environment
and --layout) as TOML. An existing file is kept unless --force is given.

Examples:
  chordkb config init                          # Write the default config file
  chordkb config init -l keys.chords -o kb.toml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "",
		"write to `file` (default "+config.Path()+")")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false,
		"overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configOutput
	if path == "" {
		path = config.Path()
	}
	if !configForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	pkg.LogInfo(pkg.ComponentCLI, "config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
