package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evannini/bbcal/internal/dataset"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <path>...",
	Short: "Replace comma decimal separators with points in rig output files",
	Long: `Rewrites each given file in place, replacing every "," with ".".
A directory argument normalizes every file directly inside it. Run this
once on freshly recorded data before loading it as a dataset.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", path, err)
		}
		if info.IsDir() {
			if err := dataset.NormalizeDecimalSepDir(path); err != nil {
				return err
			}
		} else if err := dataset.NormalizeDecimalSep(path); err != nil {
			return err
		}
		fmt.Printf("Normalized %s\n", path)
	}
	return nil
}
