package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TFMV/swatch/theme"
	"github.com/spf13/cobra"
)

var resolveFiles []string

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [root]",
	Short: "Resolve theme filenames to paths without watching",
	Long: `Resolve looks up each theme filename under the root directory and prints
the path it maps to. Useful for diagnosing ambiguous or missing filenames
before starting a watch.

Examples:
  swatch resolve --file base.yaml --file dark.yaml ./themes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		if len(resolveFiles) == 0 {
			return fmt.Errorf("at least one --file is required")
		}

		paths, err := theme.ResolvePaths(root, resolveFiles)
		if err != nil {
			var ambiguous *theme.AmbiguousFilenameError
			if errors.As(err, &ambiguous) {
				fmt.Fprintf(os.Stderr, "%s matches %d files:\n", ambiguous.Name, len(ambiguous.Matches))
				for _, m := range ambiguous.Matches {
					fmt.Fprintf(os.Stderr, "  %s\n", m)
				}
			}
			return err
		}

		for i, path := range paths {
			rel := path
			if r, err := filepath.Rel(root, path); err == nil {
				rel = r
			}
			fmt.Printf("%s -> %s\n", resolveFiles[i], rel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringSliceVar(&resolveFiles, "file", []string{}, "Theme filename to resolve (repeatable, ordered)")
}
