package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TFMV/swatch/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Watch command options
	watchFiles   []string
	watchTimeout time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Watch a theme's files and report every reload",
	Long: `Watch resolves the given theme files under the root directory, composes the
initial theme, and keeps watching every file. Each edit re-composes the theme
and prints the outcome.

Examples:
  swatch watch --file base.yaml --file dark.yaml ./themes
  swatch watch --file theme.toml --timeout 1h .`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		if len(watchFiles) == 0 {
			return fmt.Errorf("at least one --file is required")
		}

		opts := theme.ObserverOptions{LogLevel: cliLogLevel()}
		obs, err := theme.Observe(root, theme.FileList(watchFiles), func(t *theme.Theme, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed (keeping previous theme): %v\n", err)
				return
			}
			fmt.Printf("theme reloaded: %d top-level keys from %d files\n", t.Len(), len(t.Sources()))
		}, opts)
		if err != nil {
			return err
		}
		defer obs.Close()

		fmt.Printf("Watching %d theme files under %s\n", len(obs.Paths()), obs.Root())
		fmt.Println("Press Ctrl+C to exit.")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		if watchTimeout > 0 {
			select {
			case <-sig:
			case <-time.After(watchTimeout):
			}
			return nil
		}
		<-sig
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Define flags for the watch command
	watchCmd.Flags().StringSliceVar(&watchFiles, "file", []string{}, "Theme filename to resolve and watch (repeatable, ordered)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
}

// cliLogLevel derives the core log level from the shared verbosity flags.
func cliLogLevel() theme.LogLevel {
	switch {
	case viper.GetBool("verbose"):
		return theme.LogLevelDebug
	case viper.GetBool("silent"):
		return theme.LogLevelError
	default:
		return theme.LogLevelInfo
	}
}
