// Command toastdemo hosts toastkit surfaces for manual testing: a browser
// surface served over websocket and a terminal board.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/toastkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "toastdemo",
		Short: "Show toastkit notifications in a browser or terminal",
		Long: `toastdemo hosts a toast surface and feeds it sample notifications.

  • web: serves the surface page, streams patches over websocket
  • term: draws the toast board in the terminal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		webCmd(),
		termCmd(),
		versionCmd(),
	)

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		errors.DisableColors()
	}

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "toastdemo %s (%s)\n", version, commit)
		},
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
