package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cssmin/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cssmin",
	Short: "CSS minifier",
	Long:  `cssmin parses CSS stylesheets and prints them back with every removable byte removed`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(minifyCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(f))
}

func showTimings(cmd *cobra.Command) bool {
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return timings
}
