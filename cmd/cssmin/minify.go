package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cssmin"
)

var minifyOutput string

var minifyCmd = &cobra.Command{
	Use:   "minify [flags] file.css",
	Short: "Minify a CSS file",
	Long:  `Minify parses a stylesheet and writes it back without whitespace, comments or optional semicolons`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMinify,
}

func init() {
	minifyCmd.Flags().StringVarP(&minifyOutput, "output", "o", "", "write result to a file instead of stdout")
}

func runMinify(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := cssmin.Minify(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if showTimings(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "minified %.1f ms\n", toMillis(time.Since(start)))
		fmt.Fprintf(cmd.ErrOrStderr(), "%d bytes in, %d bytes out\n", len(src), len(out))
	}

	if minifyOutput != "" {
		return os.WriteFile(minifyOutput, out, 0o644)
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
