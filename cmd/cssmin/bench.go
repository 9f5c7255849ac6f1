package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cssmin"
	"cssmin/internal/benchcfg"
)

var (
	benchIterations int
	benchSuite      string
)

var benchCmd = &cobra.Command{
	Use:   "bench [flags] [file.css ...]",
	Short: "Benchmark the minifier against esbuild",
	Long:  `Bench minifies each input repeatedly with cssmin and with esbuild's CSS transform and compares throughput and output size`,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 100, "iterations per input")
	benchCmd.Flags().StringVar(&benchSuite, "suite", "", "TOML file describing a benchmark suite")
}

type benchResult struct {
	name      string
	srcLen    int
	ours      time.Duration
	theirs    time.Duration
	oursLen   int
	theirsLen int
}

func runBench(cmd *cobra.Command, args []string) error {
	inputs := args
	iters := benchIterations
	if benchSuite != "" {
		suite, err := benchcfg.Load(benchSuite)
		if err != nil {
			return err
		}
		inputs = append(inputs, suite.Inputs...)
		if !cmd.Flags().Changed("iterations") {
			iters = suite.Iterations
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files (pass files or --suite)")
	}

	t0 := time.Now()
	results := make([]benchResult, len(inputs))
	eg := &errgroup.Group{}
	eg.SetLimit(runtime.NumCPU())
	for i, path := range inputs {
		i, path := i, path
		eg.Go(func() error {
			r, err := benchOne(path, iters)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	color.NoColor = !useColor(cmd, os.Stdout)
	bold := color.New(color.Bold)
	faster := color.New(color.FgGreen)
	slower := color.New(color.FgRed)

	out := cmd.OutOrStdout()
	for _, r := range results {
		bold.Fprintf(out, "%s (%d bytes, %d iterations)\n", r.name, r.srcLen, iters)
		fmt.Fprintf(out, "  cssmin  %8.1f ms  %d bytes out\n", toMillis(r.ours), r.oursLen)
		fmt.Fprintf(out, "  esbuild %8.1f ms  %d bytes out\n", toMillis(r.theirs), r.theirsLen)
		if r.ours <= r.theirs {
			faster.Fprintf(out, "  %.2fx faster than esbuild\n", float64(r.theirs)/float64(r.ours))
		} else {
			slower.Fprintf(out, "  %.2fx slower than esbuild\n", float64(r.ours)/float64(r.theirs))
		}
	}
	if showTimings(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "bench %.1f ms\n", toMillis(time.Since(t0)))
	}
	return nil
}

func benchOne(path string, iters int) (benchResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return benchResult{}, err
	}

	// One checked run each; the timed loops assume valid input.
	out, err := cssmin.Minify(src)
	if err != nil {
		return benchResult{}, fmt.Errorf("%s: %w", path, err)
	}
	opts := api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
	}
	ref := api.Transform(string(src), opts)
	if len(ref.Errors) > 0 {
		return benchResult{}, fmt.Errorf("%s: esbuild: %s", path, ref.Errors[0].Text)
	}

	t0 := time.Now()
	for i := 0; i < iters; i++ {
		if _, err := cssmin.Minify(src); err != nil {
			return benchResult{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	ours := time.Since(t0)

	t1 := time.Now()
	for i := 0; i < iters; i++ {
		api.Transform(string(src), opts)
	}
	theirs := time.Since(t1)

	return benchResult{
		name:      path,
		srcLen:    len(src),
		ours:      ours,
		theirs:    theirs,
		oursLen:   len(out),
		theirsLen: len(ref.Code),
	}, nil
}
