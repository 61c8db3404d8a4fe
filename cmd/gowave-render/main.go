// Package main renders recordings to PNG waveforms without opening a window.
//
// Usage:
//
//	gowave-render [flags] recording...
//
// Every recording is decoded, reduced to bars and painted with the same
// renderer the application uses. Files are processed concurrently.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/flags"
	"github.com/tejashwikalptaru/gowave/internal/logger"
)

func main() {
	opts := defaultOptions()

	fs := pflag.NewFlagSet("gowave-render", pflag.ExitOnError)
	fs.IntVar(&opts.Width, "width", opts.Width, "image width in pixels")
	fs.IntVar(&opts.Height, "height", opts.Height, "image height in pixels")
	fs.Float64Var(&opts.Played, "position", opts.Played, "played fraction in [0, 1], painted in the secondary colour")
	fs.StringVarP(&opts.OutDir, "out", "o", opts.OutDir, "output directory")
	fs.IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "files rendered at once")
	logLevel := fs.String("log-level", "warn", "debug, info, warn or error")
	flags.BindStyle(fs, &opts.Style)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gowave-render [flags] recording...\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	log := logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(*logLevel),
		Format: logger.FormatPretty,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := newRenderer(log, opts)
	results, err := r.RenderAll(ctx, fs.Args())
	if err != nil {
		color.Red("render aborted: %v", err)
		os.Exit(1)
	}

	failed := report(results)
	if failed > 0 {
		os.Exit(1)
	}
}

var (
	okMark   = color.New(color.FgGreen, color.Bold)
	failMark = color.New(color.FgRed, color.Bold)
	detail   = color.New(color.FgHiBlack)
)

// report prints one line per file and returns how many failed.
func report(results []result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			failMark.Print("FAIL ")
			fmt.Printf("%s: %v\n", res.Input, res.Err)
			continue
		}
		okMark.Print("OK   ")
		fmt.Printf("%s -> %s ", res.Input, res.Output)
		detail.Printf("(%d bars, %s)\n", res.Bars, res.Duration.Round(time.Millisecond))
	}
	return failed
}

func defaultOptions() options {
	return options{
		Width:  600,
		Height: 80,
		OutDir: ".",
		Jobs:   runtime.NumCPU(),
		Style:  domain.DefaultStyle(),
	}
}
