// Package main is the production entry point for Go Wave.
//
// Go Wave records from the microphone, draws a live scrolling waveform while
// recording and turns the finished take into a seekable static waveform:
// - Event-driven communication between capture, playback and rendering
// - Dependency injection for testability
// - MVP pattern for UI decoupling
//
// Build:
//
//	go build -o build/gowave ./cmd/gowave
//
// Run:
//
//	./build/gowave [flags] [recording]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/tejashwikalptaru/gowave/internal/app"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/flags"
	"github.com/tejashwikalptaru/gowave/internal/logger"
)

func main() {
	// Create default configuration
	config := app.DefaultConfig()

	fs := pflag.NewFlagSet("gowave", pflag.ExitOnError)
	fs.StringVar(&config.Source, "source", config.Source, `capture backend: "mic" or "synthetic"`)
	fs.IntVar(&config.SampleRate, "sample-rate", config.SampleRate, "capture sample rate in Hz")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides GOWAVE_LOG_LEVEL)")
	logFormat := fs.String("log-format", config.Logger.Format, "text, json or pretty")
	version := fs.Bool("version", false, "print the version and exit")

	style := domain.DefaultStyle()
	styleFlags := pflag.NewFlagSet("style", pflag.ExitOnError)
	flags.BindStyle(styleFlags, &style)
	fs.AddFlagSet(styleFlags)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gowave [flags] [recording]\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *version {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	if *logLevel != "" {
		config.Logger.Level = logger.ParseLevel(*logLevel)
	}
	config.Logger.Format = *logFormat

	// Style flags only win over the stored style when given
	styleFlags.VisitAll(func(f *pflag.Flag) {
		if fs.Changed(f.Name) {
			config.Style = &style
		}
	})

	if fs.NArg() > 0 {
		config.Preload = fs.Arg(0)
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	if err := application.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}
}
