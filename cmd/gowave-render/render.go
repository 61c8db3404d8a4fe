package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tejashwikalptaru/gowave/internal/adapter/decoder"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/render"
)

type options struct {
	Width  int
	Height int
	Played float64
	OutDir string
	Jobs   int
	Style  domain.Style
}

type result struct {
	Input    string
	Output   string
	Bars     int
	Duration time.Duration
	Err      error
}

type renderer struct {
	logger  *slog.Logger
	decoder *decoder.Decoder
	opts    options
}

func newRenderer(logger *slog.Logger, opts options) *renderer {
	return &renderer{
		logger:  logger.With(slog.String("component", "render")),
		decoder: decoder.New(logger),
		opts:    opts,
	}
}

// RenderAll renders every input, at most opts.Jobs at a time. A file that
// fails is reported in its result; only cancellation aborts the batch.
func (r *renderer) RenderAll(ctx context.Context, inputs []string) ([]result, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	results := make([]result, len(inputs))
	outputs := outputNames(inputs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.opts.Jobs, 1))

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.renderFile(ctx, input, filepath.Join(r.opts.OutDir, outputs[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *renderer) validate() error {
	if err := r.opts.Style.Validate(); err != nil {
		return err
	}
	if r.opts.Width <= 0 || r.opts.Height <= 0 {
		return domain.NewValidationError("size", fmt.Sprintf("%dx%d", r.opts.Width, r.opts.Height), "must be positive")
	}
	if r.opts.Played < 0 || r.opts.Played > 1 {
		return domain.NewValidationError("position", r.opts.Played, "must be within [0, 1]")
	}
	return nil
}

func (r *renderer) renderFile(ctx context.Context, input, output string) result {
	res := result{Input: input}

	f, err := os.Open(input)
	if err != nil {
		res.Err = err
		return res
	}
	defer f.Close()

	audio, err := r.decoder.Decode(ctx, f)
	if err != nil {
		res.Err = err
		return res
	}
	res.Duration = audio.Duration

	style := r.opts.Style
	bars, err := render.ReduceBarsContext(ctx, audio.Samples, r.opts.Height, r.opts.Width, style.BarWidth, style.Gap)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bars = len(bars)

	surface := render.NewRasterSurface(r.opts.Width, r.opts.Height)
	render.DrawBars(surface, bars, render.BarsOptions{
		Style:    style,
		Position: time.Duration(r.opts.Played * float64(audio.Duration)),
		Duration: audio.Duration,
	})

	res.Output = output
	if err := writePNG(res.Output, surface); err != nil {
		res.Err = err
		return res
	}

	r.logger.Debug("rendered",
		slog.String("input", input),
		slog.String("output", res.Output),
		slog.Int("bars", res.Bars))
	return res
}

func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// outputNames names one PNG per input. Inputs sharing a base name get a
// numeric suffix in input order: x.png, x-2.png, x-3.png.
func outputNames(inputs []string) []string {
	names := make([]string, len(inputs))
	used := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		used[outputName(input)] = false
	}

	for i, input := range inputs {
		name := outputName(input)
		if taken, seen := used[name]; seen && !taken {
			used[name] = true
			names[i] = name
			continue
		}
		stem := strings.TrimSuffix(name, ".png")
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d.png", stem, n)
			if _, seen := used[candidate]; !seen {
				used[candidate] = true
				names[i] = candidate
				break
			}
		}
	}
	return names
}

func writePNG(path string, surface *render.RasterSurface) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, surface.Image()); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return out.Close()
}
