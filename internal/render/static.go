package render

import (
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// BarsOptions are the per-call inputs of DrawBars.
type BarsOptions struct {
	Style    domain.Style
	Position time.Duration
	Duration time.Duration
}

// PlayedFraction returns how much of the recording has been played, in [0, 1].
// A non-positive duration counts as nothing played.
func PlayedFraction(position, duration time.Duration) float64 {
	if duration <= 0 || position <= 0 {
		return 0
	}
	if position >= duration {
		return 1
	}
	return float64(position) / float64(duration)
}

// DrawBars paints a reduced waveform. Bars left of the playback position use
// the secondary colour, the rest the main colour.
func DrawBars(canvas Canvas, bars []domain.Bar, opts BarsOptions) {
	style := opts.Style
	ctx, err := ResetCanvas(canvas, style.BackgroundColor)
	if err != nil {
		return
	}

	n := float64(len(bars))
	played := PlayedFraction(opts.Position, opts.Duration)
	pitch := float64(style.Unit())
	bw := float64(style.BarWidth)
	mid := ctx.Height / 2

	for i, bar := range bars {
		c := style.MainBarColor
		if float64(i)/n < played {
			c = style.SecondaryBarColor
		}
		PaintLine(ctx.Surface, c, style.Rounded, float64(i)*pitch, mid-bar.Max, bw, 2*bar.Max)
	}
}
