package flags

import (
	"github.com/spf13/pflag"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// BindStyle registers one flag per style field on fs, defaulting to the
// current values of style. Parsed values are written back into style.
func BindStyle(fs *pflag.FlagSet, style *domain.Style) {
	fs.Var((*Color)(&style.BackgroundColor), "background", `canvas background, or "transparent"`)
	fs.Var((*Color)(&style.MainBarColor), "main-color", "colour of live bars and unplayed static bars")
	fs.Var((*Color)(&style.SecondaryBarColor), "secondary-color", "colour of the baseline and played static bars")
	fs.IntVar(&style.BarWidth, "bar-width", style.BarWidth, "bar width in pixels")
	fs.IntVar(&style.Gap, "gap", style.Gap, "space between bars, in bar widths")
	fs.Float64Var(&style.Rounded, "rounded", style.Rounded, "bar corner radius")
	fs.IntVar(&style.Speed, "speed", style.Speed, "draw the live chart every N frames")
	fs.BoolVar(&style.AnimateCurrentPick, "animate-current-pick", style.AnimateCurrentPick, "paint the peak that is still being measured")
	fs.BoolVar(&style.Fullscreen, "fullscreen", style.Fullscreen, "anchor the live chart at the right edge")
	fs.BoolVar(&style.OnlyRecording, "only-recording", style.OnlyRecording, "skip the static waveform after capture stops")
}
