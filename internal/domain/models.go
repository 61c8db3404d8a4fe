// Package domain contains core waveform models with no external dependencies.
// This package defines the fundamental entities shared by the renderers,
// the services and the adapters.
package domain

import (
	"image/color"
	"time"
)

// AmplitudeDivisor maps an 8-bit time-domain reading onto the vertical span
// of the live chart. The value is empirical and must not change: the
// unsigned sensor range is centred on 128 and peaks just below 258/2 above it.
const AmplitudeDivisor = 258.0

// Peak is one slot of the live scrolling history.
// StartY and Height are stored in pixel space, computed when the slot is
// committed. Gap slots occupy one bar width of scroll but are never painted.
type Peak struct {
	// StartY is the top edge of the bar
	StartY float64

	// Height is the full bar height (always >= MinBarHeight)
	Height float64

	// Gap marks a spacer slot between two committed bars
	Gap bool
}

// Bar is one data point of a static waveform.
// Before normalization Max is the average positive sample amplitude of its
// bucket (linear domain, 0..1); after normalization it is a pixel half-height.
type Bar struct {
	Max float64
}

// MinBarHeight is the smallest height any bar is painted with.
const MinBarHeight = 2.0

// Style holds every visual setting of the waveform.
type Style struct {
	// BackgroundColor fills the canvas on every reset; a zero alpha keeps it transparent
	BackgroundColor color.NRGBA

	// MainBarColor paints live bars and not-yet-played static bars
	MainBarColor color.NRGBA

	// SecondaryBarColor paints the baseline and played static bars
	SecondaryBarColor color.NRGBA

	// BarWidth is the width of one bar in pixels
	BarWidth int

	// Gap is the space between bars, in multiples of BarWidth
	Gap int

	// Rounded is the corner radius of every bar
	Rounded float64

	// Speed draws the live chart only every Speed ticks
	Speed int

	// AnimateCurrentPick paints the not-yet-committed peak at the anchor
	AnimateCurrentPick bool

	// Fullscreen anchors the live chart at the right edge instead of the centre
	Fullscreen bool

	// OnlyRecording disables the static waveform after capture stops
	OnlyRecording bool
}

// DefaultStyle returns the default waveform style.
func DefaultStyle() Style {
	return Style{
		BackgroundColor:    color.NRGBA{},
		MainBarColor:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		SecondaryBarColor:  color.NRGBA{R: 0x5e, G: 0x5e, B: 0x5e, A: 0xff},
		BarWidth:           2,
		Gap:                1,
		Rounded:            5,
		Speed:              3,
		AnimateCurrentPick: true,
		Fullscreen:         false,
	}
}

// Unit returns the horizontal pitch of one bar plus its gap, in pixels.
func (s Style) Unit() int {
	return s.BarWidth + s.Gap*s.BarWidth
}

// Validate checks the style for values the renderers cannot work with.
func (s Style) Validate() error {
	if s.BarWidth < 1 {
		return NewValidationError("BarWidth", s.BarWidth, "must be at least 1")
	}
	if s.Gap < 0 {
		return NewValidationError("Gap", s.Gap, "must not be negative")
	}
	if s.Speed < 1 {
		return NewValidationError("Speed", s.Speed, "must be at least 1")
	}
	if s.Rounded < 0 {
		return NewValidationError("Rounded", s.Rounded, "must not be negative")
	}
	return nil
}

// DecodedAudio is a fully decoded recording, reduced to its first channel.
type DecodedAudio struct {
	// Samples are channel 0 samples in [-1, 1]
	Samples []float32

	// SampleRate is the sample rate in Hz
	SampleRate int

	// Duration is the playable length of the recording
	Duration time.Duration

	// Format is the container format the audio was decoded from (wav, mp3, ...)
	Format string

	// Title is taken from embedded tags when present
	Title string
}

// Seconds returns the duration in seconds.
func (a *DecodedAudio) Seconds() float64 {
	if a == nil {
		return 0
	}
	return a.Duration.Seconds()
}

// CaptureStatus represents the state of the capture collaborator.
type CaptureStatus int

const (
	// CaptureIdle indicates nothing is being recorded
	CaptureIdle CaptureStatus = iota

	// CaptureRecording indicates frames are being captured
	CaptureRecording

	// CapturePaused indicates the recording is paused
	CapturePaused
)

// String returns a human-readable representation of the capture status.
func (s CaptureStatus) String() string {
	switch s {
	case CaptureIdle:
		return "idle"
	case CaptureRecording:
		return "recording"
	case CapturePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// RenderMode tells which renderer produced a canvas snapshot.
type RenderMode int

const (
	// ModeIdle means the canvas is cleared
	ModeIdle RenderMode = iota

	// ModeLive means the live stream renderer painted the canvas
	ModeLive

	// ModeStatic means the static waveform renderer painted the canvas
	ModeStatic
)

// String returns a human-readable representation of the render mode.
func (m RenderMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeLive:
		return "live"
	case ModeStatic:
		return "static"
	default:
		return "unknown"
	}
}
