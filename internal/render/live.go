package render

import (
	"math"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// LiveState is the scrolling history of the live chart.
// It is owned by the caller and mutated by DrawLiveStream.
type LiveState struct {
	// Picks is the history, newest first.
	Picks []domain.Peak

	// Index alternates between barWidth and unit and decides whether the
	// next committed slot is a bar or a gap.
	Index int

	// SubIndex counts sub-bar ticks since the last commit and scrolls the
	// chart by one pixel per tick.
	SubIndex int
}

// NewLiveState returns an empty history for the given bar width.
func NewLiveState(barWidth int) *LiveState {
	s := &LiveState{}
	s.Reset(barWidth)
	return s
}

// Reset drops the history and rewinds both counters.
func (s *LiveState) Reset(barWidth int) {
	s.Picks = s.Picks[:0]
	s.Index = barWidth
	s.SubIndex = barWidth
}

// LiveOptions are the per-call inputs of DrawLiveStream.
type LiveOptions struct {
	Style     domain.Style
	Recording bool
	Paused    bool
}

// MaxAmplitude returns the largest reading of a frame.
func MaxAmplitude(frame []byte) byte {
	var peak byte
	for _, v := range frame {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// PeakFromAmplitude converts a frame maximum into a bar centred on the
// vertical middle of a canvas of the given height.
func PeakFromAmplitude(maxPick byte, height float64) domain.Peak {
	amp := float64(maxPick) / domain.AmplitudeDivisor
	half := (amp - 0.5) * height
	half = math.Max(1, math.Min(half, height/2-1))
	return domain.Peak{
		StartY: height/2 - half,
		Height: 2 * half,
	}
}

// DrawLiveStream advances the live history by one tick and paints it.
//
// An empty frame or a stopped recording clears the history. A missing
// surface skips the paint and leaves the state untouched.
func DrawLiveStream(canvas Canvas, frame []byte, state *LiveState, opts LiveOptions) {
	style := opts.Style
	ctx, err := ResetCanvas(canvas, style.BackgroundColor)
	if err != nil {
		// ErrSurfaceUnavailable: nothing to paint on this tick
		return
	}

	if len(frame) == 0 || !opts.Recording {
		state.Reset(style.BarWidth)
		return
	}

	barWidth := style.BarWidth
	unit := style.Unit()
	span := ctx.HalfWidth
	if style.Fullscreen {
		span = ctx.Width
	}
	anchor := span

	maxPick := MaxAmplitude(frame)

	if !opts.Paused {
		if state.SubIndex >= barWidth {
			state.SubIndex = 0

			pick := PeakFromAmplitude(maxPick, ctx.Height)
			pick.Gap = state.Index != barWidth

			if state.Index >= unit {
				state.Index = barWidth
			} else {
				state.Index += barWidth
			}

			if float64(len(state.Picks)) > span/float64(barWidth) {
				state.Picks = state.Picks[:len(state.Picks)-1]
			}
			state.Picks = append(state.Picks, domain.Peak{})
			copy(state.Picks[1:], state.Picks)
			state.Picks[0] = pick
		}
		state.SubIndex++
	}

	bw := float64(barWidth)
	main := style.MainBarColor

	if !style.Fullscreen {
		PaintLineFromCenterToRight(ctx.Surface, style.SecondaryBarColor, style.Rounded, ctx.Width, ctx.Height, bw)
	}

	if style.AnimateCurrentPick {
		current := PeakFromAmplitude(maxPick, ctx.Height)
		PaintLine(ctx.Surface, main, style.Rounded, anchor, current.StartY, bw, current.Height)
	}

	x := anchor - float64(state.SubIndex)
	for _, pick := range state.Picks {
		if !pick.Gap {
			PaintLine(ctx.Surface, main, style.Rounded, x, pick.StartY, bw, pick.Height)
		}
		x -= bw
	}
}
