// Package render turns audio samples into bar geometry and paints it.
//
// Everything in this package runs on the caller's goroutine and owns the
// canvas only for the duration of one call. ReduceBars is pure and safe to
// run on a background goroutine.
package render

import (
	"image"
	"image/color"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// Surface is a 2D raster target.
type Surface interface {
	// Bounds returns the drawable area. Min is always the origin.
	Bounds() image.Rectangle

	// Clear makes every pixel fully transparent.
	Clear()

	// FillRect fills an axis-aligned rectangle. Coordinates may be fractional
	// and may extend past the bounds.
	FillRect(x, y, w, h float64, c color.Color)
}

// RoundedFiller is implemented by surfaces that can paint rounded rectangles.
type RoundedFiller interface {
	FillRoundedRect(x, y, w, h, radius float64, c color.Color)
}

// Canvas hands out its drawing surface. Surface returns nil when no surface
// can be obtained.
type Canvas interface {
	Surface() Surface
}

// Context is the result of a canvas reset: the live surface and its size,
// read fresh on every call.
type Context struct {
	Surface   Surface
	Width     float64
	Height    float64
	HalfWidth float64
}

// ResetCanvas clears the canvas and fills it with background unless the
// background is transparent.
// It returns domain.ErrSurfaceUnavailable when there is nothing to paint on.
func ResetCanvas(canvas Canvas, background color.Color) (*Context, error) {
	if canvas == nil {
		return nil, domain.ErrSurfaceUnavailable
	}
	surface := canvas.Surface()
	if surface == nil {
		return nil, domain.ErrSurfaceUnavailable
	}

	b := surface.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, domain.ErrSurfaceUnavailable
	}

	width := float64(b.Dx())
	height := float64(b.Dy())

	surface.Clear()
	if !isTransparent(background) {
		surface.FillRect(0, 0, width, height, background)
	}

	return &Context{
		Surface:   surface,
		Width:     width,
		Height:    height,
		HalfWidth: width / 2,
	}, nil
}

func isTransparent(c color.Color) bool {
	if c == nil {
		return true
	}
	_, _, _, a := c.RGBA()
	return a == 0
}
