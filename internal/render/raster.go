package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so a quarter curve approximates a
// circular arc.
const kappa = 0.5522847498

// RasterSurface is an in-memory RGBA surface with anti-aliased rounded
// rectangles. It is not safe for concurrent use.
type RasterSurface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

var (
	_ Surface       = (*RasterSurface)(nil)
	_ RoundedFiller = (*RasterSurface)(nil)
	_ Canvas        = (*RasterSurface)(nil)
)

// NewRasterSurface allocates a transparent surface of the given size.
// Non-positive sizes give an empty surface that Canvas users treat as unavailable.
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{z: vector.NewRasterizer(0, 0)}
	s.Resize(width, height)
	return s
}

// Resize reallocates the backing image. The content is discarded.
func (s *RasterSurface) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Surface implements Canvas.
func (s *RasterSurface) Surface() Surface {
	return s
}

// Bounds implements Surface.
func (s *RasterSurface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Clear implements Surface.
func (s *RasterSurface) Clear() {
	clear(s.img.Pix)
}

// FillRect implements Surface.
func (s *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.fill(x, y, w, h, 0, c)
}

// FillRoundedRect implements RoundedFiller. The radius is limited to half of
// the shorter side.
func (s *RasterSurface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	s.fill(x, y, w, h, radius, c)
}

// Image returns the backing image. It is overwritten by the next paint.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current pixels.
func (s *RasterSurface) Snapshot() *image.RGBA {
	dst := image.NewRGBA(s.img.Rect)
	copy(dst.Pix, s.img.Pix)
	return dst
}

func (s *RasterSurface) fill(x, y, w, h, radius float64, c color.Color) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}

	// the rasterizer does not clip against dst, so the shape is cut to the
	// image first
	b := s.img.Rect
	x0 := math.Max(x, float64(b.Min.X))
	y0 := math.Max(y, float64(b.Min.Y))
	x1 := math.Min(x+w, float64(b.Max.X))
	y1 := math.Min(y+h, float64(b.Max.Y))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	roundedRectPath(s.z, x0-ox, y0-oy, x1-x0, y1-y0, radius)
	s.z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

func roundedRectPath(z *vector.Rasterizer, x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		z.MoveTo(f32(x), f32(y))
		z.LineTo(f32(x+w), f32(y))
		z.LineTo(f32(x+w), f32(y+h))
		z.LineTo(f32(x), f32(y+h))
		z.ClosePath()
		return
	}

	k := r * kappa
	z.MoveTo(f32(x+r), f32(y))
	z.LineTo(f32(x+w-r), f32(y))
	z.CubeTo(f32(x+w-r+k), f32(y), f32(x+w), f32(y+r-k), f32(x+w), f32(y+r))
	z.LineTo(f32(x+w), f32(y+h-r))
	z.CubeTo(f32(x+w), f32(y+h-r+k), f32(x+w-r+k), f32(y+h), f32(x+w-r), f32(y+h))
	z.LineTo(f32(x+r), f32(y+h))
	z.CubeTo(f32(x+r-k), f32(y+h), f32(x), f32(y+h-r+k), f32(x), f32(y+h-r))
	z.LineTo(f32(x), f32(y+r))
	z.CubeTo(f32(x), f32(y+r-k), f32(x+r-k), f32(y), f32(x+r), f32(y))
	z.ClosePath()
}

func f32(v float64) float32 {
	return float32(v)
}
