package render

import (
	"image"
	"image/color"
)

// rect is one recorded fill call.
type rect struct {
	X, Y, W, H float64
	Radius     float64
	Color      color.Color
	Rounded    bool
}

// recordingSurface remembers every fill instead of rasterizing it.
type recordingSurface struct {
	bounds  image.Rectangle
	cleared int
	fills   []rect
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{bounds: image.Rect(0, 0, w, h)}
}

func (s *recordingSurface) Surface() Surface        { return s }
func (s *recordingSurface) Bounds() image.Rectangle { return s.bounds }

func (s *recordingSurface) Clear() {
	s.cleared++
	s.fills = s.fills[:0]
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.fills = append(s.fills, rect{X: x, Y: y, W: w, H: h, Color: c})
}

// roundedSurface adds rounded fills on top of recordingSurface.
type roundedSurface struct {
	*recordingSurface
}

func newRoundedSurface(w, h int) *roundedSurface {
	return &roundedSurface{newRecordingSurface(w, h)}
}

func (s *roundedSurface) Surface() Surface { return s }

func (s *roundedSurface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	s.fills = append(s.fills, rect{X: x, Y: y, W: w, H: h, Radius: radius, Color: c, Rounded: true})
}

// nilCanvas never has a surface.
type nilCanvas struct{}

func (nilCanvas) Surface() Surface { return nil }

func (s *recordingSurface) withColor(c color.Color) []rect {
	var out []rect
	for _, f := range s.fills {
		if f.Color == c {
			out = append(out, f)
		}
	}
	return out
}
