package render

import (
	"image/color"
)

// PaintLine draws one filled bar at (x, y) with size w×h.
// Negative sizes extend the bar up or to the left of the anchor point.
// Surfaces without rounded-rectangle support get a plain rectangle.
func PaintLine(surface Surface, c color.Color, radius, x, y, w, h float64) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	if w == 0 || h == 0 {
		return
	}

	if rf, ok := surface.(RoundedFiller); ok && radius > 0 {
		rf.FillRoundedRect(x, y, w, h, radius, c)
		return
	}
	surface.FillRect(x, y, w, h, c)
}

// PaintLineFromCenterToRight draws the 2px zero line of the live chart,
// starting just after the bar sitting at the centre.
func PaintLineFromCenterToRight(surface Surface, c color.Color, radius, width, height, barWidth float64) {
	x := width/2 + barWidth/2
	PaintLine(surface, c, radius, x, height/2-1, width-x, 2)
}
