// Package widgets provides custom Fyne widgets for the gowave application.
package widgets

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// WaveformView shows the canvas painted by the waveform service.
//
// The service paints offscreen at the widget's pixel size; the view only
// blits the latest snapshot. Taps are reported in pixels so they can be fed
// straight into the seek hit-test.
type WaveformView struct {
	widget.BaseWidget

	raster *canvas.Raster
	img    *image.RGBA
	mu     sync.RWMutex

	// Pixel size last reported through OnResized
	lastWidth  int
	lastHeight int

	// OnResized receives the pixel size whenever it changes.
	OnResized func(width, height int)

	// OnTapped receives the horizontal tap position in pixels.
	OnTapped func(x float64)

	// OnSecondaryTapped opens the style menu.
	OnSecondaryTapped func(pe *fyne.PointEvent)
}

// NewWaveformView creates an empty waveform view.
func NewWaveformView() *WaveformView {
	v := &WaveformView{}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *WaveformView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize returns the minimum size of the view.
func (v *WaveformView) MinSize() fyne.Size {
	return fyne.NewSize(120, 48)
}

// Resize reports the new pixel size before resizing the raster.
func (v *WaveformView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)

	scale := v.scale()
	width, height := int(size.Width*scale), int(size.Height*scale)

	v.mu.Lock()
	changed := width != v.lastWidth || height != v.lastHeight
	v.lastWidth, v.lastHeight = width, height
	v.mu.Unlock()

	if changed && v.OnResized != nil {
		v.OnResized(width, height)
	}
}

// SetImage replaces the displayed canvas. Call it on the Fyne thread.
func (v *WaveformView) SetImage(img *image.RGBA) {
	v.mu.Lock()
	v.img = img
	v.mu.Unlock()

	v.raster.Refresh()
}

// Image returns the displayed canvas.
func (v *WaveformView) Image() *image.RGBA {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.img
}

// draw is the raster generator function.
func (v *WaveformView) draw(w, h int) image.Image {
	v.mu.RLock()
	img := v.img
	v.mu.RUnlock()

	if img == nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

func (v *WaveformView) scale() float32 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(v); c != nil {
		return c.Scale()
	}
	return 1
}

// Tapped implements fyne.Tappable.
func (v *WaveformView) Tapped(pe *fyne.PointEvent) {
	if v.OnTapped != nil {
		v.OnTapped(float64(pe.Position.X * v.scale()))
	}
}

// TappedSecondary implements fyne.SecondaryTappable (right-click).
func (v *WaveformView) TappedSecondary(pe *fyne.PointEvent) {
	if v.OnSecondaryTapped != nil {
		v.OnSecondaryTapped(pe)
	}
}

// Cursor implements desktop.Cursorable; the waveform is clickable.
func (v *WaveformView) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// Ensure WaveformView implements the required interfaces
var _ fyne.Tappable = (*WaveformView)(nil)
var _ fyne.SecondaryTappable = (*WaveformView)(nil)
var _ desktop.Cursorable = (*WaveformView)(nil)
