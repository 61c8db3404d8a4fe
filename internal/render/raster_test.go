package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestRasterSurface_FillRect(t *testing.T) {
	s := NewRasterSurface(20, 10)

	s.FillRect(2, 2, 4, 4, color.NRGBA{R: 0xff, A: 0xff})

	img := s.Image()
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(3, 3))
	assert.Equal(t, uint8(0), alphaAt(img, 10, 3))
	assert.Equal(t, uint8(0), alphaAt(img, 3, 8))
}

func TestRasterSurface_RoundedCornersStayClear(t *testing.T) {
	s := NewRasterSurface(20, 20)

	s.FillRoundedRect(0, 0, 20, 20, 8, color.NRGBA{G: 0xff, A: 0xff})

	img := s.Image()
	assert.Equal(t, uint8(0), alphaAt(img, 0, 0), "corner")
	assert.Equal(t, uint8(0xff), alphaAt(img, 10, 10), "centre")
	assert.Equal(t, uint8(0xff), alphaAt(img, 10, 0), "top edge")
}

func TestRasterSurface_ClipsOutsideBounds(t *testing.T) {
	s := NewRasterSurface(10, 10)

	assert.NotPanics(t, func() {
		s.FillRect(-5, -5, 30, 30, color.NRGBA{B: 0xff, A: 0xff})
		s.FillRoundedRect(8, 8, 10, 10, 4, color.NRGBA{B: 0xff, A: 0xff})
		s.FillRect(50, 50, 5, 5, color.NRGBA{B: 0xff, A: 0xff})
	})
	assert.Equal(t, uint8(0xff), alphaAt(s.Image(), 0, 0))
	assert.Equal(t, uint8(0xff), alphaAt(s.Image(), 9, 9))
}

func TestRasterSurface_Clear(t *testing.T) {
	s := NewRasterSurface(4, 4)
	s.FillRect(0, 0, 4, 4, color.White)

	s.Clear()

	for _, v := range s.Image().Pix {
		require.Equal(t, uint8(0), v)
	}
}

func TestRasterSurface_SnapshotIsACopy(t *testing.T) {
	s := NewRasterSurface(4, 4)
	s.FillRect(0, 0, 4, 4, color.White)

	snap := s.Snapshot()
	s.Clear()

	assert.Equal(t, uint8(0xff), alphaAt(snap, 1, 1))
}

func TestRasterSurface_Resize(t *testing.T) {
	s := NewRasterSurface(4, 4)
	s.Resize(8, 2)
	assert.Equal(t, image.Rect(0, 0, 8, 2), s.Bounds())

	s.Resize(-1, 3)
	_, err := ResetCanvas(s, color.White)
	assert.Error(t, err, "an empty surface is unavailable")
}

func TestDrawLiveStream_OnRasterSurface(t *testing.T) {
	style := liveStyle()
	style.Rounded = 5
	s := NewRasterSurface(120, 40)
	state := NewLiveState(style.BarWidth)

	frame := make([]byte, 64)
	for i := range frame {
		frame[i] = 250
	}
	for range 30 {
		DrawLiveStream(s, frame, state, LiveOptions{Style: style, Recording: true})
	}

	img := s.Image()
	assert.Equal(t, uint8(0xff), alphaAt(img, 90, 20), "baseline right of centre")
	assert.Equal(t, uint8(0), alphaAt(img, 60, 0), "top gutter stays clear")
}
