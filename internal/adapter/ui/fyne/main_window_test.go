package fyne

import (
	"errors"
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/timefmt"
)

func newTestWindow(t *testing.T) *MainWindow {
	t.Helper()

	app := test.NewApp()
	t.Cleanup(app.Quit)

	w := NewMainWindow(app)
	t.Cleanup(w.Close)
	return w
}

func TestMainWindow_ElapsedClockToggles(t *testing.T) {
	w := newTestWindow(t)

	w.SetElapsed(65 * time.Second)
	assert.Equal(t, timefmt.RecordingTime(65*time.Second), w.elapsed.Text)

	w.elapsed.DoubleTapped(nil)
	assert.Equal(t, timefmt.RecordedAudio(65*time.Second), w.elapsed.Text)

	w.elapsed.DoubleTapped(nil)
	assert.Equal(t, timefmt.RecordingTime(65*time.Second), w.elapsed.Text)
}

func TestMainWindow_CaptureState(t *testing.T) {
	w := newTestWindow(t)

	w.SetCaptureState(domain.CaptureRecording)
	assert.False(t, w.stopButton.Disabled())
	assert.True(t, w.playButton.Disabled())
	assert.True(t, w.clearButton.Disabled())

	w.SetCaptureState(domain.CaptureIdle)
	assert.True(t, w.stopButton.Disabled())
	assert.False(t, w.playButton.Disabled())
}

func TestMainWindow_Playback(t *testing.T) {
	w := newTestWindow(t)

	w.SetPlayback(0, 0, false)
	assert.Empty(t, w.playback.Text)

	w.SetPlayback(time.Second, 10*time.Second, true)
	assert.Contains(t, w.playback.Text, timefmt.Duration(10*time.Second))
}

func TestMainWindow_StyleMenuFollowsStyle(t *testing.T) {
	w := newTestWindow(t)

	style := domain.DefaultStyle()
	style.Fullscreen = true
	style.Rounded = 0
	w.SetStyle(style)

	assert.True(t, w.fullscreenItem.Checked)
	assert.False(t, w.roundedItem.Checked)
	assert.True(t, w.animatePickItem.Checked)
	assert.False(t, w.onlyRecordingItem.Checked)
}

func TestMainWindow_TitleAndWaveform(t *testing.T) {
	w := newTestWindow(t)

	w.SetTitle("take.wav")
	assert.Equal(t, "take.wav", w.title.Text)
	assert.Equal(t, "take.wav - "+APPNAME, w.window.Title())

	w.SetTitle("")
	assert.Equal(t, APPNAME, w.window.Title())

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	w.SetWaveform(img)
	assert.Same(t, img, w.waveform.Image())

	assert.NotPanics(t, func() { w.ShowError("Oops", errors.New("boom")) })
}
