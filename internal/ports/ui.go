// Package ports define the UI interface for view abstraction.
// This interface allows the presenter to update the UI without depending on Fyne directly.
package ports

import (
	"image"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// UI is the interface for the user interface layer.
// This abstracts the Fyne UI implementation and allows for testing without a real UI.
//
// The presenter receives events from the event bus and calls these methods
// to update the UI accordingly.
//
// Thread-safety: methods may be called from any goroutine. Implementations
// hand the update over to their UI thread.
type UI interface {
	// SetWaveform shows a freshly painted canvas.
	SetWaveform(img *image.RGBA)

	// SetCaptureState updates the record, pause and stop controls.
	SetCaptureState(status domain.CaptureStatus)

	// SetElapsed updates the recording clock.
	SetElapsed(elapsed time.Duration)

	// SetPlayback updates the playback position display and the play control.
	SetPlayback(position, duration time.Duration, playing bool)

	// SetTitle shows the name of the loaded recording.
	SetTitle(title string)

	// SetStyle reflects the active style in the style menu.
	SetStyle(style domain.Style)

	// ShowNotification displays a temporary notification to the user.
	ShowNotification(title, message string)

	// ShowError displays an error dialog to the user.
	ShowError(title string, err error)
}
