package ports

import (
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// CaptureSource delivers the rolling time-domain frame of the microphone.
//
// Readings are unsigned 8-bit values centred on 128. The waveform service
// polls ReadFrame from its frame loop; implementations must not block.
type CaptureSource interface {
	// FrameSize returns the number of readings in one frame.
	FrameSize() int

	// ReadFrame copies the most recent frame into dst and returns the number
	// of readings written. Zero means no data is available yet.
	ReadFrame(dst []byte) int
}

// Recorder drives a capture session and publishes its lifecycle on the bus:
// capture.started, capture.paused, capture.resumed, capture.stopped and,
// once the recording is finalized, recording.loaded.
type Recorder interface {
	CaptureSource

	// Start begins a new recording. Returns domain.ErrAlreadyRunning when
	// one is in progress.
	Start() error

	// Pause suspends a running recording.
	Pause() error

	// Resume continues a paused recording.
	Resume() error

	// Stop finalizes the recording.
	Stop() error

	// Status returns the current capture state.
	Status() domain.CaptureStatus

	// Elapsed returns how long the current recording has been running,
	// excluding pauses.
	Elapsed() time.Duration
}
