// Package domain defines events for the event-driven architecture.
// Capture, playback and rendering components talk to each other only through these events.
package domain

import (
	"image"
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Capture events (published by the capture collaborator)
	EventCaptureStarted EventType = "capture.started"
	EventCapturePaused  EventType = "capture.paused"
	EventCaptureResumed EventType = "capture.resumed"
	EventCaptureStopped EventType = "capture.stopped"

	// Recording events
	EventRecordingLoaded  EventType = "recording.loaded"
	EventRecordingError   EventType = "recording.error"
	EventRecordingCleared EventType = "recording.cleared"

	// Playback events
	EventPlaybackProgress EventType = "playback.progress"
	EventSeekRequested    EventType = "playback.seek"

	// Waveform events
	EventStyleChanged   EventType = "waveform.style"
	EventBarsReduced    EventType = "waveform.reduced"
	EventWaveformRedraw EventType = "waveform.redraw"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// CaptureStartedEvent is published when the microphone starts delivering frames.
type CaptureStartedEvent struct {
	baseEvent
	FrameSize int
}

// Type returns the event type.
func (e CaptureStartedEvent) Type() EventType {
	return EventCaptureStarted
}

// NewCaptureStartedEvent creates a new CaptureStartedEvent.
func NewCaptureStartedEvent(frameSize int) CaptureStartedEvent {
	return CaptureStartedEvent{
		baseEvent: newBaseEvent(),
		FrameSize: frameSize,
	}
}

// CapturePausedEvent is published when recording is paused.
type CapturePausedEvent struct {
	baseEvent
	Elapsed time.Duration
}

// Type returns the event type.
func (e CapturePausedEvent) Type() EventType {
	return EventCapturePaused
}

// NewCapturePausedEvent creates a new CapturePausedEvent.
func NewCapturePausedEvent(elapsed time.Duration) CapturePausedEvent {
	return CapturePausedEvent{
		baseEvent: newBaseEvent(),
		Elapsed:   elapsed,
	}
}

// CaptureResumedEvent is published when a paused recording continues.
type CaptureResumedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e CaptureResumedEvent) Type() EventType {
	return EventCaptureResumed
}

// NewCaptureResumedEvent creates a new CaptureResumedEvent.
func NewCaptureResumedEvent() CaptureResumedEvent {
	return CaptureResumedEvent{baseEvent: newBaseEvent()}
}

// CaptureStoppedEvent is published when recording stops.
type CaptureStoppedEvent struct {
	baseEvent
	Elapsed time.Duration
}

// Type returns the event type.
func (e CaptureStoppedEvent) Type() EventType {
	return EventCaptureStopped
}

// NewCaptureStoppedEvent creates a new CaptureStoppedEvent.
func NewCaptureStoppedEvent(elapsed time.Duration) CaptureStoppedEvent {
	return CaptureStoppedEvent{
		baseEvent: newBaseEvent(),
		Elapsed:   elapsed,
	}
}

// RecordingLoadedEvent is published when a finished recording has been decoded.
type RecordingLoadedEvent struct {
	baseEvent
	Audio     *DecodedAudio
	Preloaded bool // true when the recording came from a file instead of the microphone
}

// Type returns the event type.
func (e RecordingLoadedEvent) Type() EventType {
	return EventRecordingLoaded
}

// NewRecordingLoadedEvent creates a new RecordingLoadedEvent.
func NewRecordingLoadedEvent(audio *DecodedAudio, preloaded bool) RecordingLoadedEvent {
	return RecordingLoadedEvent{
		baseEvent: newBaseEvent(),
		Audio:     audio,
		Preloaded: preloaded,
	}
}

// RecordingErrorEvent is published when a recording cannot be decoded.
type RecordingErrorEvent struct {
	baseEvent
	Error error
}

// Type returns the event type.
func (e RecordingErrorEvent) Type() EventType {
	return EventRecordingError
}

// NewRecordingErrorEvent creates a new RecordingErrorEvent.
func NewRecordingErrorEvent(err error) RecordingErrorEvent {
	return RecordingErrorEvent{
		baseEvent: newBaseEvent(),
		Error:     err,
	}
}

// RecordingClearedEvent is published when the canvas and every recording state are cleared.
type RecordingClearedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RecordingClearedEvent) Type() EventType {
	return EventRecordingCleared
}

// NewRecordingClearedEvent creates a new RecordingClearedEvent.
func NewRecordingClearedEvent() RecordingClearedEvent {
	return RecordingClearedEvent{baseEvent: newBaseEvent()}
}

// PlaybackProgressEvent is published while a finished recording is played back.
type PlaybackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
	Playing  bool
}

// Type returns the event type.
func (e PlaybackProgressEvent) Type() EventType {
	return EventPlaybackProgress
}

// NewPlaybackProgressEvent creates a new PlaybackProgressEvent.
func NewPlaybackProgressEvent(position, duration time.Duration, playing bool) PlaybackProgressEvent {
	return PlaybackProgressEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
		Duration:  duration,
		Playing:   playing,
	}
}

// SeekRequestedEvent is published when the user clicks on the static waveform.
type SeekRequestedEvent struct {
	baseEvent
	Position time.Duration
}

// Type returns the event type.
func (e SeekRequestedEvent) Type() EventType {
	return EventSeekRequested
}

// NewSeekRequestedEvent creates a new SeekRequestedEvent.
func NewSeekRequestedEvent(position time.Duration) SeekRequestedEvent {
	return SeekRequestedEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
	}
}

// StyleChangedEvent is published when the waveform style changes.
type StyleChangedEvent struct {
	baseEvent
	Style Style
}

// Type returns the event type.
func (e StyleChangedEvent) Type() EventType {
	return EventStyleChanged
}

// NewStyleChangedEvent creates a new StyleChangedEvent.
func NewStyleChangedEvent(style Style) StyleChangedEvent {
	return StyleChangedEvent{
		baseEvent: newBaseEvent(),
		Style:     style,
	}
}

// BarsReducedEvent is published when a background reduction result has been applied.
type BarsReducedEvent struct {
	baseEvent
	Count      int
	Generation uint64
}

// Type returns the event type.
func (e BarsReducedEvent) Type() EventType {
	return EventBarsReduced
}

// NewBarsReducedEvent creates a new BarsReducedEvent.
func NewBarsReducedEvent(count int, generation uint64) BarsReducedEvent {
	return BarsReducedEvent{
		baseEvent:  newBaseEvent(),
		Count:      count,
		Generation: generation,
	}
}

// WaveformRedrawEvent carries a freshly painted canvas.
// Image is a private copy; subscribers may keep it.
type WaveformRedrawEvent struct {
	baseEvent
	Image *image.RGBA
	Mode  RenderMode
}

// Type returns the event type.
func (e WaveformRedrawEvent) Type() EventType {
	return EventWaveformRedraw
}

// NewWaveformRedrawEvent creates a new WaveformRedrawEvent.
func NewWaveformRedrawEvent(img *image.RGBA, mode RenderMode) WaveformRedrawEvent {
	return WaveformRedrawEvent{
		baseEvent: newBaseEvent(),
		Image:     img,
		Mode:      mode,
	}
}
