// Package capture holds the recording lifecycle shared by every capture
// backend: status transitions, elapsed time, the rolling live frame and the
// accumulated recording.
package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

// DefaultFrameSize matches the analyser window of the browser recorder the
// live chart was tuned against.
const DefaultFrameSize = 2048

// Session tracks one recording at a time. Backends feed it with Push;
// the waveform service reads it through ReadFrame.
//
// Thread-safety: all methods are safe for concurrent use. Events are
// published after the lock is released.
type Session struct {
	bus    ports.EventBus
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	status      domain.CaptureStatus
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	frame       []byte
	frameLen    int
	samples     []float32
	sampleRate  int
}

// NewSession creates an idle session.
func NewSession(bus ports.EventBus, logger *slog.Logger, frameSize, sampleRate int) *Session {
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	return &Session{
		bus:        bus,
		logger:     logger.With(slog.String("component", "capture")),
		now:        time.Now,
		frame:      make([]byte, frameSize),
		sampleRate: sampleRate,
	}
}

// FrameSize implements ports.CaptureSource.
func (s *Session) FrameSize() int {
	return len(s.frame)
}

// SampleRate returns the rate of the accumulated recording.
func (s *Session) SampleRate() int {
	return s.sampleRate
}

// ReadFrame implements ports.CaptureSource. It returns 0 until the first
// Push of a recording.
func (s *Session) ReadFrame(dst []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.CaptureIdle {
		return 0
	}
	return copy(dst, s.frame[:s.frameLen])
}

// Push feeds captured samples in [-1, 1]. The live frame always follows the
// input; the recording only grows while not paused.
func (s *Session) Push(samples []float32) {
	if len(samples) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.CaptureIdle {
		return
	}
	if s.status == domain.CaptureRecording {
		s.samples = append(s.samples, samples...)
	}

	// keep the newest frameSize readings, oldest first
	size := len(s.frame)
	if len(samples) >= size {
		samples = samples[len(samples)-size:]
		s.frameLen = 0
	}
	if s.frameLen+len(samples) > size {
		drop := s.frameLen + len(samples) - size
		copy(s.frame, s.frame[drop:s.frameLen])
		s.frameLen -= drop
	}
	for _, v := range samples {
		s.frame[s.frameLen] = ToByte(v)
		s.frameLen++
	}
}

// ToByte maps a float sample to an unsigned 8-bit time-domain reading
// centred on 128.
func ToByte(v float32) byte {
	x := 128 + float64(v)*128
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return byte(x)
	}
}

// Start begins a new recording.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.status != domain.CaptureIdle {
		s.mu.Unlock()
		return fmt.Errorf("start capture: %w", domain.ErrAlreadyRunning)
	}
	s.status = domain.CaptureRecording
	s.startedAt = s.now()
	s.pausedTotal = 0
	s.frameLen = 0
	s.samples = nil
	s.mu.Unlock()

	s.logger.Info("capture started", slog.Int("frame_size", len(s.frame)))
	s.bus.Publish(domain.NewCaptureStartedEvent(len(s.frame)))
	return nil
}

// Pause suspends a running recording.
func (s *Session) Pause() error {
	s.mu.Lock()
	if s.status != domain.CaptureRecording {
		s.mu.Unlock()
		return domain.NewValidationError("status", s.status.String(), "only a running recording can be paused")
	}
	s.status = domain.CapturePaused
	s.pausedAt = s.now()
	elapsed := s.elapsedLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewCapturePausedEvent(elapsed))
	return nil
}

// Resume continues a paused recording.
func (s *Session) Resume() error {
	s.mu.Lock()
	if s.status != domain.CapturePaused {
		s.mu.Unlock()
		return domain.NewValidationError("status", s.status.String(), "only a paused recording can be resumed")
	}
	s.pausedTotal += s.now().Sub(s.pausedAt)
	s.status = domain.CaptureRecording
	s.mu.Unlock()

	s.bus.Publish(domain.NewCaptureResumedEvent())
	return nil
}

// Stop finalizes the recording. capture.stopped is published first, then
// recording.loaded when anything was captured.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.status == domain.CaptureIdle {
		s.mu.Unlock()
		return domain.ErrNotInitialized
	}
	elapsed := s.elapsedLocked()
	samples := s.samples
	s.samples = nil
	s.status = domain.CaptureIdle
	s.frameLen = 0
	s.mu.Unlock()

	s.logger.Info("capture stopped",
		slog.Duration("elapsed", elapsed),
		slog.Int("samples", len(samples)))
	s.bus.Publish(domain.NewCaptureStoppedEvent(elapsed))

	if len(samples) == 0 || s.sampleRate <= 0 {
		return nil
	}
	s.bus.Publish(domain.NewRecordingLoadedEvent(&domain.DecodedAudio{
		Samples:    samples,
		SampleRate: s.sampleRate,
		Duration:   time.Duration(float64(len(samples)) / float64(s.sampleRate) * float64(time.Second)),
		Format:     "pcm",
	}, false))
	return nil
}

// Status returns the current capture state.
func (s *Session) Status() domain.CaptureStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Elapsed returns the recording time, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() time.Duration {
	switch s.status {
	case domain.CaptureRecording:
		return s.now().Sub(s.startedAt) - s.pausedTotal
	case domain.CapturePaused:
		return s.pausedAt.Sub(s.startedAt) - s.pausedTotal
	default:
		return 0
	}
}
