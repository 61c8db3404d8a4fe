// Package microphone captures the default input device through PortAudio.
package microphone

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/tejashwikalptaru/gowave/internal/adapter/capture"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 1024
)

// Recorder is a ports.Recorder reading mono float32 frames from the
// default input device.
//
// PortAudio is initialized per recording and terminated when it stops, so an
// idle Recorder holds no device.
type Recorder struct {
	*capture.Session

	logger     *slog.Logger
	bufferSize int

	mu      sync.Mutex
	stream  *portaudio.Stream
	running atomic.Bool
	wg      sync.WaitGroup
}

var _ ports.Recorder = (*Recorder)(nil)

// New creates an idle microphone recorder.
func New(bus ports.EventBus, logger *slog.Logger, sampleRate, bufferSize int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Recorder{
		Session:    capture.NewSession(bus, logger, capture.DefaultFrameSize, sampleRate),
		logger:     logger.With(slog.String("component", "microphone")),
		bufferSize: bufferSize,
	}
}

// Start opens the default input stream and begins a recording.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		return fmt.Errorf("start microphone: %w", domain.ErrAlreadyRunning)
	}

	if err := portaudio.Initialize(); err != nil {
		return domain.NewServiceError("Microphone", "Start", "failed to initialize portaudio", err)
	}

	buf := make([]float32, r.bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(r.SampleRate()), len(buf), buf)
	if err != nil {
		_ = portaudio.Terminate()
		return domain.NewServiceError("Microphone", "Start", "failed to open input stream", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return domain.NewServiceError("Microphone", "Start", "failed to start input stream", err)
	}

	if err := r.Session.Start(); err != nil {
		_ = stream.Stop()
		_ = stream.Close()
		_ = portaudio.Terminate()
		return err
	}

	r.stream = stream
	r.running.Store(true)
	r.wg.Add(1)
	go r.readLoop(stream, buf)

	r.logger.Info("microphone opened",
		slog.Int("sample_rate", r.SampleRate()),
		slog.Int("buffer_size", len(buf)))
	return nil
}

// readLoop blocks in stream.Read and hands each buffer to the session.
func (r *Recorder) readLoop(stream *portaudio.Stream, buf []float32) {
	defer r.wg.Done()

	chunk := make([]float32, len(buf))
	for r.running.Load() {
		if err := stream.Read(); err != nil {
			if r.running.Load() && !isOverflow(err) {
				r.logger.Warn("microphone read failed", slog.Any("error", err))
				return
			}
			continue
		}
		copy(chunk, buf)
		r.Push(chunk)
	}
}

// isOverflow reports a dropped input buffer, which is recoverable.
func isOverflow(err error) bool {
	return errors.Is(err, portaudio.InputOverflowed)
}

// Stop ends the recording and releases the device.
func (r *Recorder) Stop() error {
	r.release()
	return r.Session.Stop()
}

// Close releases the device and stops a running recording.
func (r *Recorder) Close() error {
	r.release()
	if r.Status() != domain.CaptureIdle {
		return r.Session.Stop()
	}
	return nil
}

func (r *Recorder) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream == nil {
		return
	}

	r.running.Store(false)
	if err := r.stream.Stop(); err != nil {
		r.logger.Warn("failed to stop input stream", slog.Any("error", err))
	}
	r.wg.Wait()

	if err := r.stream.Close(); err != nil {
		r.logger.Warn("failed to close input stream", slog.Any("error", err))
	}
	if err := portaudio.Terminate(); err != nil {
		r.logger.Warn("failed to terminate portaudio", slog.Any("error", err))
	}
	r.stream = nil
}
