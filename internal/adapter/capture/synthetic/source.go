// Package synthetic is a capture backend that needs no audio hardware.
// It plays silence, a test tone or a decoded recording into a capture
// session in real time.
package synthetic

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/adapter/capture"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

// Mode selects the generated signal.
type Mode int

const (
	// ModeSilence produces zeros
	ModeSilence Mode = iota

	// ModeSine produces a tone with a slow amplitude wobble
	ModeSine

	// ModeReplay loops the samples of a recording
	ModeReplay
)

// Config configures a Source.
type Config struct {
	Mode       Mode
	SampleRate int
	FrameSize  int

	// Frequency of the ModeSine tone in Hz
	Frequency float64

	// Replay is looped in ModeReplay
	Replay []float32

	// Interval between two pushes
	Interval time.Duration
}

// DefaultConfig returns a 440 Hz tone at 44.1 kHz pushed every 20 ms.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeSine,
		SampleRate: 44100,
		FrameSize:  capture.DefaultFrameSize,
		Frequency:  440,
		Interval:   20 * time.Millisecond,
	}
}

// Source is a ports.Recorder fed by a generator goroutine while a recording runs.
type Source struct {
	*capture.Session

	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
	pos    int
}

var _ ports.Recorder = (*Source)(nil)

// New creates an idle synthetic source.
func New(cfg Config, bus ports.EventBus, logger *slog.Logger) *Source {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Mode == ModeReplay && len(cfg.Replay) == 0 {
		cfg.Mode = ModeSilence
	}

	return &Source{
		Session: capture.NewSession(bus, logger, cfg.FrameSize, cfg.SampleRate),
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "synthetic")),
	}
}

// Start begins a recording and the generator.
func (s *Source) Start() error {
	if err := s.Session.Start(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pos = 0
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.stopCh)
	return nil
}

// Stop halts the generator and finalizes the recording.
func (s *Source) Stop() error {
	s.halt()
	return s.Session.Stop()
}

// Close stops a running recording without error if none is running.
func (s *Source) Close() error {
	s.halt()
	if s.Status() != domain.CaptureIdle {
		return s.Session.Stop()
	}
	return nil
}

func (s *Source) halt() {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Source) run(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	chunk := make([]float32, int(float64(s.cfg.SampleRate)*s.cfg.Interval.Seconds()))
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.fill(chunk)
			s.Push(chunk)
		}
	}
}

// fill writes the next len(buf) generated samples.
func (s *Source) fill(buf []float32) {
	rate := float64(s.cfg.SampleRate)
	for i := range buf {
		n := s.pos + i
		switch s.cfg.Mode {
		case ModeSine:
			t := float64(n) / rate
			env := 0.35 + 0.3*math.Sin(2*math.Pi*0.5*t)
			buf[i] = float32(env * math.Sin(2*math.Pi*s.cfg.Frequency*t))
		case ModeReplay:
			buf[i] = s.cfg.Replay[n%len(s.cfg.Replay)]
		default:
			buf[i] = 0
		}
	}
	s.pos += len(buf)
}
