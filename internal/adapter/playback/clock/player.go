// Package clock provides a ports.Player that advances a recording's
// playback position on the wall clock without producing sound.
package clock

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

// Options configures a Player.
type Options struct {
	// Interval between two playback.progress events (default 100 ms)
	Interval time.Duration

	// Now replaces time.Now in tests
	Now func() time.Time
}

// Player publishes playback.progress while playing and follows
// playback.seek requests from the waveform.
//
// Thread-safety: all methods are safe for concurrent use. Events are
// published after the lock is released.
type Player struct {
	bus      ports.EventBus
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration

	mu        sync.Mutex
	audio     *domain.DecodedAudio
	offset    time.Duration // position at the last play, pause or seek
	startedAt time.Time
	playing   bool
	closed    bool

	seekSub domain.SubscriptionID
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

var _ ports.Player = (*Player)(nil)

// New creates a player and starts its progress routine.
func New(bus ports.EventBus, logger *slog.Logger, opts Options) *Player {
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Millisecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	p := &Player{
		bus:      bus,
		logger:   logger.With(slog.String("component", "playback")),
		now:      opts.Now,
		interval: opts.Interval,
		stopCh:   make(chan struct{}),
	}

	p.seekSub = bus.Subscribe(domain.EventSeekRequested, func(e domain.Event) {
		if err := p.Seek(e.(domain.SeekRequestedEvent).Position); err != nil {
			p.logger.Debug("seek ignored", slog.Any("error", err))
		}
	})

	p.wg.Add(1)
	go p.run()

	return p
}

func (p *Player) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick publishes the current position and stops at the end of the recording.
func (p *Player) tick() {
	p.mu.Lock()
	if !p.playing || p.audio == nil {
		p.mu.Unlock()
		return
	}
	position := p.positionLocked()
	if position >= p.audio.Duration {
		position = p.audio.Duration
		p.offset = position
		p.playing = false
	}
	event := domain.NewPlaybackProgressEvent(position, p.audio.Duration, p.playing)
	p.mu.Unlock()

	p.bus.Publish(event)
}

// Load prepares a recording and rewinds to the start.
func (p *Player) Load(audio *domain.DecodedAudio) {
	p.mu.Lock()
	p.audio = audio
	p.offset = 0
	p.playing = false
	var duration time.Duration
	if audio != nil {
		duration = audio.Duration
	}
	p.mu.Unlock()

	p.bus.Publish(domain.NewPlaybackProgressEvent(0, duration, false))
}

// Play starts playback, rewinding first when the end was reached.
func (p *Player) Play() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return fmt.Errorf("play: %w", domain.ErrNotInitialized)
	}
	if p.playing {
		p.mu.Unlock()
		return nil
	}
	if p.offset >= p.audio.Duration {
		p.offset = 0
	}
	p.playing = true
	p.startedAt = p.now()
	event := domain.NewPlaybackProgressEvent(p.offset, p.audio.Duration, true)
	p.mu.Unlock()

	p.logger.Debug("playback started", slog.Duration("position", event.Position))
	p.bus.Publish(event)
	return nil
}

// Pause freezes the position.
func (p *Player) Pause() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return fmt.Errorf("pause: %w", domain.ErrNotInitialized)
	}
	if !p.playing {
		p.mu.Unlock()
		return nil
	}
	p.offset = min(p.positionLocked(), p.audio.Duration)
	p.playing = false
	event := domain.NewPlaybackProgressEvent(p.offset, p.audio.Duration, false)
	p.mu.Unlock()

	p.bus.Publish(event)
	return nil
}

// Seek moves the position, clamped to the recording.
func (p *Player) Seek(position time.Duration) error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return fmt.Errorf("seek: %w", domain.ErrNotInitialized)
	}
	p.offset = max(0, min(position, p.audio.Duration))
	p.startedAt = p.now()
	event := domain.NewPlaybackProgressEvent(p.offset, p.audio.Duration, p.playing)
	p.mu.Unlock()

	p.bus.Publish(event)
	return nil
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.audio == nil {
		return 0
	}
	return min(p.positionLocked(), p.audio.Duration)
}

// Playing reports whether the position is advancing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) positionLocked() time.Duration {
	if !p.playing {
		return p.offset
	}
	return p.offset + p.now().Sub(p.startedAt)
}

// Close stops the progress routine. A second Close returns domain.ErrClosed.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("player: %w", domain.ErrClosed)
	}
	p.closed = true
	p.playing = false
	close(p.stopCh)
	p.mu.Unlock()

	p.bus.Unsubscribe(p.seekSub)
	p.wg.Wait()
	return nil
}
