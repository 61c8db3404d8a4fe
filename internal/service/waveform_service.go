package service

import (
	"context"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
	"github.com/tejashwikalptaru/gowave/internal/render"
)

// WaveformConfig sizes the canvas and paces the frame loop.
type WaveformConfig struct {
	// Width and Height of the offscreen canvas in pixels
	Width  int
	Height int

	// FrameInterval is the frame loop period (default 16 ms)
	FrameInterval time.Duration

	// Debounce delays re-reduction after a resize (default DefaultDebounce)
	Debounce time.Duration
}

// DefaultWaveformConfig returns a 600x80 canvas refreshed at ~60 Hz.
func DefaultWaveformConfig() WaveformConfig {
	return WaveformConfig{
		Width:         600,
		Height:        80,
		FrameInterval: 16 * time.Millisecond,
		Debounce:      DefaultDebounce,
	}
}

// WaveformService drives both renderers from bus events.
//
// While capture runs, a frame loop reads the capture source and paints the
// live chart. When a recording is loaded, it is reduced in the background
// and painted as a static waveform that follows playback progress.
// Every paint is published as waveform.redraw when somebody listens.
//
// Thread-safety: all methods are safe for concurrent use. Painting happens
// under the service mutex; events are published after it is released.
type WaveformService struct {
	// Dependencies (injected)
	logger  *slog.Logger
	bus     ports.EventBus
	source  ports.CaptureSource
	decoder ports.Decoder
	reducer *Reducer

	cfg WaveformConfig

	// State
	style     domain.Style
	surface   *render.RasterSurface
	live      *render.LiveState
	frame     []byte
	ticks     int
	status    domain.CaptureStatus
	mode      domain.RenderMode
	recording *domain.DecodedAudio
	bars      []domain.Bar
	applied   uint64
	position  time.Duration
	duration  time.Duration

	// Concurrency control
	mu           sync.Mutex
	subs         []domain.SubscriptionID
	stopCh       chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewWaveformService creates the service, subscribes it to the bus and
// starts the frame loop.
func NewWaveformService(
	logger *slog.Logger,
	bus ports.EventBus,
	source ports.CaptureSource,
	decoder ports.Decoder,
	style domain.Style,
	cfg WaveformConfig,
) *WaveformService {
	def := DefaultWaveformConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if style.Validate() != nil {
		style = domain.DefaultStyle()
	}

	s := &WaveformService{
		logger:  logger.With(slog.String("service", "waveform")),
		bus:     bus,
		source:  source,
		decoder: decoder,
		cfg:     cfg,
		style:   style,
		surface: render.NewRasterSurface(render.EvenWidth(cfg.Width), cfg.Height),
		live:    render.NewLiveState(style.BarWidth),
		stopCh:  make(chan struct{}),
	}
	if source != nil {
		s.frame = make([]byte, source.FrameSize())
	}
	s.reducer = NewReducer(logger, cfg.Debounce, s.applyBars)

	s.subscribe()

	s.wg.Add(1)
	go s.frameLoop()

	s.logger.Debug("waveform service initialized",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height))
	return s
}

func (s *WaveformService) subscribe() {
	s.subs = []domain.SubscriptionID{
		s.bus.Subscribe(domain.EventCaptureStarted, s.onCaptureStarted),
		s.bus.Subscribe(domain.EventCapturePaused, s.onCaptureStatus(domain.CapturePaused)),
		s.bus.Subscribe(domain.EventCaptureResumed, s.onCaptureStatus(domain.CaptureRecording)),
		s.bus.Subscribe(domain.EventCaptureStopped, s.onCaptureStopped),
		s.bus.Subscribe(domain.EventRecordingLoaded, s.onRecordingLoaded),
		s.bus.Subscribe(domain.EventPlaybackProgress, s.onPlaybackProgress),
		s.bus.Subscribe(domain.EventStyleChanged, s.onStyleChanged),
	}
}

func (s *WaveformService) frameLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.drawFrame()
		}
	}
}

// drawFrame paints one live tick. Non-empty frames are only drawn every
// style.Speed ticks; an empty frame is drawn at once so the chart clears.
func (s *WaveformService) drawFrame() {
	s.mu.Lock()
	if s.status == domain.CaptureIdle || s.source == nil {
		s.mu.Unlock()
		return
	}

	s.ticks++
	n := s.source.ReadFrame(s.frame)
	if n > 0 && s.ticks%s.style.Speed != 0 {
		s.mu.Unlock()
		return
	}

	render.DrawLiveStream(s.surface, s.frame[:n], s.live, render.LiveOptions{
		Style:     s.style,
		Recording: true,
		Paused:    s.status == domain.CapturePaused,
	})
	s.mode = domain.ModeLive
	event := s.redrawLocked()
	s.mu.Unlock()

	s.publish(event)
}

func (s *WaveformService) onCaptureStarted(e domain.Event) {
	started := e.(domain.CaptureStartedEvent)

	s.mu.Lock()
	s.status = domain.CaptureRecording
	// the first tick paints
	s.ticks = s.style.Speed - 1
	s.live.Reset(s.style.BarWidth)
	s.recording = nil
	s.bars = nil
	s.position, s.duration = 0, 0
	s.mode = domain.ModeLive
	if started.FrameSize > 0 && started.FrameSize != len(s.frame) {
		s.frame = make([]byte, started.FrameSize)
	}
	s.mu.Unlock()
}

func (s *WaveformService) onCaptureStatus(status domain.CaptureStatus) domain.EventHandler {
	return func(domain.Event) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.status != domain.CaptureIdle {
			s.status = status
		}
	}
}

// onCaptureStopped drops the live history and clears the canvas.
func (s *WaveformService) onCaptureStopped(domain.Event) {
	s.mu.Lock()
	s.status = domain.CaptureIdle
	s.live.Reset(s.style.BarWidth)
	event := s.clearLocked()
	s.mu.Unlock()

	s.publish(event)
}

func (s *WaveformService) onRecordingLoaded(e domain.Event) {
	loaded := e.(domain.RecordingLoadedEvent)
	if loaded.Audio == nil {
		return
	}

	s.mu.Lock()
	if onlyRecording := s.style.OnlyRecording; onlyRecording || len(loaded.Audio.Samples) == 0 {
		s.recording = nil
		s.bars = nil
		event := s.clearLocked()
		s.mu.Unlock()

		s.logger.Debug("recording not drawn",
			slog.Bool("only_recording", onlyRecording),
			slog.Int("samples", len(loaded.Audio.Samples)))
		s.publish(event)
		return
	}

	s.recording = loaded.Audio
	s.position = 0
	s.duration = loaded.Audio.Duration
	job, ok := s.jobLocked()
	s.mu.Unlock()

	if !ok {
		return
	}
	s.logger.Debug("reducing recording",
		slog.Int("samples", len(loaded.Audio.Samples)),
		slog.Bool("preloaded", loaded.Preloaded))
	s.reducer.Submit(job)
}

func (s *WaveformService) onPlaybackProgress(e domain.Event) {
	progress := e.(domain.PlaybackProgressEvent)

	s.mu.Lock()
	s.position = progress.Position
	if progress.Duration > 0 {
		s.duration = progress.Duration
	}
	if s.mode != domain.ModeStatic {
		s.mu.Unlock()
		return
	}
	event := s.paintStaticLocked()
	s.mu.Unlock()

	s.publish(event)
}

func (s *WaveformService) onStyleChanged(e domain.Event) {
	style := e.(domain.StyleChangedEvent).Style
	if err := style.Validate(); err != nil {
		s.logger.Warn("ignoring invalid style", slog.Any("error", err))
		return
	}

	s.mu.Lock()
	s.style = style
	s.live.Reset(style.BarWidth)

	var event *domain.WaveformRedrawEvent
	switch {
	case s.recording != nil && style.OnlyRecording:
		s.recording = nil
		s.bars = nil
		event = s.clearLocked()
	case s.recording != nil:
		job, ok := s.jobLocked()
		s.mu.Unlock()
		if ok {
			s.reducer.Submit(job)
		}
		return
	case s.mode == domain.ModeIdle:
		event = s.clearLocked()
	}
	s.mu.Unlock()

	s.publish(event)
}

// applyBars receives reduction results on the reducer goroutine.
func (s *WaveformService) applyBars(res ReduceResult) {
	s.mu.Lock()
	if res.Generation < s.applied || s.recording == nil || s.status != domain.CaptureIdle {
		s.mu.Unlock()
		return
	}
	s.applied = res.Generation
	s.bars = res.Bars
	s.mode = domain.ModeStatic
	event := s.paintStaticLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewBarsReducedEvent(len(res.Bars), res.Generation))
	s.publish(event)
}

func (s *WaveformService) jobLocked() (ReduceJob, bool) {
	bounds := s.surface.Bounds()
	if s.recording == nil || len(s.recording.Samples) == 0 || bounds.Empty() {
		return ReduceJob{}, false
	}
	return ReduceJob{
		Samples:  s.recording.Samples,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		BarWidth: s.style.BarWidth,
		Gap:      s.style.Gap,
	}, true
}

func (s *WaveformService) paintStaticLocked() *domain.WaveformRedrawEvent {
	render.DrawBars(s.surface, s.bars, render.BarsOptions{
		Style:    s.style,
		Position: s.position,
		Duration: s.duration,
	})
	return s.redrawLocked()
}

func (s *WaveformService) clearLocked() *domain.WaveformRedrawEvent {
	s.mode = domain.ModeIdle
	if _, err := render.ResetCanvas(s.surface, s.style.BackgroundColor); err != nil {
		return nil
	}
	return s.redrawLocked()
}

// redrawLocked snapshots the canvas only when a redraw subscriber exists.
func (s *WaveformService) redrawLocked() *domain.WaveformRedrawEvent {
	if !s.bus.HasSubscribers(domain.EventWaveformRedraw) {
		return nil
	}
	event := domain.NewWaveformRedrawEvent(s.surface.Snapshot(), s.mode)
	return &event
}

func (s *WaveformService) publish(event *domain.WaveformRedrawEvent) {
	if event != nil {
		s.bus.Publish(*event)
	}
}

// Resize changes the canvas size. The width is rounded down to an even
// number of pixels. A loaded recording is reduced again once resizing
// settles; the live history restarts.
func (s *WaveformService) Resize(width, height int) {
	width = render.EvenWidth(width)
	height = max(height, 0)

	s.mu.Lock()
	bounds := s.surface.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		s.mu.Unlock()
		return
	}
	s.surface.Resize(width, height)
	s.live.Reset(s.style.BarWidth)

	var event *domain.WaveformRedrawEvent
	switch s.mode {
	case domain.ModeIdle:
		event = s.clearLocked()
	case domain.ModeStatic:
		// old bars until the debounced reduction lands
		event = s.paintStaticLocked()
	}
	job, ok := s.jobLocked()
	s.mu.Unlock()

	s.publish(event)
	if ok {
		s.reducer.SubmitDebounced(job)
	}
}

// Seek converts a click on the static waveform into a playback position
// and publishes playback.seek. It reports false when no static waveform is
// shown.
func (s *WaveformService) Seek(offsetX float64) (time.Duration, bool) {
	s.mu.Lock()
	if s.mode != domain.ModeStatic || s.duration <= 0 {
		s.mu.Unlock()
		return 0, false
	}
	position := render.SeekTime(offsetX, float64(s.surface.Bounds().Dx()), s.duration)
	s.mu.Unlock()

	s.bus.Publish(domain.NewSeekRequestedEvent(position))
	return position, true
}

// LoadRecording decodes r and shows it as if it had just been recorded.
// Decode failures are published as recording.error and returned.
func (s *WaveformService) LoadRecording(ctx context.Context, r io.ReadSeeker) error {
	if s.decoder == nil {
		return domain.NewServiceError("WaveformService", "LoadRecording", "no decoder configured", domain.ErrNotInitialized)
	}

	audio, err := s.decoder.Decode(ctx, r)
	if err != nil {
		s.logger.Warn("failed to decode recording", slog.Any("error", err))
		s.bus.Publish(domain.NewRecordingErrorEvent(err))
		return err
	}

	s.bus.Publish(domain.NewRecordingLoadedEvent(audio, true))
	return nil
}

// Clear drops the loaded recording and the live history.
func (s *WaveformService) Clear() {
	s.mu.Lock()
	s.recording = nil
	s.bars = nil
	s.position, s.duration = 0, 0
	s.live.Reset(s.style.BarWidth)
	event := s.clearLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewRecordingClearedEvent())
	s.publish(event)
}

// Snapshot returns a copy of the current canvas.
func (s *WaveformService) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Snapshot()
}

// Mode returns which renderer painted the canvas last.
func (s *WaveformService) Mode() domain.RenderMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Bars returns a copy of the static bars.
func (s *WaveformService) Bars() []domain.Bar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Bar(nil), s.bars...)
}

// Shutdown stops the frame loop and the reducer and unsubscribes from the bus.
func (s *WaveformService) Shutdown() error {
	s.shutdownOnce.Do(func() {
		for _, id := range s.subs {
			s.bus.Unsubscribe(id)
		}
		close(s.stopCh)
		s.wg.Wait()

		// the reducer callback takes s.mu, so it is closed without holding it
		s.reducer.Close()
		s.logger.Debug("waveform service stopped")
	})
	return nil
}
