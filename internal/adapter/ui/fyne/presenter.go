// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/adapter/decoder"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
	"github.com/tejashwikalptaru/gowave/internal/service"
)

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between services and the UI, handling all event-driven updates.
//
// Responsibilities:
// - Subscribe to events from the event bus
// - Map domain events to UI updates
// - Translate UI commands to recorder, player and service calls
//
// Thread-safety: All operations are thread-safe via sync.RWMutex.
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Collaborators (injected)
	recorder ports.Recorder
	player   ports.Player
	waveform *service.WaveformService
	styles   *service.StyleService

	bus  ports.EventBus
	view ports.UI

	// Presentation state
	recording *domain.DecodedAudio
	playing   bool
	subs      []domain.SubscriptionID

	// Elapsed clock refresh
	elapsedInterval time.Duration
	stopElapsed     chan struct{}
	wg              sync.WaitGroup

	// Concurrency control
	mu           sync.RWMutex
	shutdownOnce sync.Once
}

// NewPresenter creates a new presenter.
func NewPresenter(
	logger *slog.Logger,
	recorder ports.Recorder,
	player ports.Player,
	waveform *service.WaveformService,
	styles *service.StyleService,
	bus ports.EventBus,
	view ports.UI,
) *Presenter {
	p := &Presenter{
		logger:          logger,
		recorder:        recorder,
		player:          player,
		waveform:        waveform,
		styles:          styles,
		bus:             bus,
		view:            view,
		elapsedInterval: 100 * time.Millisecond,
		stopElapsed:     make(chan struct{}),
	}

	// Subscribe to events
	p.subscribeToEvents()

	// Sync UI with current state
	p.view.SetCaptureState(recorder.Status())
	p.view.SetStyle(styles.Style())
	p.view.SetPlayback(0, 0, false)

	// Start the recording clock
	p.startElapsedUpdates()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := []struct {
		eventType domain.EventType
		handler   domain.EventHandler
	}{
		// Capture events
		{domain.EventCaptureStarted, p.onCaptureChanged},
		{domain.EventCapturePaused, p.onCaptureChanged},
		{domain.EventCaptureResumed, p.onCaptureChanged},
		{domain.EventCaptureStopped, p.onCaptureChanged},

		// Recording events
		{domain.EventRecordingLoaded, p.onRecordingLoaded},
		{domain.EventRecordingError, p.onRecordingError},
		{domain.EventRecordingCleared, p.onRecordingCleared},

		// Playback and waveform events
		{domain.EventPlaybackProgress, p.onPlaybackProgress},
		{domain.EventWaveformRedraw, p.onWaveformRedraw},
		{domain.EventStyleChanged, p.onStyleChanged},
	}

	for _, sub := range subscriptions {
		p.subs = append(p.subs, p.bus.Subscribe(sub.eventType, sub.handler))
	}
}

// Event handlers

func (p *Presenter) onCaptureChanged(event domain.Event) {
	p.view.SetCaptureState(p.recorder.Status())

	if stopped, ok := event.(domain.CaptureStoppedEvent); ok {
		p.view.SetElapsed(stopped.Elapsed)
	}
}

func (p *Presenter) onRecordingLoaded(event domain.Event) {
	e, ok := event.(domain.RecordingLoadedEvent)
	if !ok || e.Audio == nil {
		return
	}

	p.mu.Lock()
	p.recording = e.Audio
	p.playing = false
	p.mu.Unlock()

	p.player.Load(e.Audio)

	title := e.Audio.Title
	if title == "" && !e.Preloaded {
		title = "New recording"
	}
	p.view.SetTitle(title)
}

func (p *Presenter) onRecordingError(event domain.Event) {
	e, ok := event.(domain.RecordingErrorEvent)
	if !ok {
		return
	}

	p.view.ShowError("Recording Error", e.Error)
}

func (p *Presenter) onRecordingCleared(domain.Event) {
	p.mu.Lock()
	p.recording = nil
	p.playing = false
	p.mu.Unlock()

	p.player.Load(nil)
	p.view.SetTitle("")
	p.view.SetElapsed(0)
}

func (p *Presenter) onPlaybackProgress(event domain.Event) {
	e, ok := event.(domain.PlaybackProgressEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	p.playing = e.Playing
	p.mu.Unlock()

	p.view.SetPlayback(e.Position, e.Duration, e.Playing)
}

func (p *Presenter) onWaveformRedraw(event domain.Event) {
	e, ok := event.(domain.WaveformRedrawEvent)
	if !ok {
		return
	}

	p.view.SetWaveform(e.Image)
}

func (p *Presenter) onStyleChanged(event domain.Event) {
	e, ok := event.(domain.StyleChangedEvent)
	if !ok {
		return
	}

	p.view.SetStyle(e.Style)
}

func (p *Presenter) startElapsedUpdates() {
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.elapsedInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.updateElapsed()
			case <-p.stopElapsed:
				return
			}
		}
	}()
}

func (p *Presenter) updateElapsed() {
	if p.recorder.Status() == domain.CaptureIdle {
		return
	}
	p.view.SetElapsed(p.recorder.Elapsed())
}

// UI Command handlers (called by UI)

// OnRecordClicked starts, pauses or resumes the recording.
func (p *Presenter) OnRecordClicked() {
	var err error
	switch p.recorder.Status() {
	case domain.CaptureIdle:
		if pauseErr := p.pausePlayback(); pauseErr != nil {
			p.logger.Debug("nothing to pause", slog.Any("error", pauseErr))
		}
		err = p.recorder.Start()
	case domain.CaptureRecording:
		err = p.recorder.Pause()
	case domain.CapturePaused:
		err = p.recorder.Resume()
	}

	if err != nil {
		p.logger.Error("record toggle failed", slog.Any("error", err))
		p.view.ShowNotification("Recording Error",
			fmt.Sprintf("Failed to change recording state: %v", err))
	}
}

// OnStopClicked finalizes the recording.
func (p *Presenter) OnStopClicked() {
	if p.recorder.Status() == domain.CaptureIdle {
		return
	}
	if err := p.recorder.Stop(); err != nil {
		p.logger.Error("stop failed", slog.Any("error", err))
		p.view.ShowNotification("Recording Error",
			fmt.Sprintf("Failed to stop recording: %v", err))
	}
}

// OnPlayClicked toggles playback of the finished recording.
func (p *Presenter) OnPlayClicked() {
	p.mu.RLock()
	playing := p.playing
	hasRecording := p.recording != nil
	p.mu.RUnlock()

	if !hasRecording {
		return
	}

	var err error
	if playing {
		err = p.player.Pause()
	} else {
		err = p.player.Play()
	}

	if err != nil {
		p.logger.Error("play/pause failed", slog.Any("error", err))
		p.view.ShowNotification("Playback Error",
			fmt.Sprintf("Failed to start playback: %v", err))
	}
}

func (p *Presenter) pausePlayback() error {
	p.mu.RLock()
	playing := p.playing
	p.mu.RUnlock()

	if !playing {
		return nil
	}
	return p.player.Pause()
}

// OnClearClicked drops the recording and clears the canvas.
func (p *Presenter) OnClearClicked() {
	if p.recorder.Status() != domain.CaptureIdle {
		return
	}
	p.waveform.Clear()
}

// OnWaveformTapped seeks to the tapped position.
func (p *Presenter) OnWaveformTapped(x float64) {
	if position, ok := p.waveform.Seek(x); ok {
		p.logger.Debug("seek requested", slog.Duration("position", position))
	}
}

// OnWaveformResized forwards the view's pixel size.
func (p *Presenter) OnWaveformResized(width, height int) {
	p.waveform.Resize(width, height)
}

// OnFileOpened loads a recording from disk.
func (p *Presenter) OnFileOpened(filePath string) error {
	if p.recorder.Status() != domain.CaptureIdle {
		return domain.NewValidationError("capture", p.recorder.Status().String(), "stop the recording before opening a file")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.waveform.LoadRecording(ctx, f); err != nil {
		return err
	}

	p.mu.RLock()
	untitled := p.recording != nil && p.recording.Title == ""
	p.mu.RUnlock()
	if untitled {
		p.view.SetTitle(filepath.Base(filePath))
	}
	return nil
}

// OnExportRequested writes the last recording as a WAV file.
func (p *Presenter) OnExportRequested(filePath string) error {
	p.mu.RLock()
	rec := p.recording
	p.mu.RUnlock()

	if rec == nil {
		return fmt.Errorf("export: %w", domain.ErrEmptyInput)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if err := decoder.EncodeWAV(f, rec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	p.view.ShowNotification("Export Complete", filepath.Base(filePath))
	return nil
}

// OnStyleChanged applies a style edit from the style menu.
func (p *Presenter) OnStyleChanged(edit func(*domain.Style)) {
	if err := p.styles.Update(edit); err != nil {
		p.logger.Warn("style update failed", slog.Any("error", err))
		p.view.ShowError("Style Error", err)
	}
}

// OnResetStyle restores the default style.
func (p *Presenter) OnResetStyle() {
	if err := p.styles.ResetToDefaults(); err != nil {
		p.logger.Warn("style reset failed", slog.Any("error", err))
	}
}

// Shutdown cleans up resources.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, id := range p.subs {
			p.bus.Unsubscribe(id)
		}

		// Close channel to signal goroutine to exit
		close(p.stopElapsed)
		p.wg.Wait()
	})
}
