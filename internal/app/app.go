// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/gowave/internal/adapter/capture/microphone"
	"github.com/tejashwikalptaru/gowave/internal/adapter/capture/synthetic"
	"github.com/tejashwikalptaru/gowave/internal/adapter/decoder"
	"github.com/tejashwikalptaru/gowave/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gowave/internal/adapter/playback/clock"
	"github.com/tejashwikalptaru/gowave/internal/adapter/repository/memory"
	fyneui "github.com/tejashwikalptaru/gowave/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/logger"
	"github.com/tejashwikalptaru/gowave/internal/ports"
	"github.com/tejashwikalptaru/gowave/internal/service"
)

// Capture backends selectable through Config.Source.
const (
	SourceSynthetic  = "synthetic"
	SourceMicrophone = "mic"
)

// recorder is a capture backend that holds a device or a goroutine until closed.
type recorder interface {
	ports.Recorder
	Close() error
}

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App
	config  Config

	// Infrastructure
	eventBus *eventbus.SyncEventBus
	recorder recorder
	player   *clock.Player

	// Repositories
	styleRepo ports.StyleRepository

	// Services
	styleService    *service.StyleService
	waveformService *service.WaveformService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
	shutdownErr  error
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// Source picks the capture backend: SourceSynthetic or SourceMicrophone
	Source string

	// SampleRate is the capture sample rate
	SampleRate int

	// Style overrides the stored waveform style when set
	Style *domain.Style

	// Preload is a recording opened at startup
	Preload string

	// Waveform sizes the canvas and paces the frame loop
	Waveform service.WaveformConfig

	// Logger configures logging verbosity and format
	Logger logger.Config

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{
		AppID:      "com.gowave.app",
		AppName:    "Go Wave",
		Source:     SourceMicrophone,
		SampleRate: microphone.DefaultSampleRate,
		Waveform:   service.DefaultWaveformConfig(),
		Logger:     logger.DefaultConfig(),
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	if config.Source != SourceSynthetic && config.Source != SourceMicrophone {
		return nil, domain.NewValidationError("Source", config.Source, "must be synthetic or mic")
	}
	if config.Style != nil {
		if err := config.Style.Validate(); err != nil {
			return nil, err
		}
	}

	app := &Application{config: config}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 1.5: Create logger
	app.logger = logger.NewLogger(config.Logger)
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("source", config.Source))

	// Step 2: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus()
	app.eventBus.SetLogger(app.logger)

	// Step 3: Create the capture backend and the playback clock
	switch config.Source {
	case SourceSynthetic:
		cfg := synthetic.DefaultConfig()
		cfg.SampleRate = config.SampleRate
		app.recorder = synthetic.New(cfg, app.eventBus, app.logger)
	case SourceMicrophone:
		app.recorder = microphone.New(app.eventBus, app.logger, config.SampleRate, microphone.DefaultBufferSize)
	}
	app.player = clock.New(app.eventBus, app.logger, clock.Options{})

	// Step 4: Create repositories
	app.styleRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())

	// Step 5: Create services (with dependency injection)
	app.styleService = service.NewStyleService(app.logger, app.styleRepo, app.eventBus)
	if config.Style != nil {
		if err := app.styleService.SetStyle(*config.Style); err != nil {
			// Non-fatal - the style is active, it just was not stored
			app.logger.Warn("failed to store style", slog.Any("error", err))
		}
	}

	app.waveformService = service.NewWaveformService(
		app.logger,
		app.eventBus,
		app.recorder,
		decoder.New(app.logger),
		app.styleService.Style(),
		config.Waveform,
	)

	// Step 6: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp)
	app.mainWindow.SetVersion(GetVersionInfo().FullString())

	// Step 7: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.recorder,
		app.player,
		app.waveformService,
		app.styleService,
		app.eventBus,
		app.mainWindow,
	)

	// Connect presenter to the main window
	app.mainWindow.SetPresenter(app.presenter)

	// A running recording is finalized before the window goes away
	app.mainWindow.SetOnBeforeClose(func() {
		if app.recorder.Status() != domain.CaptureIdle {
			if err := app.recorder.Stop(); err != nil {
				app.logger.Warn("failed to stop recording on close", slog.Any("error", err))
			}
		}
	})

	return app, nil
}

// Run opens the preloaded recording, if any, and shows the window.
// It blocks until the window is closed.
func (a *Application) Run() error {
	a.logger.Info("Go Wave started", slog.String("version", GetVersionInfo().FullString()))

	if err := a.preload(); err != nil {
		a.mainWindow.ShowError("Open Failed", err)
	}

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
	return nil
}

func (a *Application) preload() error {
	if a.config.Preload == "" {
		return nil
	}
	if err := a.presenter.OnFileOpened(a.config.Preload); err != nil {
		a.logger.Warn("failed to preload recording",
			slog.String("path", a.config.Preload),
			slog.Any("error", err))
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times; later calls return the first result.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		var errs []error

		// Shutdown UI and presenter
		if a.presenter != nil {
			a.presenter.Shutdown()
		}

		// Shutdown services (in reverse order of creation)
		if a.waveformService != nil {
			if err := a.waveformService.Shutdown(); err != nil {
				errs = append(errs, fmt.Errorf("waveform service: %w", err))
			}
		}

		if a.styleService != nil {
			if err := a.styleService.Shutdown(); err != nil {
				errs = append(errs, fmt.Errorf("style service: %w", err))
			}
		}

		// Release capture and playback
		if a.player != nil {
			if err := a.player.Close(); err != nil {
				errs = append(errs, fmt.Errorf("player: %w", err))
			}
		}

		if a.recorder != nil {
			if err := a.recorder.Close(); err != nil {
				errs = append(errs, fmt.Errorf("recorder: %w", err))
			}
		}

		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}

		a.shutdownErr = errors.Join(errs...)
		if a.shutdownErr != nil {
			a.logger.Warn("shutdown finished with errors", slog.Any("error", a.shutdownErr))
			return
		}
		a.logger.Info("application shutdown complete")
	})

	return a.shutdownErr
}

// GetServices returns the waveform and style services.
func (a *Application) GetServices() (*service.WaveformService, *service.StyleService) {
	return a.waveformService, a.styleService
}

// GetRecorder returns the capture backend.
func (a *Application) GetRecorder() ports.Recorder {
	return a.recorder
}

// GetPresenter returns the presenter driving the main window.
func (a *Application) GetPresenter() *fyneui.Presenter {
	return a.presenter
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}
