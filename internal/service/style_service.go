// Package service provides the waveform application logic.
package service

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

// StyleService owns the active waveform style and keeps it persisted.
// Every change is published as waveform.style.
// All operations are thread-safe via sync.RWMutex.
type StyleService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.StyleRepository
	bus        ports.EventBus

	style domain.Style

	mu sync.RWMutex
}

// NewStyleService creates a style service seeded from the repository.
// A stored style that cannot be loaded is replaced by domain.DefaultStyle.
func NewStyleService(
	logger *slog.Logger,
	repository ports.StyleRepository,
	bus ports.EventBus,
) *StyleService {
	logger = logger.With(slog.String("service", "style"))

	style, err := repository.LoadStyle()
	if err != nil {
		logger.Warn("stored style unusable, using defaults", slog.Any("error", err))
		style = domain.DefaultStyle()
	}

	logger.Debug("style service initialized",
		slog.Int("bar_width", style.BarWidth),
		slog.Int("gap", style.Gap))

	return &StyleService{
		logger:     logger,
		repository: repository,
		bus:        bus,
		style:      style,
	}
}

// Style returns the active style.
func (s *StyleService) Style() domain.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.style
}

// SetStyle validates, persists and publishes a new style.
// The style stays active even when persisting it fails.
func (s *StyleService) SetStyle(style domain.Style) error {
	if err := style.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.style = style
	s.mu.Unlock()

	s.bus.Publish(domain.NewStyleChangedEvent(style))

	if err := s.repository.SaveStyle(style); err != nil {
		return domain.NewServiceError("StyleService", "SetStyle", "failed to persist style", err)
	}
	return nil
}

// Update applies fn to a copy of the active style and stores the result.
func (s *StyleService) Update(fn func(*domain.Style)) error {
	style := s.Style()
	fn(&style)
	return s.SetStyle(style)
}

// ResetToDefaults drops the stored style and publishes domain.DefaultStyle.
func (s *StyleService) ResetToDefaults() error {
	style := domain.DefaultStyle()

	s.mu.Lock()
	s.style = style
	s.mu.Unlock()

	s.bus.Publish(domain.NewStyleChangedEvent(style))

	if err := s.repository.Clear(); err != nil {
		return domain.NewServiceError("StyleService", "ResetToDefaults", "failed to clear stored style", err)
	}
	return nil
}

// Shutdown cleans up resources.
func (s *StyleService) Shutdown() error {
	// Nothing to release
	return nil
}
