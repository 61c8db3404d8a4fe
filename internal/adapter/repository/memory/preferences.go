// Package memory provides repository implementations backed by Fyne preferences.
package memory

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/flags"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

const (
	keyBackground    = "style.background"
	keyMainColor     = "style.main_color"
	keySecondary     = "style.secondary_color"
	keyBarWidth      = "style.bar_width"
	keyGap           = "style.gap"
	keyRounded       = "style.rounded"
	keySpeed         = "style.speed"
	keyAnimatePick   = "style.animate_current_pick"
	keyFullscreen    = "style.fullscreen"
	keyOnlyRecording = "style.only_recording"
)

var styleKeys = []string{
	keyBackground, keyMainColor, keySecondary,
	keyBarWidth, keyGap, keyRounded, keySpeed,
	keyAnimatePick, keyFullscreen, keyOnlyRecording,
}

// PreferencesRepository implements ports.StyleRepository using Fyne preferences.
// Colours are stored in their flag notation so a saved style reads the same
// as the command line.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveStyle persists every style field.
func (r *PreferencesRepository) SaveStyle(style domain.Style) error {
	if err := style.Validate(); err != nil {
		return domain.NewRepositoryError("save", "style", "refusing to store an invalid style", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyBackground, flags.FormatColor(style.BackgroundColor))
	r.prefs.SetString(keyMainColor, flags.FormatColor(style.MainBarColor))
	r.prefs.SetString(keySecondary, flags.FormatColor(style.SecondaryBarColor))
	r.prefs.SetInt(keyBarWidth, style.BarWidth)
	r.prefs.SetInt(keyGap, style.Gap)
	r.prefs.SetFloat(keyRounded, style.Rounded)
	r.prefs.SetInt(keySpeed, style.Speed)
	r.prefs.SetBool(keyAnimatePick, style.AnimateCurrentPick)
	r.prefs.SetBool(keyFullscreen, style.Fullscreen)
	r.prefs.SetBool(keyOnlyRecording, style.OnlyRecording)
	return nil
}

// LoadStyle retrieves the saved style, falling back to domain.DefaultStyle
// per field.
func (r *PreferencesRepository) LoadStyle() (domain.Style, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def := domain.DefaultStyle()
	style := domain.Style{
		BarWidth:           r.prefs.IntWithFallback(keyBarWidth, def.BarWidth),
		Gap:                r.prefs.IntWithFallback(keyGap, def.Gap),
		Rounded:            r.prefs.FloatWithFallback(keyRounded, def.Rounded),
		Speed:              r.prefs.IntWithFallback(keySpeed, def.Speed),
		AnimateCurrentPick: r.prefs.BoolWithFallback(keyAnimatePick, def.AnimateCurrentPick),
		Fullscreen:         r.prefs.BoolWithFallback(keyFullscreen, def.Fullscreen),
		OnlyRecording:      r.prefs.BoolWithFallback(keyOnlyRecording, def.OnlyRecording),
	}

	var err error
	if style.BackgroundColor, err = r.loadColor(keyBackground, def.BackgroundColor); err != nil {
		return def, err
	}
	if style.MainBarColor, err = r.loadColor(keyMainColor, def.MainBarColor); err != nil {
		return def, err
	}
	if style.SecondaryBarColor, err = r.loadColor(keySecondary, def.SecondaryBarColor); err != nil {
		return def, err
	}

	if err := style.Validate(); err != nil {
		return def, domain.NewRepositoryError("load", "style", "stored style is invalid", err)
	}
	return style, nil
}

func (r *PreferencesRepository) loadColor(key string, fallback color.NRGBA) (color.NRGBA, error) {
	s := r.prefs.String(key)
	if s == "" {
		return fallback, nil
	}
	c, err := flags.ParseColor(s)
	if err != nil {
		return fallback, domain.NewRepositoryError("load", "style", "cannot parse "+key, err)
	}
	return c, nil
}

// Clear removes the saved style.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range styleKeys {
		r.prefs.RemoveValue(key)
	}
	return nil
}

// Verify interface implementation
var _ ports.StyleRepository = (*PreferencesRepository)(nil)
