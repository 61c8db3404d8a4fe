// Package ports define repository interfaces for data persistence abstraction.
package ports

import (
	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// StyleRepository handles the persistence of the waveform style.
// This abstracts the Fyne preferences storage.
//
// Thread-safety: Implementations must be thread-safe.
type StyleRepository interface {
	// SaveStyle persists the style.
	//
	// Returns an error if saving fails.
	SaveStyle(style domain.Style) error

	// LoadStyle retrieves the saved style.
	// Fields that were never saved keep their domain.DefaultStyle value.
	//
	// Returns the style or an error if a stored value cannot be parsed.
	LoadStyle() (domain.Style, error)

	// Clear removes the saved style.
	Clear() error
}
