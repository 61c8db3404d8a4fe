package ports

import (
	"context"
	"io"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// Decoder turns an encoded recording into channel 0 float samples.
//
// Failures are reported as *domain.DecodeError; an unknown container wraps
// domain.ErrUnsupportedFormat.
type Decoder interface {
	Decode(ctx context.Context, r io.ReadSeeker) (*domain.DecodedAudio, error)
}

// Player reports the playback position of a finished recording.
// Implementations publish playback.progress while playing and react to
// playback.seek events.
type Player interface {
	// Load prepares a recording for playback and rewinds to the start.
	Load(audio *domain.DecodedAudio)

	// Play starts or resumes playback.
	Play() error

	// Pause pauses playback.
	Pause() error

	// Seek moves the playback position.
	Seek(position time.Duration) error

	// Close stops the progress publisher.
	Close() error
}
