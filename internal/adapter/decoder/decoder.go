// Package decoder turns finished recordings into float samples for the
// static waveform. WAV, MP3, Ogg Vorbis and FLAC are supported.
package decoder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/ports"
)

// Container formats.
const (
	FormatWAV  = "wav"
	FormatMP3  = "mp3"
	FormatOGG  = "ogg"
	FormatFLAC = "flac"
)

// decodeFunc reads every sample of channel 0 from r.
type decodeFunc func(ctx context.Context, r io.Reader) (samples []float32, sampleRate int, err error)

// Decoder implements ports.Decoder for every supported container.
type Decoder struct {
	logger  *slog.Logger
	formats map[string]decodeFunc
}

var _ ports.Decoder = (*Decoder)(nil)

// New creates a decoder.
func New(logger *slog.Logger) *Decoder {
	return &Decoder{
		logger: logger.With(slog.String("component", "decoder")),
		formats: map[string]decodeFunc{
			FormatWAV:  decodeWAV,
			FormatMP3:  decodeMP3,
			FormatOGG:  decodeOGG,
			FormatFLAC: decodeFLAC,
		},
	}
}

// Decode identifies the container, decodes channel 0 and reads the title
// tag when there is one.
func (d *Decoder) Decode(ctx context.Context, r io.ReadSeeker) (*domain.DecodedAudio, error) {
	format, err := Identify(r)
	if err != nil {
		return nil, domain.NewDecodeError("identify", "", "unrecognized container", err)
	}

	decode, ok := d.formats[format]
	if !ok {
		return nil, domain.NewDecodeError("identify", format, "no decoder registered", domain.ErrUnsupportedFormat)
	}

	title := readTitle(r)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, domain.NewDecodeError("decode", format, "rewind failed", err)
	}

	start := time.Now()
	samples, rate, err := decode(ctx, r)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, domain.NewDecodeError("decode", format, err.Error(), err)
	}
	if rate <= 0 {
		return nil, domain.NewDecodeError("decode", format, "missing sample rate", domain.ErrEmptyInput)
	}
	if len(samples) == 0 {
		return nil, domain.NewDecodeError("decode", format, "no samples", domain.ErrEmptyInput)
	}

	audio := &domain.DecodedAudio{
		Samples:    samples,
		SampleRate: rate,
		Duration:   time.Duration(float64(len(samples)) / float64(rate) * float64(time.Second)),
		Format:     format,
		Title:      title,
	}

	d.logger.Debug("recording decoded",
		slog.String("format", format),
		slog.Int("samples", len(samples)),
		slog.Int("sample_rate", rate),
		slog.Duration("duration", audio.Duration),
		slog.Duration("took", time.Since(start)))

	return audio, nil
}

// readTitle returns the embedded title, or "" when the file carries no tags.
func readTitle(r io.ReadSeeker) string {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	metadata, err := tag.ReadFrom(r)
	if err != nil || metadata == nil {
		return ""
	}
	return strings.TrimSpace(metadata.Title())
}
