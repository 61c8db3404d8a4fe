package decoder

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// wavFormatPCM is the RIFF audio format code for integer PCM.
const wavFormatPCM = 1

// EncodeWAV writes a recording as 16-bit mono PCM.
func EncodeWAV(w io.WriteSeeker, rec *domain.DecodedAudio) error {
	if rec == nil || rec.SampleRate <= 0 {
		return domain.NewValidationError("SampleRate", 0, "recording has no sample rate")
	}

	enc := wav.NewEncoder(w, rec.SampleRate, 16, 1, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rec.SampleRate},
		Data:           make([]int, len(rec.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range rec.Samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		buf.Data[i] = int(math.Round(v * 32767))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
