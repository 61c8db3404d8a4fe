package decoder

import (
	"context"
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavChunk is the number of frames read per IntBuffer pass.
const wavChunk = 8192

func decodeWAV(ctx context.Context, r io.Reader) ([]float32, int, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, 0, errors.New("wav needs a seekable reader")
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, err
	}

	channels := int(dec.NumChans)
	bits := int(dec.BitDepth)
	if channels < 1 {
		return nil, 0, errors.New("WAV file has no channels")
	}
	if bits == 0 {
		bits = 16
	}

	buf := &audio.IntBuffer{
		Format: dec.Format(),
		Data:   make([]int, wavChunk*channels),
	}

	var out []float32
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		n, err := dec.PCMBuffer(buf)
		for i := 0; i+channels <= n; i += channels {
			out = append(out, pcmToFloat(buf.Data[i], bits))
		}

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}

	return out, int(dec.SampleRate), nil
}

// pcmToFloat maps a PCM sample to [-1, 1]. 8-bit WAV data is unsigned.
func pcmToFloat(v, bits int) float32 {
	if bits == 8 {
		return float32(v-128) / 128
	}
	return float32(float64(v) / float64(int(1)<<(bits-1)))
}
