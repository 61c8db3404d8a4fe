package decoder

import (
	"context"
	"encoding/binary"
	"errors"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little-endian stereo.
const mp3FrameBytes = 4

func decodeMP3(ctx context.Context, r io.Reader) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}

	var out []float32
	if n := dec.Length(); n > 0 {
		out = make([]float32, 0, n/mp3FrameBytes)
	}

	chunk := make([]byte, 16*1024)
	var carry []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		n, err := dec.Read(chunk)
		data := append(carry, chunk[:n]...)
		whole := len(data) / mp3FrameBytes * mp3FrameBytes
		for i := 0; i < whole; i += mp3FrameBytes {
			left := int16(binary.LittleEndian.Uint16(data[i:]))
			out = append(out, float32(left)/32768)
		}
		carry = append(carry[:0], data[whole:]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}

	return out, dec.SampleRate(), nil
}
