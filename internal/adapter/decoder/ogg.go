package decoder

import (
	"context"
	"errors"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

func decodeOGG(ctx context.Context, r io.Reader) ([]float32, int, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, 0, err
	}

	channels := reader.Channels()
	if channels < 1 {
		return nil, 0, errors.New("ogg stream has no channels")
	}

	var out []float32
	if n := reader.Length(); n > 0 {
		out = make([]float32, 0, n)
	}

	// a multiple of the channel count keeps every read frame-aligned
	buf := make([]float32, 4096*channels)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		n, err := reader.Read(buf)
		for i := 0; i+channels <= n; i += channels {
			out = append(out, buf[i])
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			break
		}
	}

	return out, reader.SampleRate(), nil
}
