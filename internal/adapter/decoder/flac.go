package decoder

import (
	"context"
	"errors"
	"io"

	"github.com/mewkiz/flac"
)

func decodeFLAC(ctx context.Context, r io.Reader) ([]float32, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	info := stream.Info
	bits := int(info.BitsPerSample)
	if bits == 0 {
		return nil, 0, errors.New("flac stream has no bit depth")
	}
	scale := float64(int64(1) << (bits - 1))

	out := make([]float32, 0, info.NSamples)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		for _, s := range frame.Subframes[0].Samples {
			out = append(out, float32(float64(s)/scale))
		}
	}

	return out, int(info.SampleRate), nil
}
