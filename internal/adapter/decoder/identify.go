package decoder

import (
	"bytes"
	"io"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// Identify returns the container format of r and rewinds it.
//
// Tagged files are recognized by their tag header. WAV files and MP3 streams
// without an ID3 header carry no tag, so their magic bytes are checked next.
func Identify(r io.ReadSeeker) (string, error) {
	defer func() { _, _ = r.Seek(0, io.SeekStart) }()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, fileType, err := tag.Identify(r); err == nil {
		switch fileType {
		case tag.MP3:
			return FormatMP3, nil
		case tag.OGG:
			return FormatOGG, nil
		case tag.FLAC:
			return FormatFLAC, nil
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	head := make([]byte, 12)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", domain.ErrUnsupportedFormat
	}
	return sniff(head[:n])
}

func sniff(head []byte) (string, error) {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return FormatWAV, nil
	case bytes.HasPrefix(head, []byte("OggS")):
		return FormatOGG, nil
	case bytes.HasPrefix(head, []byte("fLaC")):
		return FormatFLAC, nil
	case bytes.HasPrefix(head, []byte("ID3")):
		return FormatMP3, nil
	case len(head) >= 2 && head[0] == 0xff && head[1]&0xe0 == 0xe0:
		// MPEG frame sync
		return FormatMP3, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}
