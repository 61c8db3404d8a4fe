package render

import "time"

// SeekTime maps a horizontal click position on the static waveform to a
// playback position. The result is clamped to [0, duration].
func SeekTime(offsetX, canvasWidth float64, duration time.Duration) time.Duration {
	if canvasWidth <= 0 || duration <= 0 {
		return 0
	}
	pos := time.Duration(float64(duration) / canvasWidth * offsetX)
	return min(max(pos, 0), duration)
}

// ProgressOffset returns the x position of the playback indicator.
func ProgressOffset(position, duration time.Duration, width float64) float64 {
	return PlayedFraction(position, duration) * width
}

// EvenWidth rounds a canvas width down to an even pixel count so the centre
// anchor of the live chart lands on a whole pixel.
func EvenWidth(width int) int {
	if width <= 0 {
		return 0
	}
	return width / 2 * 2
}
