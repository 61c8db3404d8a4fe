// Package timefmt renders the clock labels shown around the waveform.
package timefmt

import (
	"fmt"
	"time"
)

type clock struct {
	hours, minutes, seconds int
	millis                  int
}

func split(d time.Duration) clock {
	if d < 0 {
		d = 0
	}
	return clock{
		hours:   int(d / time.Hour),
		minutes: int(d % time.Hour / time.Minute),
		seconds: int(d % time.Minute / time.Second),
		millis:  int(d % time.Second / time.Millisecond),
	}
}

// Duration formats the total length of a recording.
// The unit suffix tells which fields are shown:
//
//	01:02:03h   at least one hour
//	02:03m      at least one minute
//	03:45s      seconds and hundredths
func Duration(d time.Duration) string {
	c := split(d)
	switch {
	case c.hours > 0:
		return fmt.Sprintf("%02d:%02d:%02dh", c.hours, c.minutes, c.seconds)
	case c.minutes > 0:
		return fmt.Sprintf("%02d:%02dm", c.minutes, c.seconds)
	default:
		return fmt.Sprintf("%02d:%02ds", c.seconds, c.millis/10)
	}
}

// RecordedAudio formats a playback position with tenths of a second.
func RecordedAudio(d time.Duration) string {
	c := split(d)
	switch {
	case c.hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d:%d", c.hours, c.minutes, c.seconds, c.millis/100)
	case c.minutes > 0:
		return fmt.Sprintf("%02d:%02d:%d", c.minutes, c.seconds, c.millis/100)
	default:
		return fmt.Sprintf("%02d:%d", c.seconds, c.millis/100)
	}
}

// RecordingTime formats the elapsed time of a running capture.
func RecordingTime(d time.Duration) string {
	c := split(d)
	if c.hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.hours, c.minutes, c.seconds)
	}
	return fmt.Sprintf("%02d:%02d", c.minutes, c.seconds)
}
