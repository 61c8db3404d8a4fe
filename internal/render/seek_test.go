package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeekTime(t *testing.T) {
	tests := []struct {
		name     string
		offsetX  float64
		width    float64
		duration time.Duration
		want     time.Duration
	}{
		{"left edge", 0, 600, 30 * time.Second, 0},
		{"middle", 300, 600, 30 * time.Second, 15 * time.Second},
		{"right edge", 600, 600, 30 * time.Second, 30 * time.Second},
		{"past right edge", 700, 600, 30 * time.Second, 30 * time.Second},
		{"left of canvas", -5, 600, 30 * time.Second, 0},
		{"no width", 10, 0, 30 * time.Second, 0},
		{"no duration", 10, 600, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeekTime(tt.offsetX, tt.width, tt.duration))
		})
	}
}

func TestProgressOffset(t *testing.T) {
	assert.InDelta(t, 150.0, ProgressOffset(5*time.Second, 20*time.Second, 600), 1e-9)
	assert.Equal(t, 0.0, ProgressOffset(5*time.Second, 0, 600))
	assert.Equal(t, 600.0, ProgressOffset(25*time.Second, 20*time.Second, 600))
}

func TestEvenWidth(t *testing.T) {
	assert.Equal(t, 600, EvenWidth(600))
	assert.Equal(t, 600, EvenWidth(601))
	assert.Equal(t, 0, EvenWidth(1))
	assert.Equal(t, 0, EvenWidth(-4))
}
