package render

import (
	"context"

	"github.com/tejashwikalptaru/gowave/internal/domain"
)

// headroom is the share of the half-height the tallest static bar may use.
const headroom = 0.95

// silenceThreshold is the unscaled level under which a bar is drawn at the
// minimum height instead of being scaled up.
const silenceThreshold = 0.01

// ReduceBars buckets samples into one bar per horizontal unit and normalizes
// the result to the canvas height.
func ReduceBars(samples []float32, height, width, barWidth, gap int) []domain.Bar {
	bars, _ := ReduceBarsContext(context.Background(), samples, height, width, barWidth, gap)
	return bars
}

// ReduceBarsContext is ReduceBars with cancellation. The context is checked
// once per bucket; a cancelled run returns ctx.Err() and no bars.
func ReduceBarsContext(ctx context.Context, samples []float32, height, width, barWidth, gap int) ([]domain.Bar, error) {
	pitch := barWidth + gap*barWidth
	if pitch <= 0 || width <= 0 {
		return nil, domain.ErrInvalidDimensions
	}

	units := width / pitch
	if units == 0 {
		return []domain.Bar{}, nil
	}
	n := len(samples)
	step := n / units

	bars := make([]domain.Bar, units)
	var peak float64

	for i := range bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var sum float64
		var count int
		base := i * step
		for j := 0; j < step && base+j < n; j++ {
			if v := samples[base+j]; v > 0 {
				sum += float64(v)
				count++
			}
		}

		// a bucket without positive samples is silent
		var avg float64
		if count > 0 {
			avg = sum / float64(count)
		}
		bars[i].Max = avg
		if avg > peak {
			peak = avg
		}
	}

	halfHeight := float64(height) / 2
	if halfHeight*headroom <= peak*halfHeight {
		return bars, nil
	}

	if peak == 0 {
		for i := range bars {
			bars[i].Max = 1
		}
		return bars, nil
	}

	factor := halfHeight * headroom / peak
	for i := range bars {
		if bars[i].Max > silenceThreshold {
			bars[i].Max *= factor
		} else {
			bars[i].Max = 1
		}
	}
	return bars, nil
}
