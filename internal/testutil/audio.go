package testutil

import "math"

// Constant returns n samples of value v.
func Constant(n int, v float32) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = v
	}
	return samples
}

// Sine returns n samples of a tone at freq Hz with the given peak amplitude.
func Sine(n, rate int, freq float64, amplitude float32) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = amplitude * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}
