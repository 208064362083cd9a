package eztimer

import (
	"math"
	"time"
)

// summarize reduces a unit's retained samples to their arithmetic mean and
// sample standard deviation (divisor k-1). No samples yields zeros, and a
// single sample yields a zero deviation rather than dividing by zero.
func summarize(samples []time.Duration) (mean, stddev time.Duration) {
	k := len(samples)
	if k == 0 {
		return 0, 0
	}

	var sum time.Duration
	for _, s := range samples {
		sum += s
	}
	mean = sum / time.Duration(k)
	if k < 2 {
		return mean, 0
	}

	var numerator float64
	for _, s := range samples {
		delta := float64(s - mean)
		numerator += delta * delta
	}
	return mean, time.Duration(math.Sqrt(numerator / float64(k-1)))
}
