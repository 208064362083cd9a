package main

import "time"

var denominators = []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}
var units = []string{"h", "m", "s", "ms", "µs", "ns"}

// measurementScale picks the largest unit that keeps the value above one,
// so 1520000 ns reports as "1.52 ms".
func measurementScale(d time.Duration) (float64, string) {
	for i, denominator := range denominators {
		if d/denominator > 0 {
			return float64(denominator), units[i]
		}
	}
	return float64(time.Nanosecond), "ns"
}
