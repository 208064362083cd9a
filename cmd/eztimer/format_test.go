package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeasurementScale(t *testing.T) {
	tests := []struct {
		d     time.Duration
		denom time.Duration
		unit  string
	}{
		{90 * time.Minute, time.Hour, "h"},
		{5 * time.Minute, time.Minute, "m"},
		{1500 * time.Millisecond, time.Second, "s"},
		{42 * time.Millisecond, time.Millisecond, "ms"},
		{900 * time.Nanosecond, time.Nanosecond, "ns"},
		{0, time.Nanosecond, "ns"},
	}

	for _, tt := range tests {
		denom, unit := measurementScale(tt.d)
		assert.Equal(t, float64(tt.denom), denom, "%v", tt.d)
		assert.Equal(t, tt.unit, unit, "%v", tt.d)
	}
}

func TestSampleRange(t *testing.T) {
	samples := []time.Duration{20, 5, 42, 17}
	min, max := sampleRange(samples)
	assert.Equal(t, time.Duration(5), min)
	assert.Equal(t, time.Duration(42), max)
}
