package eztimer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sleepUnits returns three units with deterministic nominal durations of
// 10ms, 20ms and 30ms, each returning its own index.
func sleepUnits() []func() int {
	durations := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	units := make([]func() int, len(durations))
	for i, d := range durations {
		i, d := i, d
		units[i] = func() int {
			time.Sleep(d)
			return i
		}
	}
	return units
}

func checkIndex(result, unit int) error {
	if result != unit {
		return fmt.Errorf("got %d, want %d", result, unit)
	}
	return nil
}

func TestRun_Basic(t *testing.T) {
	units := sleepUnits()
	opts := DefaultOptions()
	opts.Iterations = 5

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, len(units))

	nominal := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	for i, r := range results {
		assert.Len(t, r.Samples, opts.Iterations, "unit %d", i)
		// Sleeps only ever overshoot.
		assert.GreaterOrEqual(t, r.Mean, nominal[i], "unit %d", i)
		assert.Greater(t, r.Stddev, time.Duration(0), "unit %d", i)
	}
}

func TestRun_BurnInDiscarded(t *testing.T) {
	calls := make([]int, 2)
	units := []func() int{
		func() int { calls[0]++; return 0 },
		func() int { calls[1]++; return 1 },
	}
	opts := Options{Iterations: 3, BurnIn: 2, Seed: 99}

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, r := range results {
		// BurnIn extra calls were made but never retained.
		assert.Equal(t, opts.Iterations+opts.BurnIn, calls[i])
		assert.Len(t, r.Samples, opts.Iterations, "unit %d", i)
	}
}

func TestRun_MaxTimePerUnit(t *testing.T) {
	units := sleepUnits()
	opts := DefaultOptions()
	opts.MaxTimePerUnit = Limit(45 * time.Millisecond)

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, len(units))

	// With exact sleeps the counts would be exactly 5, 3 and 2; loaded
	// runners oversleep, so only upper bounds hold reliably.
	assert.LessOrEqual(t, len(results[0].Samples), 5)
	assert.LessOrEqual(t, len(results[1].Samples), 3)
	assert.LessOrEqual(t, len(results[2].Samples), 2)

	for i, r := range results {
		assert.GreaterOrEqual(t, len(r.Samples), 1, "unit %d", i)
	}
}

func TestRun_MaxTimeTotal(t *testing.T) {
	units := sleepUnits()
	opts := DefaultOptions()
	opts.MaxTimeTotal = Limit(40 * time.Millisecond)

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, len(units))

	total := 0
	for i, r := range results {
		assert.LessOrEqual(t, len(r.Samples), 1, "unit %d", i)
		total += len(r.Samples)
	}
	// The first timed call always starts with nothing spent.
	assert.GreaterOrEqual(t, total, 1)
}

func TestRun_ValidationFailureAborts(t *testing.T) {
	var calls int
	units := []func() int{
		func() int { calls++; return 0 },
		func() int { calls++; return 0 },
	}
	failure := errors.New("whoops, that shouldn't have happened")

	checked := 0
	check := func(result, unit int) error {
		checked++
		if checked == 2 {
			return failure
		}
		return nil
	}

	opts := Options{Iterations: 10, BurnIn: 1, Seed: 7}
	results, err := Run(units, check, opts)
	require.Error(t, err)
	assert.Nil(t, results)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, failure)

	// Two burn-in calls plus the two calls that reached the check.
	assert.Equal(t, 4, calls)
	assert.Equal(t, 2, checked)
}

func TestRun_SameSeedSameOrder(t *testing.T) {
	record := func(log *[]int) []func() int {
		units := make([]func() int, 4)
		for i := range units {
			i := i
			units[i] = func() int { *log = append(*log, i); return i }
		}
		return units
	}
	opts := Options{Iterations: 6, BurnIn: 2, Seed: 42}

	var first, second []int
	_, err := Run(record(&first), checkIndex, opts)
	require.NoError(t, err)
	_, err = Run(record(&second), checkIndex, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	opts.Seed = 43
	var other []int
	_, err = Run(record(&other), checkIndex, opts)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRun_NoUnits(t *testing.T) {
	results, err := Run(nil, checkIndex, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_ZeroIterations(t *testing.T) {
	calls := 0
	units := []func() int{func() int { calls++; return 0 }}
	opts := Options{Iterations: 0, BurnIn: 2, Seed: 1}

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Samples)
	assert.Zero(t, results[0].Mean)
	assert.Zero(t, results[0].Stddev)
	assert.Equal(t, 2, calls)
}

func TestRun_ZeroBudgetStillRunsBurnIn(t *testing.T) {
	calls := 0
	units := []func() int{func() int { calls++; return 0 }}
	opts := Options{Iterations: 5, BurnIn: 1, Seed: 1, MaxTimeTotal: Limit(0)}

	results, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Samples)
	assert.Zero(t, results[0].Mean)
	assert.Zero(t, results[0].Stddev)
	// Budgets never apply to burn-in passes.
	assert.Equal(t, 1, calls)
}

func TestRun_ProgressReportsEveryTimedPosition(t *testing.T) {
	units := []func() int{
		func() int { return 0 },
		func() int { return 1 },
	}
	var dones []int
	total := -1
	opts := Options{
		Iterations: 4,
		BurnIn:     1,
		Seed:       5,
		Progress: func(done, n int) {
			dones = append(dones, done)
			total = n
		},
	}

	_, err := Run(units, checkIndex, opts)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	require.Len(t, dones, 8)
	for i, done := range dones {
		assert.Equal(t, i+1, done)
	}
}
