// Package eztimer times competing implementations of the same computation.
//
// Given a list of callables, Run invokes each of them repeatedly in a
// randomized interleaved order, measures the wall-clock duration of every
// call with a monotonic clock, and reports the per-callable mean and sample
// standard deviation. Interleaving the callables per iteration means no
// callable systematically benefits from always running before or after
// another; a configurable number of burn-in passes absorbs cold-start
// effects before timing begins.
//
// The run is strictly sequential. Timing concurrent calls would measure
// contention between the callables rather than the callables themselves.
package eztimer

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Options configures a single call to Run.
type Options struct {
	// Iterations is the target number of timed passes per unit. Burn-in
	// passes are not counted here. Values below zero behave as zero.
	Iterations int

	// BurnIn is the number of untimed warm-up passes per unit performed
	// before timing begins. Burn-in durations never appear in the results
	// and never count toward budgets.
	BurnIn int

	// Seed initializes the random engine that shuffles the execution order.
	// The same seed yields the same order across runs; it has no effect on
	// the measured durations.
	Seed uint64

	// MaxTimePerUnit caps the cumulative timed duration attributed to a
	// single unit. Once a unit reaches the cap, its remaining scheduled
	// calls are skipped. Nil means unbounded.
	MaxTimePerUnit *time.Duration

	// MaxTimeTotal caps the cumulative timed duration summed across all
	// units. Once reached, every remaining scheduled call is skipped.
	// Nil means unbounded.
	MaxTimeTotal *time.Duration

	// Progress, if non-nil, is called after every post-burn-in scheduled
	// position, whether the call was executed or skipped, with the number
	// of positions handled so far and the total number scheduled. It runs
	// outside the measured window.
	Progress func(done, total int)
}

// DefaultOptions returns the options used when the caller has no opinion:
// 10 timed iterations, 1 burn-in pass, a fixed seed, no budgets.
func DefaultOptions() Options {
	return Options{Iterations: 10, BurnIn: 1, Seed: 123456}
}

// Limit converts a duration literal into an optional budget for
// Options.MaxTimePerUnit or Options.MaxTimeTotal.
func Limit(d time.Duration) *time.Duration { return &d }

// Timings holds the measurements for one unit after a completed run.
type Timings struct {
	// Samples are the retained per-call durations, in execution order.
	// Burn-in durations are removed; calls skipped by budgets leave no
	// sample. Length is at most Options.Iterations.
	Samples []time.Duration

	// Mean is the arithmetic mean of Samples, or 0 when no sample was
	// retained.
	Mean time.Duration

	// Stddev is the sample (Bessel-corrected) standard deviation of
	// Samples. With fewer than two samples it is reported as 0.
	Stddev time.Duration
}

// ValidationError reports that the check callback rejected a unit's result.
// It aborts the run that produced it; no partial results survive.
type ValidationError struct {
	Unit int
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("eztimer: unit %d failed validation: %v", e.Unit, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Run times every unit over opts.Iterations interleaved passes and returns
// one Timings per unit, index-aligned with units.
//
// Each unit should return a value derived from the computation of interest
// so the work cannot be optimized away. check is called synchronously with
// the result and unit index of every timed call; its runtime is excluded
// from the measurement. A non-nil error from check aborts the run
// immediately and Run returns a *ValidationError with nil results.
//
// Degenerate configurations (no units, zero iterations, budgets exhausted
// from the start) are not errors: they produce empty or zero-sample Timings.
func Run[R any](units []func() R, check func(result R, unit int) error, opts Options) ([]Timings, error) {
	iterations := max(opts.Iterations, 0)
	burnIn := max(opts.BurnIn, 0)
	rounds := iterations + burnIn
	n := len(units)

	// The engine belongs to this run alone so repeated runs in one process
	// stay independent and reproducible.
	rng := rand.New(rand.NewPCG(opts.Seed, 0))
	order := executionOrder(rng, n, rounds)

	recorded := make([][]time.Duration, n)
	for i := range recorded {
		recorded[i] = make([]time.Duration, 0, rounds)
	}
	budget := newBudgetTracker(n, opts.MaxTimePerUnit, opts.MaxTimeTotal)

	timedTotal := iterations * n
	timedDone := 0
	step := func() {
		timedDone++
		if opts.Progress != nil {
			opts.Progress(timedDone, timedTotal)
		}
	}

	for pos, u := range order {
		timed := pos/n >= burnIn
		if timed && budget.skip(u) {
			step()
			continue
		}

		start := time.Now()
		res := units[u]()
		elapsed := time.Since(start)

		// Burn-in durations are recorded too, then trimmed below; keeping
		// them in the slice forces the runtime to make the call.
		recorded[u] = append(recorded[u], elapsed)
		if !timed {
			continue
		}

		if err := check(res, u); err != nil {
			return nil, &ValidationError{Unit: u, Err: err}
		}
		budget.charge(u, elapsed)
		step()
	}

	results := make([]Timings, n)
	for i, samples := range recorded {
		samples = samples[min(burnIn, len(samples)):]
		mean, stddev := summarize(samples)
		results[i] = Timings{Samples: samples, Mean: mean, Stddev: stddev}
	}
	return results, nil
}
