package eztimer

import "time"

// budgetTracker decides whether the next scheduled timed call may start.
// It owns the "spent so far" accounting and nothing else; the final mean is
// computed separately from the retained samples at aggregation time.
type budgetTracker struct {
	perUnit *time.Duration
	total   *time.Duration

	spent      []time.Duration
	spentTotal time.Duration
}

func newBudgetTracker(n int, perUnit, total *time.Duration) *budgetTracker {
	return &budgetTracker{
		perUnit: perUnit,
		total:   total,
		spent:   make([]time.Duration, n),
	}
}

// skip reports whether unit u's next timed call must not start. Budgets are
// only consulted between calls; an in-flight call always runs to completion.
func (b *budgetTracker) skip(u int) bool {
	if b.perUnit != nil && b.spent[u] >= *b.perUnit {
		return true
	}
	if b.total != nil && b.spentTotal >= *b.total {
		return true
	}
	return false
}

// charge attributes a completed timed call's duration to unit u and to the
// run as a whole.
func (b *budgetTracker) charge(u int, d time.Duration) {
	b.spent[u] += d
	b.spentTotal += d
}
