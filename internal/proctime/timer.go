// Package proctime runs a child process and records how long it held the
// CPU: real (wall-clock) time plus the user and kernel CPU time accumulated
// by the process and, where the platform allows it, its children.
package proctime

import (
	"context"
	"time"
)

// Timer executes one command at a time and retains the timings of the most
// recent execution. Implementations are not safe for concurrent use.
type Timer interface {
	// Run executes the command and blocks until it exits. The recorded
	// timings are valid after Run returns, including when the command
	// exited with a failure.
	Run(ctx context.Context, name string, arg ...string) error

	// RealTime is the wall-clock duration of the last Run.
	RealTime() time.Duration

	// UserTime is the user-mode CPU time consumed by the last Run.
	UserTime() time.Duration

	// KernelTime is the kernel-mode CPU time consumed by the last Run.
	KernelTime() time.Duration

	// Reset clears the recorded timings.
	Reset()
}

// New returns the Timer implementation for the current platform.
func New() Timer { return newTimer() }
