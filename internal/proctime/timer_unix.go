//go:build !windows

package proctime

import (
	"context"
	"os/exec"
	"time"
)

// stateTimer reads CPU times from the wait status the kernel attaches to
// the exited process. Unlike the Windows job-object path this does not
// cover grandchildren that outlive the command.
type stateTimer struct {
	real   time.Duration
	user   time.Duration
	kernel time.Duration
}

func newTimer() Timer { return &stateTimer{} }

func (t *stateTimer) Run(ctx context.Context, name string, arg ...string) error {
	cmd := exec.CommandContext(ctx, name, arg...)

	start := time.Now()
	err := cmd.Run()
	t.real = time.Since(start)

	// ProcessState is populated even when the command exits non-zero.
	if state := cmd.ProcessState; state != nil {
		t.user = state.UserTime()
		t.kernel = state.SystemTime()
	}
	return err
}

func (t *stateTimer) RealTime() time.Duration { return t.real }

func (t *stateTimer) UserTime() time.Duration { return t.user }

func (t *stateTimer) KernelTime() time.Duration { return t.kernel }

func (t *stateTimer) Reset() {
	t.real = 0
	t.user = 0
	t.kernel = 0
}
