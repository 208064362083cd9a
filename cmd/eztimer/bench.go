package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/tatami-inc/eztimer"
	"github.com/tatami-inc/eztimer/internal/proctime"
)

// runOutcome is what one invocation of a benchmarked command hands back to
// the validation callback.
type runOutcome struct {
	command string
	user    time.Duration
	kernel  time.Duration
	err     error
}

// commandResult carries everything the report needs for one command.
type commandResult struct {
	command    string
	timings    eztimer.Timings
	meanUser   time.Duration
	meanKernel time.Duration
}

func runSetup(ctx context.Context, setup string) error {
	argv := splitCommand(setup)
	if len(argv) == 0 {
		return errors.New("empty setup command")
	}
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Run()
}

// commandArgv resolves a command string into the argv actually executed,
// wrapping it in the configured shell unless shell execution is disabled.
func commandArgv(s benchSettings, command string) ([]string, error) {
	if !s.noShell && s.shell != "" {
		flag := "-c"
		if runtime.GOOS == "windows" {
			flag = "/C"
		}
		return []string{s.shell, flag, command}, nil
	}
	argv := splitCommand(command)
	if len(argv) == 0 {
		return nil, errors.New("empty command string")
	}
	return argv, nil
}

func runBenchmarks(ctx context.Context, logger *slog.Logger, s benchSettings) error {
	if s.setup != "" {
		logger.Debug("running setup command", "command", s.setup)
		if err := runSetup(ctx, s.setup); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	n := len(s.commands)
	units := make([]func() runOutcome, 0, n)
	for _, command := range s.commands {
		argv, err := commandArgv(s, command)
		if err != nil {
			return fmt.Errorf("%w: %q", err, command)
		}
		command := command
		timer := proctime.New()
		units = append(units, func() runOutcome {
			timer.Reset()
			err := timer.Run(ctx, argv[0], argv[1:]...)
			return runOutcome{
				command: command,
				user:    timer.UserTime(),
				kernel:  timer.KernelTime(),
				err:     err,
			}
		})
	}

	cpuUser := make([]time.Duration, n)
	cpuKernel := make([]time.Duration, n)
	check := func(out runOutcome, unit int) error {
		if out.err != nil {
			return fmt.Errorf("command %q: %w", out.command, out.err)
		}
		logger.Debug("timed run complete",
			"command", out.command, "user", out.user, "kernel", out.kernel)
		cpuUser[unit] += out.user
		cpuKernel[unit] += out.kernel
		return nil
	}

	opts := eztimer.Options{
		Iterations: s.runs,
		BurnIn:     s.warmup,
		Seed:       s.seed,
	}
	if s.perCommand > 0 {
		opts.MaxTimePerUnit = eztimer.Limit(s.perCommand)
	}
	if s.total > 0 {
		opts.MaxTimeTotal = eztimer.Limit(s.total)
	}

	started := time.Now()
	opts.Progress = func(done, total int) {
		clearCurrentTerminalLine(color.Output)
		elapsed := time.Since(started)
		eta := time.Duration(float64(elapsed) / float64(done) * float64(total-done))
		printProgressLine(color.Output, "Benchmarking", float64(done)/float64(total), eta)
	}

	logger.Info("starting benchmark",
		"commands", n, "runs", s.runs, "warmup", s.warmup, "seed", s.seed)

	timings, err := eztimer.Run(units, check, opts)
	clearCurrentTerminalLine(color.Output)
	if err != nil {
		return err
	}

	results := make([]commandResult, n)
	for i, t := range timings {
		r := commandResult{command: s.commands[i], timings: t}
		if k := len(t.Samples); k > 0 {
			r.meanUser = cpuUser[i] / time.Duration(k)
			r.meanKernel = cpuKernel[i] / time.Duration(k)
		}
		results[i] = r
		printResult(color.Output, i, r)
	}
	printSummary(color.Output, results)
	return nil
}
