package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// benchSettings is the fully merged configuration of one invocation:
// defaults, then config file values, then explicitly set flags.
type benchSettings struct {
	runs       int
	warmup     int
	seed       uint64
	perCommand time.Duration // 0 means unlimited
	total      time.Duration // 0 means unlimited
	shell      string
	noShell    bool
	setup      string
	commands   []string
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	return "/bin/sh"
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		noColor    bool
		verbose    bool
	)
	settings := benchSettings{}

	cmd := &cobra.Command{
		Use:   "eztimer [flags] [command ...]",
		Short: "Benchmark commands against each other in randomized interleaved order",
		Long: `Benchmark several commands against each other.

All commands are executed in an interleaved, per-round randomized order so
that no command consistently benefits from running after another. Warm-up
rounds are executed first and discarded from the statistics. Per-command and
total time budgets can cap how long the benchmark runs.

Examples:
  # Compare two sort invocations over 20 rounds
  eztimer --runs 20 'sort words.txt' 'sort --parallel=1 words.txt'

  # Stop benchmarking a command once it has consumed 30s of measured time
  eztimer --max-time-per-command 30s 'du -s /usr' 'du -sh /usr'

  # Read commands and options from a file
  eztimer --config bench.yaml
`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color.NoColor = noColor

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel(verbose),
			}))

			if configPath != "" {
				fileCfg, err := loadConfig(configPath)
				if err != nil {
					fmt.Fprintln(os.Stderr, "An error occurred reading the config file:", err)
					return err
				}
				fileCfg.apply(cmd.Flags(), &settings)
			}
			settings.commands = append(settings.commands, args...)

			if len(settings.commands) == 0 {
				err := fmt.Errorf("no commands to benchmark")
				fmt.Fprintln(os.Stderr, "Error:", err)
				return err
			}

			if err := runBenchmarks(context.Background(), logger, settings); err != nil {
				fmt.Fprintln(os.Stderr, "An error occurred during benchmark:", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&settings.runs, "runs", 10, "Number of timed rounds per command")
	flags.IntVar(&settings.warmup, "warmup", 1, "Number of warm-up rounds per command, discarded from the statistics")
	flags.Uint64Var(&settings.seed, "seed", 123456, "Seed for the randomized execution order")
	flags.DurationVar(&settings.perCommand, "max-time-per-command", 0, "Cap on measured time per command (0 = unlimited)")
	flags.DurationVar(&settings.total, "max-time-total", 0, "Cap on measured time across all commands (0 = unlimited)")
	flags.StringVarP(&settings.shell, "shell", "S", defaultShell(), "The intermediate shell to run commands in")
	flags.BoolVarP(&settings.noShell, "no-shell", "N", false, "Run commands without an intermediate shell")
	flags.StringVar(&settings.setup, "setup", "", "Command to run once before all benchmarks")
	flags.StringVar(&configPath, "config", "", "Path to a YAML benchmark definition")
	flags.BoolVar(&noColor, "no-color", false, "Disable coloured output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log each run to stderr")

	return cmd
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
