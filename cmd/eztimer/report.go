package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/fatih/color"
)

func sampleRange(samples []time.Duration) (min, max time.Duration) {
	min, max = samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}

func printResult(w io.Writer, index int, r commandResult) {
	fmt.Fprintf(w, "Benchmark #%d: %s\n", index+1, r.command)

	if len(r.timings.Samples) == 0 {
		fmt.Fprintf(w, "  %s\n\n", color.HiBlackString("no completed runs (time budget exhausted)"))
		return
	}

	denominator, unit := measurementScale(r.timings.Mean)
	userDenominator, userUnit := measurementScale(r.meanUser)
	kernelDenominator, kernelUnit := measurementScale(r.meanKernel)
	fmt.Fprintf(w, "  Time (%s ± %s):\t%s ± %s\t%s\n",
		color.GreenString("mean"),
		color.GreenString("σ"),
		color.GreenString("%.2f %s", float64(r.timings.Mean)/denominator, unit),
		color.GreenString("%.2f %s", float64(r.timings.Stddev)/denominator, unit),
		fmt.Sprintf("[User: %s, System: %s]",
			color.CyanString("%.2f %s", float64(r.meanUser)/userDenominator, userUnit),
			color.CyanString("%.2f %s", float64(r.meanKernel)/kernelDenominator, kernelUnit)))

	minElapsed, maxElapsed := sampleRange(r.timings.Samples)
	fmt.Fprintf(w, "  Range (%s … %s):\t%s … %s\t%s\n",
		color.CyanString("min"),
		color.RedString("max"),
		color.CyanString("%.2f %s", float64(minElapsed)/denominator, unit),
		color.RedString("%.2f %s", float64(maxElapsed)/denominator, unit),
		color.HiBlackString("%d runs", len(r.timings.Samples)))
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, results []commandResult) {
	ranked := make([]commandResult, 0, len(results))
	for _, r := range results {
		if len(r.timings.Samples) > 0 {
			ranked = append(ranked, r)
		}
	}
	if len(ranked) < 2 {
		return
	}

	fmt.Fprintln(w, "Summary")

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].timings.Mean < ranked[j].timings.Mean })
	fastest := ranked[0]
	fmt.Fprintf(w, "  '%s' ran\n", color.CyanString(fastest.command))
	for _, r := range ranked[1:] {
		mean := float64(r.timings.Mean)
		stddev := float64(r.timings.Stddev)
		fastestMean := float64(fastest.timings.Mean)
		fastestStddev := float64(fastest.timings.Stddev)

		meanMultiplier := mean / fastestMean
		posStdevMultiplier := (mean+stddev)/(fastestMean+fastestStddev) - meanMultiplier
		negStdevMultiplier := meanMultiplier - (mean-stddev)/(fastestMean-fastestStddev)
		fmt.Fprintf(w, "    %s ± %s times faster than '%s'\n",
			color.GreenString("%.2f", meanMultiplier),
			color.GreenString("%.2f", math.Abs(posStdevMultiplier)+math.Abs(negStdevMultiplier)),
			color.RedString(r.command))
	}
}
