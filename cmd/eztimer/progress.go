package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "▒"
)

func clearCurrentTerminalLine(w io.Writer) {
	w.Write([]byte("\r\033[K"))
}

func printProgressLine(w io.Writer, line string, progress float64, eta time.Duration) {
	// Size the bar to whatever terminal width is left after the label and
	// the ETA suffix. Off a terminal the width query fails; skip the bar.
	terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	terminalWidth -= len(line) + 2 + 12
	if err != nil || terminalWidth <= 0 {
		fmt.Fprintf(w, "%s ETA %02d:%02d:%02d", line,
			int64(eta.Hours()), int64(eta.Minutes())%60, int64(eta.Seconds())%60)
		return
	}

	progressChunks := int(progress * float64(terminalWidth))
	if progressChunks > terminalWidth {
		progressChunks = terminalWidth
	}
	progressLine := strings.Repeat(progressDoneRune, progressChunks)
	progressLine += strings.Repeat(progressPendingRune, terminalWidth-progressChunks)

	fmt.Fprintf(w, "%s %s ETA %02d:%02d:%02d", line, progressLine,
		int64(eta.Hours()), int64(eta.Minutes())%60, int64(eta.Seconds())%60)
}
