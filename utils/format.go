// Package utils gathers small helpers shared by the rendering backends
// and the command line tool.
package utils

import (
	"fmt"
	"math"
	"time"
)

// Tone selects the terminal color of a console message.
type Tone uint8

const (
	Plain Tone = iota
	Done
	Failed
	Notice
)

// ANSI escape sequences, indexed by Tone.
var toneColors = [...]string{
	Plain:  "\x1b[0m",
	Done:   "\x1b[32m",
	Failed: "\x1b[31m",
	Notice: "\x1b[36m",
}

// Colorize wraps `s` in the escape sequences of `tone`,
// resetting the terminal color afterwards.
// Unknown tones return `s` unchanged.
func Colorize(s string, tone Tone) string {
	if int(tone) >= len(toneColors) {
		return s
	}
	return toneColors[tone] + s + toneColors[Plain]
}

// FormatTime formats time.Duration output to a human readable value.
// Rendering a LISON file never takes hours: longer durations
// are shown in minutes.
func FormatTime(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), remainingSeconds)
}
