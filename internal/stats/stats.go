// Package stats contains typing metrics and result reporting.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// WPM computes words per minute for the words completed between start and
// end. It returns 0 when no time has passed.
func WPM(wordsCompleted int, start, end time.Time) int {
	if wordsCompleted <= 0 || !end.After(start) {
		return 0
	}
	minutes := end.Sub(start).Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(wordsCompleted) / minutes))
}

// WordsCompleted counts the words that contribute to WPM for a cursor
// position. A word in progress counts as completed.
func WordsCompleted(wordIndex, letterIndex int) int {
	if letterIndex > 0 {
		return wordIndex + 1
	}
	return wordIndex
}

// ErrorRate returns errors as a rounded percentage of all key presses.
func ErrorRate(errors, totalKeyPresses int) int {
	if totalKeyPresses <= 0 {
		return 0
	}
	return int(math.Round(float64(errors) / float64(totalKeyPresses) * 100))
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// IntsToFloats converts integer samples for plotting.
func IntsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
