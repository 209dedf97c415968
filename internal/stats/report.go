// Package stats contains typing metrics and result reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/typeuber/internal/model"
)

const (
	curveHeight = 8
	curveWindow = 5
)

// RenderResult prints the results summary of a finished session followed by
// its WPM curve. A totalWidth of 0 sizes the curve to the terminal.
func RenderResult(w io.Writer, res model.Result, totalWidth int) error {
	title := "Test Complete!"
	if !res.Completed {
		title = "Time's up!"
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range formatTable(nil, ResultRows(res), map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if len(res.WPMSamples) < 2 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "WPM over time", []Series{
		{Name: "WPM", Values: MovingAverage(IntsToFloats(res.WPMSamples), curveWindow)},
	}, width, curveHeight)
}

// ResultRows returns the label/value pairs shown in a results summary.
func ResultRows(res model.Result) [][]string {
	return [][]string{
		{"Words per Minute", fmt.Sprintf("%d", res.WPM)},
		{"Errors", fmt.Sprintf("%d", res.Errors)},
		{"Error Rate", fmt.Sprintf("%d%%", res.ErrorRate)},
		{"Time Taken", FormatClock(res.TimeTaken)},
		{"Words", fmt.Sprintf("%d/%d", res.WordsTyped, res.TotalWords)},
		{"Key Presses", fmt.Sprintf("%d", res.KeyPresses)},
	}
}
