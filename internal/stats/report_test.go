package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typeuber/internal/model"
)

func TestRenderResult(t *testing.T) {
	res := model.Result{
		WPM:        38,
		Errors:     3,
		ErrorRate:  6,
		KeyPresses: 50,
		WordsTyped: 16,
		TotalWords: 50,
		TimeTaken:  75,
		Completed:  false,
		WPMSamples: []int{0, 12, 20, 30, 36, 38},
	}
	var buf bytes.Buffer
	if err := RenderResult(&buf, res, 60); err != nil {
		t.Fatalf("render result: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Time's up!",
		"Words per Minute     38",
		"Error Rate           6%",
		"Time Taken         1:15",
		"Words             16/50",
		"WPM over time",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderResultCompletedWithoutCurve(t *testing.T) {
	res := model.Result{WPM: 90, TimeTaken: 20, Completed: true, WPMSamples: []int{90}}
	var buf bytes.Buffer
	if err := RenderResult(&buf, res, 60); err != nil {
		t.Fatalf("render result: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Test Complete!") {
		t.Fatalf("expected completion title, got %q", out)
	}
	if strings.Contains(out, "WPM over time") {
		t.Fatalf("expected no curve for a single sample")
	}
}
