package stats

import (
	"testing"
	"time"
)

func TestWPM(t *testing.T) {
	start := time.Unix(1000, 0)
	tests := []struct {
		name  string
		words int
		end   time.Time
		want  int
	}{
		{name: "one minute", words: 30, end: start.Add(time.Minute), want: 30},
		{name: "half minute", words: 10, end: start.Add(30 * time.Second), want: 20},
		{name: "rounds half up", words: 1, end: start.Add(40 * time.Second), want: 2},
		{name: "rounds down", words: 1, end: start.Add(45 * time.Second), want: 1},
		{name: "no words", words: 0, end: start.Add(time.Minute), want: 0},
		{name: "zero duration", words: 3, end: start, want: 0},
		{name: "negative duration", words: 3, end: start.Add(-time.Second), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WPM(tt.words, start, tt.end); got != tt.want {
				t.Fatalf("expected %d wpm, got %d", tt.want, got)
			}
		})
	}
}

func TestWordsCompletedCountsWordInProgress(t *testing.T) {
	if got := WordsCompleted(0, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := WordsCompleted(0, 1); got != 1 {
		t.Fatalf("expected in-progress word to count, got %d", got)
	}
	if got := WordsCompleted(4, 0); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := WordsCompleted(4, 2); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestErrorRate(t *testing.T) {
	if got := ErrorRate(0, 0); got != 0 {
		t.Fatalf("expected 0 for no presses, got %d", got)
	}
	if got := ErrorRate(1, 4); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := ErrorRate(1, 3); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	if got := ErrorRate(2, 3); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestErrorRateBounded(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for errs := 0; errs <= total; errs++ {
			rate := ErrorRate(errs, total)
			if rate < 0 || rate > 100 {
				t.Fatalf("error rate %d out of range for %d/%d", rate, errs, total)
			}
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		120: "2:00",
		119: "1:59",
		65:  "1:05",
		9:   "0:09",
		0:   "0:00",
		-4:  "0:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("expected min/max sparkline, got %q", got)
	}
}
