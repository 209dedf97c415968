package theme

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{in: "", want: Default},
		{in: "default", want: Default},
		{in: "Purple", want: Purple},
		{in: " blue ", want: Blue},
		{in: "green", want: Green},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %s, got %s", tt.in, tt.want, got)
		}
	}
	if _, err := Parse("orange"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestNextCyclesThroughAll(t *testing.T) {
	th := Default
	seen := map[Theme]bool{}
	for range All() {
		seen[th] = true
		th = th.Next()
	}
	if th != Default {
		t.Fatalf("expected cycle back to default, got %s", th)
	}
	if len(seen) != len(All()) {
		t.Fatalf("expected %d distinct themes, got %d", len(All()), len(seen))
	}
	if Theme(42).Next() != Default {
		t.Fatalf("expected invalid theme to reset to default")
	}
}

func TestPalettesAreDistinct(t *testing.T) {
	seen := map[string]Theme{}
	for _, th := range All() {
		p := th.Palette()
		if p.Background == "" || p.Key == "" || p.Highlight == "" || p.Pressed == "" {
			t.Fatalf("%s: incomplete palette %+v", th, p)
		}
		if prev, ok := seen[string(p.Background)]; ok {
			t.Fatalf("%s shares its background with %s", th, prev)
		}
		seen[string(p.Background)] = th
	}
}

func TestThemeJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Theme{"theme": Blue})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"theme":"blue"}` {
		t.Fatalf("unexpected json %s", data)
	}
	var out map[string]Theme
	if err := json.Unmarshal([]byte(`{"theme":"green"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["theme"] != Green {
		t.Fatalf("expected green, got %s", out["theme"])
	}
}
