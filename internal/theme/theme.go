// Package theme defines the keyboard color themes. Themes only affect
// presentation.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects a keyboard palette.
type Theme int

const (
	Default Theme = iota
	Purple
	Blue
	Green
)

var names = [...]string{"default", "purple", "blue", "green"}

// Palette holds the colors of one theme.
type Palette struct {
	Background    lipgloss.Color `json:"background"`
	Key           lipgloss.Color `json:"key"`
	KeyText       lipgloss.Color `json:"keyText"`
	Highlight     lipgloss.Color `json:"highlight"`
	HighlightText lipgloss.Color `json:"highlightText"`
	Pressed       lipgloss.Color `json:"pressed"`
	Accent        lipgloss.Color `json:"accent"`
}

var palettes = [...]Palette{
	Default: {
		Background:    "#1F2937",
		Key:           "#F9FAFB",
		KeyText:       "#111827",
		Highlight:     "#111827",
		HighlightText: "#FFFFFF",
		Pressed:       "#9CA3AF",
		Accent:        "#9333EA",
	},
	Purple: {
		Background:    "#581C87",
		Key:           "#F3E8FF",
		KeyText:       "#3B0764",
		Highlight:     "#9333EA",
		HighlightText: "#FFFFFF",
		Pressed:       "#C084FC",
		Accent:        "#A855F7",
	},
	Blue: {
		Background:    "#1E3A8A",
		Key:           "#DBEAFE",
		KeyText:       "#172554",
		Highlight:     "#2563EB",
		HighlightText: "#FFFFFF",
		Pressed:       "#60A5FA",
		Accent:        "#3B82F6",
	},
	Green: {
		Background:    "#064E3B",
		Key:           "#D1FAE5",
		KeyText:       "#022C22",
		Highlight:     "#059669",
		HighlightText: "#FFFFFF",
		Pressed:       "#34D399",
		Accent:        "#10B981",
	},
}

// All lists every theme in cycling order.
func All() []Theme {
	return []Theme{Default, Purple, Blue, Green}
}

// Parse resolves a theme name. The empty string selects Default.
func Parse(name string) (Theme, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return Default, nil
	}
	for i, n := range names {
		if n == name {
			return Theme(i), nil
		}
	}
	return Default, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names[:], ", "))
}

func (t Theme) valid() bool {
	return t >= Default && int(t) < len(names)
}

func (t Theme) String() string {
	if !t.valid() {
		return fmt.Sprintf("Theme(%d)", int(t))
	}
	return names[t]
}

// Next returns the following theme, wrapping around.
func (t Theme) Next() Theme {
	if !t.valid() {
		return Default
	}
	return Theme((int(t) + 1) % len(names))
}

// Palette returns the colors of t. Unknown themes fall back to Default.
func (t Theme) Palette() Palette {
	if !t.valid() {
		return palettes[Default]
	}
	return palettes[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid theme %d", int(t))
	}
	return []byte(names[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
