package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeuber/internal/theme"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

const spaceKeyWidth = 23

// renderKeyboard draws the QWERTY rows and a wide space key. next is
// highlighted and pressed is drawn pressed; either may be empty.
func renderKeyboard(p theme.Palette, next, pressed string) string {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Key).
		Foreground(p.KeyText)
	gap := lipgloss.NewStyle().Background(p.Background).Render(" ")

	renderKey := func(letter, label string) string {
		style := base
		if letter == next {
			style = style.Background(p.Highlight).Foreground(p.HighlightText).Bold(true)
		}
		if letter == pressed {
			style = style.Background(p.Pressed).Underline(true)
		}
		return style.Render(label)
	}

	lines := make([]string, 0, len(keyboardRows)+1)
	for _, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			keys = append(keys, renderKey(string(r), strings.ToUpper(string(r))))
		}
		lines = append(lines, strings.Join(keys, gap))
	}
	lines = append(lines, renderKey(" ", strings.Repeat(" ", spaceKeyWidth)))

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.NewStyle().
		Background(p.Background).
		Padding(1, 2).
		Render(body)
}
