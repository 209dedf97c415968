package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/stats"
	"github.com/verte-zerg/typeuber/internal/theme"
)

const (
	upcomingWords   = 3
	curveHeight     = 6
	curveWindow     = 5
	maxContentWidth = 80
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Width(14).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	typedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	currentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	typingBoxStyle = lipgloss.NewStyle().
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#374151"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.result != nil {
		body = m.renderResults(*m.result)
	} else {
		body = m.renderPractice()
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyView := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return bodyView + "\n" + footerLine
}

func (m *Model) renderPractice() string {
	snap := m.trainer.Snapshot()
	palette := m.theme.Palette()
	next := ""
	if snap.Phase == session.Running {
		next = snap.NextLetter
	}
	sections := []string{
		renderStatsPanel(snap, m.trainer.Samples()),
		renderStatus(snap.Phase),
		renderTypingArea(snap, palette),
		renderKeyboard(palette, next, snap.LastKey),
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func renderStatsPanel(snap session.Snapshot, samples []int) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("WPM", fmt.Sprintf("%d", snap.WPM)),
		metricCard("Errors", fmt.Sprintf("%d", snap.Errors)),
		metricCard("Error Rate", fmt.Sprintf("%d%%", snap.ErrorRate)),
		metricCard("Time Left", stats.FormatClock(snap.TimeLeft)),
	)
	if len(samples) < 2 {
		return cards
	}
	spark := stats.Sparkline(stats.IntsToFloats(samples))
	return lipgloss.JoinVertical(lipgloss.Center, cards, mutedStyle.Render("wpm "+spark))
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderStatus(phase session.Phase) string {
	switch phase {
	case session.NotStarted:
		return mutedStyle.Render("Press enter to start")
	case session.Paused:
		return mutedStyle.Render("Paused")
	default:
		return ""
	}
}

// renderTypingArea shows the current word and the two after it. Letters
// already typed are dimmed and the expected letter is marked.
func renderTypingArea(snap session.Snapshot, p theme.Palette) string {
	cursorStyle := lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(lipgloss.Color("#FFFFFF")).
		Underline(true)
	words := snap.Upcoming(upcomingWords)
	parts := make([]string, 0, len(words))
	for i, word := range words {
		if i > 0 {
			parts = append(parts, pendingStyle.Render(word))
			continue
		}
		var b strings.Builder
		for li, r := range word {
			switch {
			case li < snap.LetterIndex:
				b.WriteString(typedStyle.Render(string(r)))
			case li == snap.LetterIndex:
				b.WriteString(cursorStyle.Render(string(r)))
			default:
				b.WriteString(currentStyle.Render(string(r)))
			}
		}
		parts = append(parts, b.String())
	}
	return typingBoxStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderResults(res model.Result) string {
	title := "Test Complete!"
	if !res.Completed {
		title = "Time's up!"
	}
	sections := []string{titleStyle.Render(title), "", renderResultTable(res)}
	if curve := renderCurve(res.WPMSamples, m.contentWidth()); curve != "" {
		sections = append(sections, "", curve)
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func renderResultTable(res model.Result) string {
	rows := make([]table.Row, 0, 6)
	for _, r := range stats.ResultRows(res) {
		rows = append(rows, table.Row(r))
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Stat", Width: 18},
			{Title: "Value", Width: 8},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	t.SetStyles(resultTableStyles())
	t.Blur()
	return t.View()
}

func resultTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func renderCurve(samples []int, width int) string {
	if len(samples) < 2 {
		return ""
	}
	var buf bytes.Buffer
	series := []stats.Series{{Name: "WPM", Values: stats.MovingAverage(stats.IntsToFloats(samples), curveWindow)}}
	if err := stats.PlotSeries(&buf, "WPM over time", series, stats.PlotWidthFor(width), curveHeight); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) contentWidth() int {
	if m.width <= 0 || m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}
