// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/theme"
	"github.com/verte-zerg/typeuber/internal/trainer"
)

type tickMsg struct {
	token trainer.Token
}

type clearMsg struct {
	feedback trainer.Feedback
}

// Model implements the Bubble Tea typing UI. Bubble Tea's update loop
// serializes every call into the trainer.
type Model struct {
	trainer *trainer.Trainer
	logger  *zap.Logger
	theme   theme.Theme

	keys keyMap
	help help.Model

	width  int
	height int

	// result is shown while the session is over; last outlives restarts.
	result *model.Result
	last   *model.Result

	tickAfter  func(trainer.Token) tea.Cmd
	clearAfter func(trainer.Feedback) tea.Cmd
}

// NewModel constructs a typing TUI model around tr.
func NewModel(tr *trainer.Trainer, th theme.Theme, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		trainer:    tr,
		logger:     logger,
		theme:      th,
		keys:       newKeyMap(),
		help:       help.New(),
		tickAfter:  tickAfter,
		clearAfter: clearAfter,
	}
	m.keys.syncPhase(tr.Phase())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Result returns the summary of the last finished session, if any.
func (m *Model) Result() (model.Result, bool) {
	if m.last == nil {
		return model.Result{}, false
	}
	return *m.last, true
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		next, err := m.trainer.Tick(msg.token)
		if err == nil && !next.IsZero() {
			cmd = m.tickAfter(next)
		}
	case clearMsg:
		m.trainer.ClearFeedback(msg.feedback)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	m.afterUpdate()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Next()
		m.logger.Debug("theme changed", zap.Stringer("theme", m.theme))
		return nil
	case key.Matches(msg, m.keys.Start):
		if m.trainer.Phase() == session.Over {
			m.restart()
			return nil
		}
		tok, err := m.trainer.Start()
		if err != nil {
			return nil
		}
		return m.tickAfter(tok)
	case key.Matches(msg, m.keys.Pause):
		tok, err := m.trainer.TogglePause()
		if err != nil || tok.IsZero() {
			return nil
		}
		return m.tickAfter(tok)
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return nil
	}

	var runes []rune
	switch msg.Type {
	case tea.KeySpace:
		runes = []rune{' '}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		runes = msg.Runes
	default:
		return nil
	}
	var cmds []tea.Cmd
	for _, r := range runes {
		fb, err := m.trainer.Keystroke(unicode.ToLower(r))
		if err != nil {
			continue
		}
		cmds = append(cmds, m.clearAfter(fb))
	}
	return tea.Batch(cmds...)
}

func (m *Model) restart() {
	if err := m.trainer.Restart(); err != nil {
		m.logger.Error("failed to restart session", zap.Error(err))
	}
}

// afterUpdate keeps the result and the visible controls in step with the
// session phase.
func (m *Model) afterUpdate() {
	phase := m.trainer.Phase()
	m.keys.syncPhase(phase)
	if phase != session.Over {
		m.result = nil
		return
	}
	if m.result == nil {
		if res, ok := m.trainer.Result(); ok {
			m.result = &res
			m.last = &res
		}
	}
}

func tickAfter(tok trainer.Token) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{token: tok}
	})
}

func clearAfter(fb trainer.Feedback) tea.Cmd {
	return tea.Tick(session.FeedbackDuration, func(time.Time) tea.Msg {
		return clearMsg{feedback: fb}
	})
}
