package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/typeuber/internal/session"
)

type keyMap struct {
	Start   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Theme   key.Binding
	Quit    key.Binding

	// Restart is accepted in every phase but only advertised once a test
	// is underway.
	showRestart bool
}

func newKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start test"),
		),
		Pause: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "pause test"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset test"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if !k.showRestart {
		return []key.Binding{k.Start, k.Pause, k.Theme, k.Quit}
	}
	return []key.Binding{k.Start, k.Pause, k.Restart, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// syncPhase shows the controls that apply to phase. Start only exists
// before the test; reset and pause afterwards. On the results screen enter
// starts over.
func (k *keyMap) syncPhase(phase session.Phase) {
	switch phase {
	case session.NotStarted:
		k.Start.SetEnabled(true)
		k.Start.SetHelp("enter", "start test")
		k.Pause.SetEnabled(false)
		k.showRestart = false
	case session.Over:
		k.Start.SetEnabled(true)
		k.Start.SetHelp("enter", "try again")
		k.Pause.SetEnabled(false)
		k.showRestart = false
	default:
		k.Start.SetEnabled(false)
		k.Pause.SetEnabled(true)
		if phase == session.Paused {
			k.Pause.SetHelp("tab", "resume test")
		} else {
			k.Pause.SetHelp("tab", "pause test")
		}
		k.showRestart = true
	}
}
