package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/lobby"
)

// ToastMsg carries a toast lifecycle event into the program.
type ToastMsg lobby.ToastEvent

// ForwardToasts relays toaster events to the program until ctx is done.
// The toaster never blocks on its subscribers, so a busy program only drops
// intermediate events; each one triggers a full refresh anyway.
func ForwardToasts(ctx context.Context, p *tea.Program, toaster *lobby.Toaster) {
	events, unsubscribe := toaster.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			p.Send(ToastMsg(ev))
		}
	}
}

func toastIcon(s lobby.Severity) string {
	switch s {
	case lobby.SeveritySuccess:
		return "✓"
	case lobby.SeverityError:
		return "✕"
	default:
		return "ℹ"
	}
}

func (m model) ToastsView() string {
	if len(m.snapshot.Toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.snapshot.Toasts))
	for _, t := range m.snapshot.Toasts {
		style := m.theme.Toast(string(t.Severity))
		if t.Phase == lobby.PhaseFading {
			style = style.Faint(true)
		}
		lines = append(lines, style.Render(toastIcon(t.Severity)+" "+sanitize(t.Text)))
	}

	return m.theme.Base().
		Width(m.widthContainer).
		Align(lipgloss.Right).
		Render(lipgloss.JoinVertical(lipgloss.Right, lines...))
}
