package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Global
	Quit key.Binding
	Back key.Binding

	// Lobby
	Username   key.Binding
	NewRoom    key.Binding
	JoinByCode key.Binding
	Up         key.Binding
	Down       key.Binding

	// Context-specific
	Enter    key.Binding
	Tab      key.Binding
	CopyCode key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),

	Username: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "name"),
	),
	NewRoom: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new room"),
	),
	JoinByCode: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("j", "join by code"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),

	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "privacy"),
	),
	CopyCode: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy code"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
}
