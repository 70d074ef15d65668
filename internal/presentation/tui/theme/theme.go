package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	renderer *lipgloss.Renderer

	border     lipgloss.TerminalColor
	background lipgloss.TerminalColor
	highlight  lipgloss.TerminalColor
	brand      lipgloss.TerminalColor
	error      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	info       lipgloss.TerminalColor
	body       lipgloss.TerminalColor
	accent     lipgloss.TerminalColor

	base lipgloss.Style
}

func BasicTheme(renderer *lipgloss.Renderer, highlight *string) Theme {
	base := Theme{
		renderer: renderer,
	}

	base.background = lipgloss.AdaptiveColor{Dark: "#0F172A", Light: "#F8FAFC"}
	base.border = lipgloss.AdaptiveColor{Dark: "#334155", Light: "#CBD5E0"}
	base.body = lipgloss.AdaptiveColor{Dark: "#94A3B8", Light: "#64748B"}
	base.accent = lipgloss.AdaptiveColor{Dark: "#F1F5F9", Light: "#0F172A"}
	base.brand = lipgloss.Color("#6366F1") // Indigo
	if highlight != nil {
		base.highlight = lipgloss.Color(*highlight)
	} else {
		base.highlight = base.brand
	}
	base.error = lipgloss.Color("#EF4444")
	base.success = lipgloss.Color("#22C55E")
	base.info = lipgloss.Color("#3B82F6")

	base.base = renderer.NewStyle().Foreground(base.body)

	return base
}

func (b Theme) Body() lipgloss.TerminalColor {
	return b.body
}

func (b Theme) Highlight() lipgloss.TerminalColor {
	return b.highlight
}

func (b Theme) Brand() lipgloss.TerminalColor {
	return b.brand
}

func (b Theme) Accent() lipgloss.TerminalColor {
	return b.accent
}

func (b Theme) Border() lipgloss.TerminalColor {
	return b.border
}

func (b Theme) Base() lipgloss.Style {
	return b.base
}

func (b Theme) TextBody() lipgloss.Style {
	return b.Base().Foreground(b.body)
}

func (b Theme) TextAccent() lipgloss.Style {
	return b.Base().Foreground(b.accent)
}

func (b Theme) TextHighlight() lipgloss.Style {
	return b.Base().Foreground(b.highlight)
}

func (b Theme) TextBrand() lipgloss.Style {
	return b.Base().Foreground(b.brand)
}

func (b Theme) TextError() lipgloss.Style {
	return b.Base().Foreground(b.error)
}

func (b Theme) PanelError() lipgloss.Style {
	return b.Base().Background(b.error).Foreground(b.accent)
}

// Toast styles a notification by severity: success, error or info.
func (b Theme) Toast(severity string) lipgloss.Style {
	bg := b.info
	switch severity {
	case "success":
		bg = b.success
	case "error":
		bg = b.error
	}
	return b.Base().Background(bg).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
}

func (b Theme) Modal() lipgloss.Style {
	return b.Base().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(b.brand)
}
