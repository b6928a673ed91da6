package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const helpText = "j/k move · v select · enter comment first and last line · w write · q quit"

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return quittingView()
	case ViewConfirmQuit:
		return confirmQuitView(m)
	default:
		return linesView(m)
	}
}

func quittingView() string {
	return "Goodbye!\n"
}

func confirmQuitView(m model) string {
	warnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	return lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.DoubleBorder()).Render(
		warnStyle.Render(m.path+" has unsaved changes.") +
			"\n\nPress w to write and quit, q to discard, any other key to go back.",
	)
}

func linesView(m model) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))

	title := m.path
	if m.dirty {
		title += " [+]"
	}

	body := m.list.View()
	if len(m.doc.Lines) == 0 {
		body = helpStyle.Render("(empty)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(title),
		body,
		statusStyle.Render(m.status),
		helpStyle.Render(wrapText(helpText, m.width)),
	)
}
