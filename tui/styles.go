package tui

import (
	"github.com/charmbracelet/lipgloss"

	"eventify-cli/catalog"
)

var (
	accent = lipgloss.Color("63")

	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	chipStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(accent).Padding(0, 1)

	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("237")).Padding(0, 2)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle     = lipgloss.NewStyle().Bold(true).Width(14)

	dialogStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent)

	toastStyles = map[toastKind]lipgloss.Style{
		toastInfo:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")),
		toastSuccess: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
		toastError:   lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
	}
)

func hint(text string) string {
	return mutedStyle.Render(text)
}

// tint renders a colour swatch derived from the event id.
func tint(eventID string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.HueColor(eventID))).Render("▌")
}

func badgeStyle(seats int) lipgloss.Style {
	switch catalog.TierOf(seats) {
	case catalog.TierSoldOut:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case catalog.TierLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}
}
