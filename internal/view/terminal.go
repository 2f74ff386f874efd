package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 4).
			Align(lipgloss.Center)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	numberStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	buttonStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("99")).
			Padding(0, 2)
)

// Terminal renders the view for a TTY. The share control is shown as a hint
// naming the command that triggers it.
func (v View) Terminal(shareHint string) string {
	lines := []string{titleStyle.Render(v.Title), ""}

	if v.Kind == KindSubscribed {
		lines = append(lines, numberStyle.Render(v.Number))
	} else {
		lines = append(lines, v.Marker)
	}
	lines = append(lines, subtitleStyle.Render(v.Subtitle))

	if v.ShareControl && shareHint != "" {
		lines = append(lines, "", buttonStyle.Render("Share")+" "+subtitleStyle.Render(shareHint))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}
