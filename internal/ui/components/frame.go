package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// ContentWidth is the inner width shared by framed screens so stacked
// boxes line up: the frame minus border and padding, clamped to 20..64.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Frame centres content inside a double border filling width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a padded rounded box of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Button renders a fixed-width bordered label; focused buttons are filled.
func Button(label string, focused bool, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if focused {
		return st.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Gold).
			BorderForeground(theme.Gold).
			Render("▸ " + label)
	}
	return st.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}
