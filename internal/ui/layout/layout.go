// Package layout renders the chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize request.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small (%d x %d).\n\nExamiz needs at least %d x %d.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// barStyle is the bordered strip used for header and footer.
func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the brand on the left, title centred and status
// (the best score) on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ▌EXAMIZ")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// Border and padding take four columns.
	inner := max(width-4, 0)
	middle := max(inner-lipgloss.Width(brand)-lipgloss.Width(right), 0)
	center := lipgloss.PlaceHorizontal(middle, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(title))

	return barStyle(width).Render(brand + center + right)
}

// RenderFooter lists key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := desc.Render("  ·  ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return barStyle(width).Render(" " + strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, sizing content to fill
// whatever height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
