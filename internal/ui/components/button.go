package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ButtonRow is a horizontal row of buttons with one focused.
type ButtonRow struct {
	Labels  []string
	Focused int
	Width   int
}

// NewButtonRow creates a row focused on the given index.
func NewButtonRow(labels []string, focused, width int) ButtonRow {
	return ButtonRow{Labels: labels, Focused: focused, Width: width}
}

// Update moves focus with left/right or tab. It returns pressed=true with
// the focused index on enter.
func (b ButtonRow) Update(msg tea.Msg) (ButtonRow, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.Labels) == 0 {
		return b, false
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		b.Focused = (b.Focused - 1 + len(b.Labels)) % len(b.Labels)
	case "right", "l", "tab":
		b.Focused = (b.Focused + 1) % len(b.Labels)
	case "enter":
		return b, true
	}
	return b, false
}

// View renders the row.
func (b ButtonRow) View() string {
	parts := make([]string, 0, 2*len(b.Labels))
	for i, l := range b.Labels {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", 2))
		}
		parts = append(parts, Button(l, i == b.Focused, b.Width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
