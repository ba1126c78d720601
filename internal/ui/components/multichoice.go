package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// ChoiceList renders numbered answer options with a cursor. Once locked it
// marks the chosen option and, when Correct >= 0, the correct one.
type ChoiceList struct {
	Options []string
	Cursor  int
	Locked  bool

	// Chosen is the submitted option, or -1.
	Chosen int

	// Correct is the option to mark as correct, or -1 to keep it hidden.
	Correct int
}

// NewChoiceList creates an unlocked list with the cursor on the first option.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Chosen: -1, Correct: -1}
}

// Update moves the cursor. It never submits; the owning screen decides
// what enter and number keys mean.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	if c.Locked {
		return c
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	}
	return c
}

// KeyIndex maps "1".."9" to an option index. ok is false for other keys
// and for numbers beyond the option count.
func (c ChoiceList) KeyIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	return i, i < len(c.Options)
}

// View renders the options.
func (c ChoiceList) View(width int) string {
	lines := make([]string, len(c.Options))
	for i, opt := range c.Options {
		marker := "  "
		switch {
		case c.Locked && i == c.Correct:
			marker = "✓ "
		case c.Locked && i == c.Chosen:
			marker = "✗ "
			if c.Correct < 0 {
				marker = "● "
			}
		case !c.Locked && i == c.Cursor:
			marker = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", marker, i+1, opt)
		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case c.Locked && i == c.Correct:
			style = style.Foreground(theme.Success).Bold(true)
		case c.Locked && i == c.Chosen && c.Correct >= 0:
			style = style.Foreground(theme.Error).Bold(true)
		case c.Locked && i == c.Chosen:
			style = style.Foreground(theme.Primary).Bold(true)
		case c.Locked:
			style = style.Foreground(theme.TextDim)
		case i == c.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
