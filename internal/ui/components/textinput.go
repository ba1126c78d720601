package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// NumberInput is a bounded integer field on top of bubbles/textinput.
// Keys other than digits and editing keys are ignored.
type NumberInput struct {
	model    textinput.Model
	Min, Max int
}

// NewNumberInput returns a focused field holding value.
func NewNumberInput(min, max, value int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(min)
	ti.CharLimit = len(strconv.Itoa(max))
	ti.Focus()
	ti.SetValue(strconv.Itoa(value))
	return NumberInput{model: ti, Min: min, Max: max}
}

func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s := k.String()
		if len(s) == 1 && (s[0] < '0' || s[0] > '9') {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.model, cmd = n.model.Update(msg)
	return n, cmd
}

// Int parses the field and checks it against [Min, Max].
func (n NumberInput) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(n.model.Value()))
	if err != nil || v < n.Min || v > n.Max {
		return 0, fmt.Errorf("must be between %d and %d", n.Min, n.Max)
	}
	return v, nil
}

// SetValue replaces the raw text.
func (n *NumberInput) SetValue(v string) {
	n.model.SetValue(v)
}

// View renders the field with a ✗ while the value is out of range.
func (n NumberInput) View() string {
	view := n.model.View()
	if _, err := n.Int(); err != nil {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}
