package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Hotkey, when set, activates the item
// directly.
type MenuItem struct {
	Label  string
	Hotkey string
	Action func() tea.Cmd
}

// Menu is a vertical list of buttons. Selection wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch k := kmsg.String(); k {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Hotkey != "" && item.Hotkey == k {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// View renders one button per line.
func (m Menu) View(buttonWidth int) string {
	rows := make([]string, len(m.Items))
	for i, item := range m.Items {
		rows[i] = Button(item.Label, i == m.Selected, buttonWidth)
	}
	return strings.Join(rows, "\n")
}
