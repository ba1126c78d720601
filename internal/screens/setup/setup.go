// Package setup lets the learner pick mode, focus and question count before
// a session starts.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/quiz"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// maxCount caps the count field.
const maxCount = 100

type field int

const (
	fieldMode field = iota
	fieldFocus
	fieldCount
	fieldStart
	numFields
)

// SetupScreen collects session options.
type SetupScreen struct {
	svc    *screen.Services
	modes  []session.Mode
	mode   int
	focus  []bank.Focus
	focusI int
	count  components.NumberInput
	cursor field
	errMsg string
}

var (
	_ screen.Screen          = (*SetupScreen)(nil)
	_ screen.KeyHintProvider = (*SetupScreen)(nil)
)

// New creates a setup screen preloaded with svc.Defaults.
func New(svc *screen.Services) *SetupScreen {
	s := &SetupScreen{
		svc:   svc,
		modes: []session.Mode{session.ModeExam, session.ModePractice},
		focus: focusOptions(svc.Bank),
	}

	d := svc.Defaults
	for i, m := range s.modes {
		if m == d.Mode {
			s.mode = i
		}
	}
	for i, f := range s.focus {
		if f == d.Focus {
			s.focusI = i
		}
	}
	count := d.Count
	if count <= 0 {
		count = session.DefaultCount
	}
	s.count = components.NewNumberInput(1, maxCount, count)
	return s
}

// focusOptions lists smart, all, then each category in table order.
func focusOptions(b *bank.Bank) []bank.Focus {
	out := []bank.Focus{bank.FocusSmart, bank.FocusAll}
	if b == nil {
		return out
	}
	for _, c := range b.CategoryKeys() {
		out = append(out, bank.Focus(c))
	}
	return out
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Session"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Options returns the options currently selected.
func (s *SetupScreen) Options() (session.Options, error) {
	n, err := s.count.Int()
	if err != nil {
		return session.Options{}, fmt.Errorf("question count %w", err)
	}
	return session.Options{
		Mode:  s.modes[s.mode],
		Focus: s.focus[s.focusI],
		Count: n,
	}, nil
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.cursor == fieldCount {
			var cmd tea.Cmd
			s.count, cmd = s.count.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		s.cursor = (s.cursor - 1 + numFields) % numFields
		return s, nil
	case "down", "tab":
		s.cursor = (s.cursor + 1) % numFields
		return s, nil
	case "left":
		s.cycle(-1)
		return s, nil
	case "right", " ":
		s.cycle(1)
		return s, nil
	case "enter":
		return s.start()
	}

	if s.cursor == fieldCount {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		s.errMsg = ""
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) cycle(delta int) {
	switch s.cursor {
	case fieldMode:
		s.mode = (s.mode + delta + len(s.modes)) % len(s.modes)
	case fieldFocus:
		s.focusI = (s.focusI + delta + len(s.focus)) % len(s.focus)
	}
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	opts, err := s.Options()
	if err != nil {
		s.errMsg = err.Error()
		s.cursor = fieldCount
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: quiz.New(svc, opts)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	labelStyle := lipgloss.NewStyle().Width(10).Foreground(theme.TextDim)

	row := func(f field, label, value string) string {
		marker := "  "
		valStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if s.cursor == f {
			marker = "▸ "
			valStyle = valStyle.Foreground(theme.Primary).Bold(true)
		}
		return marker + labelStyle.Render(label) + valStyle.Render(value)
	}

	focusLabel := string(s.focus[s.focusI])
	if s.svc.Bank != nil {
		focusLabel = s.svc.Bank.FocusLabel(s.focus[s.focusI])
	}

	var b strings.Builder
	b.WriteString(row(fieldMode, "Mode", "‹ "+strings.ToUpper(string(s.modes[s.mode]))+" ›"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("            " + modeHint(s.modes[s.mode])))
	b.WriteString("\n\n")
	b.WriteString(row(fieldFocus, "Focus", "‹ "+focusLabel+" ›"))
	b.WriteString("\n\n")
	b.WriteString(row(fieldCount, "Questions", s.count.View()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw-6, lipgloss.Center,
		components.Button("START", s.cursor == fieldStart, 16)))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}

func modeHint(m session.Mode) string {
	if m == session.ModePractice {
		return "skip freely, feedback after each answer"
	}
	return "answer every question, feedback at the end"
}
