// Package reset asks for confirmation before wiping saved stats.
package reset

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// resetDoneMsg reports the outcome of the reset command.
type resetDoneMsg struct {
	Err error
}

// ResetScreen confirms and performs a stats reset.
type ResetScreen struct {
	svc     *screen.Services
	buttons components.ButtonRow
	busy    bool
	errMsg  string
}

var (
	_ screen.Screen          = (*ResetScreen)(nil)
	_ screen.KeyHintProvider = (*ResetScreen)(nil)
)

// New creates a ResetScreen focused on the safe choice.
func New(svc *screen.Services) *ResetScreen {
	return &ResetScreen{
		svc:     svc,
		buttons: components.NewButtonRow([]string{"KEEP", "RESET"}, 0, 12),
	}
}

func (s *ResetScreen) Init() tea.Cmd {
	return nil
}

func (s *ResetScreen) Title() string {
	return "Reset Stats"
}

func (s *ResetScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *ResetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc", "n", "N":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "y", "Y":
			return s.reset()
		}
		var pressed bool
		s.buttons, pressed = s.buttons.Update(msg)
		if !pressed {
			return s, nil
		}
		if s.buttons.Focused == 1 {
			return s.reset()
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResetScreen) reset() (screen.Screen, tea.Cmd) {
	s.busy = true
	s.errMsg = ""
	svc := s.svc
	return s, func() tea.Msg {
		stats, err := svc.Stats.Reset(context.Background(), svc.Baseline)
		if err != nil {
			svc.Log().Error("reset stats", "error", err)
			return resetDoneMsg{Err: err}
		}
		svc.Log().Info("stats reset", "categories", len(stats.PerCategory))
		return resetDoneMsg{}
	}
}

func (s *ResetScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Reset all stats?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(
		"Best score and attempt history are erased.\nCategory weights return to the bank baseline.\nThe event log is kept."))
	b.WriteString("\n\n")
	b.WriteString(s.buttons.View())
	if s.busy {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Resetting..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
