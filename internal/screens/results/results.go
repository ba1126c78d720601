// Package results shows the score and per-category breakdown of a
// finished session.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/screens/review"
	sess "github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// ResultsScreen displays the session summary.
type ResultsScreen struct {
	svc     *screen.Services
	state   *sess.Session
	summary *sess.Summary
	saveErr error
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
)

// New creates a ResultsScreen. saveErr is shown when the stats could not be
// written.
func New(svc *screen.Services, state *sess.Session, summary *sess.Summary, saveErr error) *ResultsScreen {
	return &ResultsScreen{svc: svc, state: state, summary: summary, saveErr: saveErr}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Review"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		if s.state == nil || !s.state.ToggleReview() {
			return s, nil
		}
		next := review.New(s.svc, s.state)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!")))
	b.WriteString("\n\n")

	if sum.NewBest {
		b.WriteString(center(lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.Gold).
			Bold(true).
			Padding(0, 2).
			Render("★ NEW BEST ★")))
		b.WriteString("\n\n")
	}

	score := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true).
		Render(fmt.Sprintf("%d / %d", sum.Score, sum.Total))
	b.WriteString(center(score))
	b.WriteString("\n")

	statsLine := fmt.Sprintf("Accuracy: %.0f%%    Answered: %d    Mode: %s",
		sum.Accuracy*100, sum.Answered, sum.Mode)
	if sum.Best != nil {
		statsLine += fmt.Sprintf("    Best: %d/%d", sum.Best.Score, sum.Best.Total)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(statsLine)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("By category")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, r := range sum.Breakdown {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	for _, r := range sum.Breakdown {
		bar := components.ProgressBar{
			Label:      r.Label,
			LabelWidth: labelWidth,
			Percent:    r.Stat.Accuracy() / 100,
			Suffix:     fmt.Sprintf("%d/%d", r.Stat.Correct, r.Stat.Total),
			Width:      cw,
		}
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Stats were not saved: " + s.saveErr.Error())))
	}

	return b.String()
}
