// Package review walks through a finished session question by question.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	sess "github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/tutor"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

const pollInterval = 150 * time.Millisecond

// explainTickMsg polls the explainer for a finished result.
type explainTickMsg time.Time

// ReviewScreen shows each question with the chosen and correct answers.
type ReviewScreen struct {
	svc   *screen.Services
	state *sess.Session
	items []sess.ReviewItem
	index int

	explanations map[string]*tutor.Explanation
	pendingID    string
	explainErr   string
}

var (
	_ screen.Screen          = (*ReviewScreen)(nil)
	_ screen.KeyHintProvider = (*ReviewScreen)(nil)
)

// New creates a ReviewScreen for a finished session.
func New(svc *screen.Services, state *sess.Session) *ReviewScreen {
	return &ReviewScreen{
		svc:          svc,
		state:        state,
		items:        state.ReviewItems(),
		explanations: make(map[string]*tutor.Explanation),
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "←→", Description: "Question"}}
	if s.svc.Explainer.Available() {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Results"})
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainTickMsg:
		return s.poll()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "r":
			s.state.ToggleReview()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "left", "up", "h", "k", "p":
			if s.index > 0 {
				s.index--
			}
		case "right", "down", "l", "j", "n":
			if s.index < len(s.items)-1 {
				s.index++
			}
		case "e", "E":
			return s.explain()
		}
	}
	return s, nil
}

func (s *ReviewScreen) explain() (screen.Screen, tea.Cmd) {
	if len(s.items) == 0 {
		return s, nil
	}
	if !s.svc.Explainer.Available() {
		s.explainErr = "AI explanations need an LLM provider; see examiz llm --help"
		return s, nil
	}
	item := s.items[s.index]
	if _, done := s.explanations[item.Question.ID]; done || s.pendingID != "" {
		return s, nil
	}

	s.pendingID = item.Question.ID
	s.explainErr = ""
	s.svc.Explainer.Request(context.Background(), tutor.ExplainInput{
		Question:      item.Question,
		CategoryLabel: item.CategoryLabel,
		ChosenIndex:   item.ChosenIndex,
	})
	return s, tick()
}

func (s *ReviewScreen) poll() (screen.Screen, tea.Cmd) {
	if s.pendingID == "" {
		return s, nil
	}
	res, ok := s.svc.Explainer.Consume()
	if !ok {
		return s, tick()
	}
	if res.Err != nil {
		s.explainErr = res.Err.Error()
	} else {
		s.explanations[s.pendingID] = res.Explanation
	}
	s.pendingID = ""
	return s, nil
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return explainTickMsg(t)
	})
}

func (s *ReviewScreen) View(width, height int) string {
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Nothing to review.")
	}
	item := s.items[s.index]
	q := item.Question
	cw := min(width-8, 76)

	var b strings.Builder

	verdict, color := "Skipped", theme.TextDim
	switch {
	case item.Answered && item.Correct:
		verdict, color = "Correct", theme.Success
	case item.Answered:
		verdict, color = "Wrong", theme.Error
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d/%d  %s · %s", s.index+1, len(s.items), item.CategoryLabel, q.Difficulty)))
	b.WriteString("   ")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(verdict))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	choices := components.ChoiceList{
		Options: q.Choices,
		Locked:  true,
		Chosen:  item.ChosenIndex,
		Correct: q.AnswerIndex,
	}
	b.WriteString(choices.View(cw))
	b.WriteString("\n\n")

	if q.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(q.Explanation))
		b.WriteString("\n\n")
	}

	switch exp := s.explanations[q.ID]; {
	case exp != nil:
		b.WriteString(renderExplanation(exp, cw))
	case s.pendingID == q.ID:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("Asking the tutor..."))
	case s.explainErr != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.explainErr))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderExplanation(exp *tutor.Explanation, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Tutor"))
	b.WriteString("\n")
	b.WriteString(exp.Summary)
	if exp.WhyWrong != "" {
		b.WriteString("\n\n")
		b.WriteString(exp.WhyWrong)
	}
	if exp.KeyPoint != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Render("Key point: " + exp.KeyPoint))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(cw).
		Padding(0, 1).
		Render(b.String())
}
