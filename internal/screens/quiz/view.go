package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width, height, "Drawing questions...")
	}
	if s.saving {
		return renderLoading(width, height, "Saving results...")
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, height, s.state.Answered())
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with its choices and, in
// practice mode, the feedback panel.
func (s *QuizScreen) renderQuestion(width int) string {
	v, ok := s.state.Current()
	if !ok {
		return ""
	}
	cw := min(width-8, 76)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", v.CategoryLabel, v.Difficulty))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d answered",
			v.Number, v.Total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.state.Answered(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View(cw)))
	b.WriteString("\n\n")

	switch {
	case v.ShowFeedback:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderFeedback(v, cw)))
	case !v.Locked:
		b.WriteString(hint(width, fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(v.Choices))))
	case s.state.Mode == sess.ModeExam:
		b.WriteString(hint(width, "Answer locked. Press → or Enter for the next question"))
	}

	return b.String()
}

// renderFeedback renders the practice-mode verdict and explanation.
func renderFeedback(v sess.QuestionView, cw int) string {
	var b strings.Builder
	if v.Correct {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Not quite"))
		if v.CorrectIndex >= 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("  Correct answer: %d) %s", v.CorrectIndex+1, v.Choices[v.CorrectIndex])))
		}
	}
	if v.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(v.Explanation))
	}

	border := theme.Success
	if !v.Correct {
		border = theme.Error
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(0, 1).
		Render(b.String())
}

func hint(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}

func renderLoading(width, height int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}

func renderError(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("Could not start session: %s\n\nPress any key to go back.", msg))
}

func renderQuitConfirm(width, height, answered int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Render(fmt.Sprintf("Abandon this session?\n\n%d answered so far will not be scored.\n\n[Y] Abandon   [N] Keep going", answered))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
