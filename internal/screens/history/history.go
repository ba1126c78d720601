package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// recentLimit caps how many attempts are listed.
const recentLimit = 20

type historyLoadedMsg struct {
	Stats    *profile.Stats
	Sessions map[string]store.SessionSummaryRecord // session ID → summary
	Accuracy []store.CategoryAccuracyRecord
	Err      error
}

// HistoryScreen displays past attempts and lifetime category accuracy.
type HistoryScreen struct {
	svc      *screen.Services
	attempts []profile.Attempt
	best     *profile.Best
	sessions map[string]store.SessionSummaryRecord
	accuracy []store.CategoryAccuracyRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a new HistoryScreen.
func New(svc *screen.Services) *HistoryScreen {
	return &HistoryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := svc.Stats.Load(ctx, svc.Baseline)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		msg := historyLoadedMsg{Stats: stats, Sessions: make(map[string]store.SessionSummaryRecord)}
		if svc.Events == nil {
			return msg
		}

		// The event log is supplementary; failures only drop the extra detail.
		sessions, err := svc.Events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			svc.Log().Warn("query session summaries", "error", err)
		}
		for _, rec := range sessions {
			msg.Sessions[rec.SessionID] = rec
		}
		msg.Accuracy, err = svc.Events.CategoryAccuracy(ctx)
		if err != nil {
			svc.Log().Warn("query category accuracy", "error", err)
		}
		return msg
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Stats.Recent(recentLimit)
			s.best = msg.Stats.Best
			s.sessions = msg.Sessions
			s.accuracy = msg.Accuracy
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start one from the home menu!")
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	if s.best != nil {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render(fmt.Sprintf("★ Best %d/%d", s.best.Score, s.best.Total))))
		b.WriteString("\n\n")
	}

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-8s  %-10s  %2d/%-2d  %3.0f%%",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), a.Mode, s.focusLabel(a.Focus),
			a.Score, a.Total, a.Percent())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render(s.detail(a))))
			b.WriteString("\n")
		}
	}

	if len(s.accuracy) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Lifetime accuracy")))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))))
		b.WriteString("\n")
		labelWidth := 0
		for _, r := range s.accuracy {
			labelWidth = max(labelWidth, lipgloss.Width(s.categoryLabel(r.Category)))
		}
		for _, r := range s.accuracy {
			st := profile.CategoryStat{Correct: r.Correct, Total: r.Total}
			bar := components.ProgressBar{
				Label:      s.categoryLabel(r.Category),
				LabelWidth: labelWidth,
				Percent:    st.Accuracy() / 100,
				Suffix:     fmt.Sprintf("%d/%d", r.Correct, r.Total),
				Width:      cw,
			}
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// detail describes one attempt using the event log when it has a record.
func (s *HistoryScreen) detail(a profile.Attempt) string {
	rec, ok := s.sessions[a.ID]
	if !ok {
		return "    No event log entry for this session"
	}
	return fmt.Sprintf("    %d:%02d elapsed  session %s",
		rec.DurationSecs/60, rec.DurationSecs%60, shortID(a.ID))
}

func (s *HistoryScreen) focusLabel(f string) string {
	if s.svc.Bank == nil {
		return f
	}
	switch bank.Focus(f) {
	case bank.FocusSmart, bank.FocusAll:
		return f
	}
	return s.svc.Bank.Label(bank.Category(f))
}

func (s *HistoryScreen) categoryLabel(c string) string {
	if s.svc.Bank == nil {
		return c
	}
	return s.svc.Bank.Label(bank.Category(c))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
